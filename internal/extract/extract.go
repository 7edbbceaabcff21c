// Package extract pulls structured values out of free-form chat text.
// Matching is best-effort: ambiguous or partial matches are omitted and
// the conversation layer asks the user a follow-up question instead.
package extract

import (
	"regexp"
	"strings"

	tghelpers "github.com/m3rciful/docbot/core/telegram/helpers"
)

// Field keys produced by Fields.
const (
	KeyName    = "name"
	KeyAddress = "address"
	KeyDate    = "date"
	KeyID      = "id"
)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:my name is|i am|name:?)\s*([A-Za-z][A-Za-z\s]*)`),
	regexp.MustCompile(`\bI,?\s+([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
	regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
}

var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:live at|living at|residing at|reside at|address is|address:?)\s*(\d+[^.,\n]+(?:,\s*[^.,\n]+)*)`),
	regexp.MustCompile(`(\d+[^,\n]+,[^,\n]+,\s*\d{6})`),
	regexp.MustCompile(`(?i)(?:address|live|residing)[^,\n]*?([^,\n]+,\s*[^,\n]+,\s*\d{6})`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:dated|dated on|on date|date:?)\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4})`),
	regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})\b`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
}

var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:id|identification|passport|licen[cs]e)(?:\s*(?:no\.?|number))?(?:\s+is)?[.:#\s]+([A-Za-z]*\d[A-Za-z0-9/-]{2,})`),
	regexp.MustCompile(`\b([A-Z]{2,}\d{4,})\b`),
}

// Fields scans text and returns every field it can recognise. Keys that
// produce no confident match are absent from the result.
func Fields(text string) map[string]string {
	fields := make(map[string]string)

	if name, ok := matchName(text); ok {
		fields[KeyName] = name
	}
	if addr, ok := firstMatch(addressPatterns, text); ok {
		fields[KeyAddress] = addr
	}
	if date, ok := firstMatch(datePatterns, text); ok {
		fields[KeyDate] = normalizeDate(date)
	}
	if id, ok := firstMatch(idPatterns, text); ok {
		fields[KeyID] = id
	}

	return fields
}

func matchName(text string) (string, bool) {
	for _, re := range namePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(strings.Fields(name)) < 2 {
			continue
		}
		return name, true
	}
	return "", false
}

func firstMatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := strings.TrimSpace(m[1])
		if v == "" {
			continue
		}
		return v, true
	}
	return "", false
}

// normalizeDate rewrites recognised dates into dd/mm/yyyy. Values that
// do not parse are kept verbatim rather than dropped.
func normalizeDate(raw string) string {
	if t, ok := tghelpers.ParseFlexibleDate(raw); ok {
		return tghelpers.FormatDocumentDate(t)
	}
	return raw
}
