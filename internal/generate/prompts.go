package generate

import (
	"fmt"
	"sort"
	"strings"
)

// GeneralType is the fallback prompt key for free-form chat.
const GeneralType = "general"

var systemPrompts = map[string]string{
	"affidavit":   "You are an expert legal document writer. Create a complete, professional affidavit with proper legal format. Use the provided information and create a professional document.",
	"letter":      "You are a professional business letter writer. Create a complete formal letter with proper format. Use the provided information to create a professional letter.",
	"contract":    "You are a contract specialist. Create a comprehensive contract with clear terms. Use the provided information to create a professional contract.",
	"certificate": "You are creating official certificates. Generate a formal certificate with proper formatting using the provided information.",
	"application": "You are an expert in formal applications. Create authentic applications with proper format (To, From, Subject structure). Use respectful language and proper formal structure.",
	"custom":      "You are a professional document writer. Create a complete, well-structured document tailored to the user's request. Use the provided information.",
	GeneralType:   "You are a professional assistant. Provide helpful, well-structured responses. Be comprehensive and informative.",
}

// SystemPrompt returns the generation system prompt for a document type.
func SystemPrompt(docType string) string {
	if p, ok := systemPrompts[strings.ToLower(strings.TrimSpace(docType))]; ok {
		return p
	}
	return systemPrompts[GeneralType]
}

func precheckSystemPrompt(docType string) string {
	return fmt.Sprintf(`You are an AI assistant that determines if there's enough information to create a %s.

Analyze the user's request and decide:
1. If there's enough information to create a complete document, respond with: "GENERATE"
2. If you need more specific information, respond with: "QUESTION: [ask a specific question]"

Be smart - only ask for truly essential information that cannot be reasonably assumed or left as placeholders.`, docType)
}

func buildUserPrompt(docType, request string, fields map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s based on this request: %s", docType, request)

	if len(fields) > 0 {
		b.WriteString("\n\nExtracted information:")
		keys := make([]string, 0, len(fields))
		for k := range fields {
			if fields[k] == "" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "\n- %s: %s", titleKey(k), fields[k])
		}
	}
	return b.String()
}

func titleKey(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
