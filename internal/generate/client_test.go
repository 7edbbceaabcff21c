package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	coreconfig "github.com/m3rciful/docbot/core/config"
	"github.com/m3rciful/docbot/core/logger"
)

type fakeCompletion struct {
	status  int
	content string

	lastBody map[string]any
}

func (f *fakeCompletion) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&f.lastBody)

		if f.status != 0 && f.status != http.StatusOK {
			http.Error(w, `{"error":{"message":"boom"}}`, f.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": f.content,
					},
				},
			},
		})
	}
}

func newTestClient(t *testing.T, fake *fakeCompletion) (*Client, *httptest.Server) {
	t.Helper()
	if err := logger.InitLogger(nil); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	c := NewClient(coreconfig.GroqConfig{
		APIKey:            "test-key",
		BaseURL:           srv.URL,
		Model:             "llama3-70b-8192",
		GenerateMaxTokens: 2000,
		PrecheckMaxTokens: 200,
	}, srv.Client())
	return c, srv
}

func TestGenerateReturnsText(t *testing.T) {
	fake := &fakeCompletion{content: "AFFIDAVIT\n\nI, John Doe, solemnly affirm..."}
	c, _ := newTestClient(t, fake)

	text, err := c.Generate(context.Background(), "affidavit", "I need an affidavit", map[string]string{"name": "John Doe"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(text, "John Doe") {
		t.Fatalf("unexpected completion text: %q", text)
	}

	if got := fake.lastBody["model"]; got != "llama3-70b-8192" {
		t.Fatalf("model = %v", got)
	}
	msgs, ok := fake.lastBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", fake.lastBody["messages"])
	}
	user := msgs[1].(map[string]any)["content"].(string)
	if !strings.Contains(user, "Name: John Doe") {
		t.Fatalf("user prompt missing extracted field: %q", user)
	}
}

func TestGenerateAPIFailure(t *testing.T) {
	fake := &fakeCompletion{status: http.StatusInternalServerError}
	c, _ := newTestClient(t, fake)

	_, err := c.Generate(context.Background(), "letter", "write me a letter", nil)
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestCheckMissingInfoQuestion(t *testing.T) {
	fake := &fakeCompletion{content: "QUESTION: What is the recipient's name?"}
	c, _ := newTestClient(t, fake)

	q := c.CheckMissingInfo(context.Background(), "letter", "write a letter")
	if q != "What is the recipient's name?" {
		t.Fatalf("question = %q", q)
	}
}

func TestCheckMissingInfoGenerate(t *testing.T) {
	fake := &fakeCompletion{content: "GENERATE"}
	c, _ := newTestClient(t, fake)

	if q := c.CheckMissingInfo(context.Background(), "letter", "complete request"); q != "" {
		t.Fatalf("expected no question, got %q", q)
	}
}

func TestCheckMissingInfoDegradesOnError(t *testing.T) {
	fake := &fakeCompletion{status: http.StatusTooManyRequests}
	c, _ := newTestClient(t, fake)

	if q := c.CheckMissingInfo(context.Background(), "contract", "anything"); q != "" {
		t.Fatalf("precheck failure must not block generation, got %q", q)
	}
}

func TestDiagnoseAPIError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New("error, status code: 401, message: invalid key"), "rejected the API key"},
		{errors.New("error, status code: 429, message: rate limit"), "rate limit"},
		{errors.New("error, status code: 503, message: overloaded"), "temporarily unavailable"},
		{errors.New("context deadline exceeded"), "too long"},
	}
	for _, tc := range cases {
		got := DiagnoseAPIError(tc.err)
		if !strings.Contains(got, tc.want) {
			t.Errorf("DiagnoseAPIError(%v) = %q, want substring %q", tc.err, got, tc.want)
		}
	}
	if DiagnoseAPIError(nil) != "" {
		t.Error("nil error should produce empty diagnosis")
	}
}
