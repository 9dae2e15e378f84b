package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/whatis/internal/dto"
)

func TestRunPrintsAnswer(t *testing.T) {
	var got dto.OllamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"response":"tar (1) - an archiving utility\n"}`))
	}))
	defer srv.Close()

	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_BASE_URL", srv.URL)
	t.Setenv("LLM_MODEL", "whatis.sh")
	t.Setenv("LOGLEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"-v", "tar"})
	t.Cleanup(func() { verbose = false })

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if out.String() != "tar (1) - an archiving utility\n" {
		t.Fatalf("output = %q", out.String())
	}
	if got.Prompt != "tar -v" {
		t.Fatalf("prompt = %q, want %q", got.Prompt, "tar -v")
	}
}

func TestRunRequiresSubject(t *testing.T) {
	rootCmd.SetArgs([]string{})
	if err := rootCmd.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected error without arguments")
	}
}
