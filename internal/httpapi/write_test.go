package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/John-Robertt/override-go/internal/model"
)

func TestWriteError_JSONShapeAndHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusUnprocessableEntity, model.AppError{
		Code:    "PROXIES_VALIDATE_ERROR",
		Message: "第 3 个节点缺少 name",
		Stage:   "parse_proxies",
		URL:     "https://example.com/sub",
		Line:    123,
		Snippet: "type: ss",
	})

	if got, want := rr.Code, http.StatusUnprocessableEntity; got != want {
		t.Fatalf("status = %d, want %d", got, want)
	}

	if got, want := rr.Header().Get("Content-Type"), "application/json; charset=utf-8"; got != want {
		t.Fatalf("Content-Type = %q, want %q", got, want)
	}

	var resp model.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v\nbody=%q", err, rr.Body.String())
	}
	if resp.Error.Code != "PROXIES_VALIDATE_ERROR" {
		t.Fatalf("code = %q, want %q", resp.Error.Code, "PROXIES_VALIDATE_ERROR")
	}
	if resp.Error.Stage != "parse_proxies" {
		t.Fatalf("stage = %q, want %q", resp.Error.Stage, "parse_proxies")
	}
	if resp.Error.Line != 123 {
		t.Fatalf("line = %d, want %d", resp.Error.Line, 123)
	}
}

func TestWriteYAML_Headers(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteYAML(rr, http.StatusOK, []byte("proxies: []\n"))
	if got, want := rr.Header().Get("Content-Type"), "text/yaml; charset=utf-8"; got != want {
		t.Fatalf("Content-Type = %q, want %q", got, want)
	}
	if got := rr.Body.String(); got != "proxies: []\n" {
		t.Fatalf("body = %q", got)
	}
}
