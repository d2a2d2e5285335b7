package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/John-Robertt/override-go/internal/model"
	"github.com/John-Robertt/override-go/internal/source"
)

const nodes = `proxies:
  - {name: 🇭🇰 香港 01, type: ss, server: a.example.com, port: 443}
  - {name: 🇭🇰 香港 02, type: ss, server: b.example.com, port: 443}
  - {name: 🇭🇰 香港 03, type: ss, server: c.example.com, port: 443}
`

func TestDeriveHealthzURL_FromListenAddr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"127.0.0.1:25500", "http://127.0.0.1:25500/healthz"},
		{"0.0.0.0:25500", "http://127.0.0.1:25500/healthz"},
		{":25500", "http://127.0.0.1:25500/healthz"},
		{"25500", "http://127.0.0.1:25500/healthz"},
		{"http://127.0.0.1:25500", "http://127.0.0.1:25500/healthz"},
		{"[::]:8080", "http://127.0.0.1:8080/healthz"},
	}
	for _, tt := range tests {
		got, err := deriveHealthzURL(tt.in)
		if err != nil {
			t.Fatalf("deriveHealthzURL(%q) unexpected err: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("deriveHealthzURL(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeriveHealthzURL_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "host:"} {
		if _, err := deriveHealthzURL(in); err == nil {
			t.Fatalf("deriveHealthzURL(%q) expected error", in)
		}
	}
}

func TestRunHealthcheck_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}))
	defer ts.Close()

	if err := runHealthcheck(ts.URL+"/healthz", 200*time.Millisecond); err != nil {
		t.Fatalf("runHealthcheck unexpected err: %v", err)
	}
}

func TestRunHealthcheck_StatusNotOK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	err := runHealthcheck(ts.URL, 200*time.Millisecond)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("err=%q, want contains %q", err.Error(), "unexpected status")
	}
}

func TestRunConvert_StdinToStdout(t *testing.T) {
	var out bytes.Buffer
	opt := convertOptions{Flags: model.Flags{Landing: true}}
	if err := runConvert(context.Background(), opt, strings.NewReader(nodes), &out); err != nil {
		t.Fatalf("runConvert error: %v", err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "proxies:\n") {
		t.Fatalf("output does not start with proxies:\n%s", s)
	}
	for _, want := range []string{"name: 香港节点", "name: 前置代理", "name: 落地节点"} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
	}
}

func TestRunConvert_FileToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "nodes.yaml")
	outPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(in, []byte(nodes), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	if err := runConvert(context.Background(), convertOptions{Input: in, Output: outPath}, nil, &stdout); err != nil {
		t.Fatalf("runConvert error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout should be empty, got %q", stdout.String())
	}

	var viaStdin bytes.Buffer
	if err := runConvert(context.Background(), convertOptions{}, strings.NewReader(nodes), &viaStdin); err != nil {
		t.Fatalf("runConvert error: %v", err)
	}
	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, viaStdin.Bytes()) {
		t.Fatalf("file output differs from stdin output")
	}
}

func TestRunConvert_URLs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, nodes)
	}))
	defer ts.Close()

	var fromURL, fromStdin bytes.Buffer
	opt := convertOptions{URLs: []string{ts.URL}, FetchTimeout: 2 * time.Second}
	if err := runConvert(context.Background(), opt, nil, &fromURL); err != nil {
		t.Fatalf("runConvert error: %v", err)
	}
	if err := runConvert(context.Background(), convertOptions{}, strings.NewReader(nodes), &fromStdin); err != nil {
		t.Fatalf("runConvert error: %v", err)
	}
	if fromURL.String() != fromStdin.String() {
		t.Fatalf("URL output differs from stdin output")
	}
}

func TestRunConvert_InvalidInput(t *testing.T) {
	err := runConvert(context.Background(), convertOptions{}, strings.NewReader("proxies:\n  - type: ss\n"), &bytes.Buffer{})
	var pe *source.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err=%T %v, want *source.ParseError", err, err)
	}
	if pe.AppError.Code != "PROXIES_VALIDATE_ERROR" || pe.AppError.URL != "stdin" {
		t.Fatalf("app error=%+v", pe.AppError)
	}
}

func TestRunConvert_MissingFile(t *testing.T) {
	err := runConvert(context.Background(), convertOptions{Input: filepath.Join(t.TempDir(), "nope.yaml")}, nil, &bytes.Buffer{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want os.ErrNotExist", err)
	}
}
