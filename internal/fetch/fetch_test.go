package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func expectFetchError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fe.Status != status {
		t.Fatalf("status=%d, want=%d", fe.Status, status)
	}
	if fe.AppError.Code != code {
		t.Fatalf("code=%q, want=%q", fe.AppError.Code, code)
	}
	if fe.AppError.Stage != "fetch_sub" {
		t.Fatalf("stage=%q, want=%q", fe.AppError.Stage, "fetch_sub")
	}
}

func TestFetchText_OKSendsUserAgent(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("proxies: []\n"))
	}))
	defer ts.Close()

	got, err := FetchText(context.Background(), ts.URL, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "proxies: []\n" {
		t.Fatalf("body=%q", got)
	}
	if ua != DefaultUserAgent {
		t.Fatalf("user-agent=%q, want=%q", ua, DefaultUserAgent)
	}
}

func TestFetchText_UnsupportedScheme(t *testing.T) {
	for _, u := range []string{"file:///etc/passwd", "ftp://example.com/a", "http://", "::"} {
		_, err := FetchText(context.Background(), u, Options{})
		expectFetchError(t, err, http.StatusBadRequest, "INVALID_ARGUMENT")
	}
}

func TestFetchText_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	_, err := FetchText(context.Background(), ts.URL, Options{})
	expectFetchError(t, err, http.StatusBadGateway, "FETCH_FAILED")
}

func TestFetchText_TooLarge(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 32)))
	}))
	defer ts.Close()

	_, err := FetchText(context.Background(), ts.URL, Options{MaxBytes: 10})
	expectFetchError(t, err, http.StatusUnprocessableEntity, "TOO_LARGE")
}

func TestFetchText_InvalidUTF8(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 0xff is always invalid in UTF-8.
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	}))
	defer ts.Close()

	_, err := FetchText(context.Background(), ts.URL, Options{})
	expectFetchError(t, err, http.StatusUnprocessableEntity, "FETCH_INVALID_UTF8")
}

func TestFetchText_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	_, err := FetchText(context.Background(), ts.URL, Options{Timeout: 50 * time.Millisecond})
	expectFetchError(t, err, http.StatusGatewayTimeout, "FETCH_TIMEOUT")
}

func TestFetchText_TooManyRedirects(t *testing.T) {
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, ts.URL, http.StatusFound)
	}))
	defer ts.Close()

	_, err := FetchText(context.Background(), ts.URL, Options{MaxRedirects: 2})
	expectFetchError(t, err, http.StatusBadGateway, "FETCH_FAILED")
}

func TestFetchText_RedirectToNonHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "file:///etc/passwd", http.StatusFound)
	}))
	defer ts.Close()

	_, err := FetchText(context.Background(), ts.URL, Options{})
	expectFetchError(t, err, http.StatusBadRequest, "INVALID_ARGUMENT")
}
