package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOutputFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "config.yaml"},
		{in: "my sub", want: "my sub.yaml"},
		{in: "mihomo.yml", want: "mihomo.yml"},
		{in: "a/b", wantErr: true},
		{in: "a\nb", wantErr: true},
		{in: strings.Repeat("x", 201), wantErr: true},
	}
	for _, tc := range cases {
		got, err := outputFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("outputFileName(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("outputFileName(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("outputFileName(%q)=%q, want=%q", tc.in, got, tc.want)
		}
	}
}

func TestConvert_ContentDisposition(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/convert?filename=%E6%9C%BA%E5%9C%BA", strings.NewReader("proxies: []\n"))
	rr := httptest.NewRecorder()
	NewMux().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	cd := rr.Header().Get("Content-Disposition")
	if !strings.Contains(cd, `filename="机场.yaml"`) || !strings.Contains(cd, "filename*=UTF-8''%E6%9C%BA%E5%9C%BA.yaml") {
		t.Fatalf("Content-Disposition=%q", cd)
	}
}
