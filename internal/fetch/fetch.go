// Package fetch downloads subscription documents over http/https with
// bounded time, size and redirects.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/John-Robertt/override-go/internal/model"
)

const stage = "fetch_sub"

// DefaultUserAgent makes providers serve the mihomo flavored document.
const DefaultUserAgent = "clash.meta"

type Options struct {
	Timeout      time.Duration // default 15s
	MaxBytes     int64         // default 5 MiB
	MaxRedirects int           // default 5
	UserAgent    string        // default DefaultUserAgent
	Client       *http.Client  // optional; its Transport is reused
}

func (o Options) withDefaults() Options {
	if o.Timeout == 0 {
		o.Timeout = 15 * time.Second
	}
	if o.MaxBytes == 0 {
		o.MaxBytes = 5 * 1024 * 1024
	}
	if o.MaxRedirects == 0 {
		o.MaxRedirects = 5
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	return o
}

type FetchError struct {
	Status   int
	AppError model.AppError
	Cause    error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

var (
	errTooManyRedirects  = errors.New("too many redirects")
	errRedirectBadScheme = errors.New("redirect target scheme is not http/https")
)

// FetchText downloads rawURL and returns its body as UTF-8 text.
func FetchText(ctx context.Context, rawURL string, opt Options) (string, error) {
	opt = opt.withDefaults()
	fail := func(status int, code, msg string, cause error) error {
		return &FetchError{
			Status: status,
			AppError: model.AppError{
				Code:    code,
				Message: msg,
				Stage:   stage,
				URL:     rawURL,
			},
			Cause: cause,
		}
	}

	if opt.MaxBytes < 0 {
		return "", fail(http.StatusBadRequest, "INVALID_ARGUMENT", "响应大小上限必须大于 0", nil)
	}
	u, err := url.Parse(rawURL)
	if err != nil || u == nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fail(http.StatusBadRequest, "INVALID_ARGUMENT", "仅允许 http/https URL", err)
	}

	transport := http.DefaultTransport
	if opt.Client != nil && opt.Client.Transport != nil {
		transport = opt.Client.Transport
	}
	client := &http.Client{
		Timeout:   opt.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// len(via) is the number of requests already made.
			if len(via) > opt.MaxRedirects {
				return errTooManyRedirects
			}
			if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
				return errRedirectBadScheme
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fail(http.StatusBadRequest, "INVALID_ARGUMENT", "请求 URL 不合法", err)
	}
	req.Header.Set("User-Agent", opt.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		switch {
		case errors.Is(err, errTooManyRedirects):
			return "", fail(http.StatusBadGateway, "FETCH_FAILED", fmt.Sprintf("重定向次数超过上限（>%d）", opt.MaxRedirects), err)
		case errors.Is(err, errRedirectBadScheme):
			return "", fail(http.StatusBadRequest, "INVALID_ARGUMENT", "重定向目标仅允许 http/https", err)
		case isTimeout(err):
			return "", fail(http.StatusGatewayTimeout, "FETCH_TIMEOUT", "拉取订阅超时", err)
		default:
			return "", fail(http.StatusBadGateway, "FETCH_FAILED", "拉取订阅失败", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fail(http.StatusBadGateway, "FETCH_FAILED", fmt.Sprintf("上游返回非 2xx 状态码：%d", resp.StatusCode), nil)
	}

	// Read one byte past the cap to detect overflow.
	body, err := io.ReadAll(io.LimitReader(resp.Body, opt.MaxBytes+1))
	if err != nil {
		if isTimeout(err) {
			return "", fail(http.StatusGatewayTimeout, "FETCH_TIMEOUT", "拉取订阅超时", err)
		}
		return "", fail(http.StatusBadGateway, "FETCH_FAILED", "读取上游响应失败", err)
	}
	if int64(len(body)) > opt.MaxBytes {
		return "", fail(http.StatusUnprocessableEntity, "TOO_LARGE", fmt.Sprintf("订阅内容过大（>%d bytes）", opt.MaxBytes), nil)
	}
	if !utf8.Valid(body) {
		return "", fail(http.StatusUnprocessableEntity, "FETCH_INVALID_UTF8", "订阅内容不是合法 UTF-8 文本", nil)
	}
	return string(body), nil
}

func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
