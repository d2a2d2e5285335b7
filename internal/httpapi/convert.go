package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/John-Robertt/override-go/internal/compiler"
	"github.com/John-Robertt/override-go/internal/fetch"
	"github.com/John-Robertt/override-go/internal/model"
	"github.com/John-Robertt/override-go/internal/render"
	"github.com/John-Robertt/override-go/internal/source"
)

type convertHandler struct {
	opt Options
}

type convertRequest struct {
	URLs     []string
	Flags    model.Flags
	FileName string
}

// handleSub fetches one or more subscriptions and converts their combined
// node pool: GET /sub?url=<u>[&url=<u2>...]&landing=true...
func (h convertHandler) handleSub(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query(), true, h.opt.MaxSubs)
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opt.ConvertTimeout)
	defer cancel()

	proxies, err := FetchSubs(ctx, req.URLs, fetch.Options{Timeout: h.opt.FetchTimeout})
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}
	respond(w, proxies, req, "sub")
}

// handleConvert converts the node pool posted as the request body. Flags come
// from the query string.
func (h convertHandler) handleConvert(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query(), false, 0)
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opt.MaxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeErrorFromErr(w, apiError(http.StatusRequestEntityTooLarge, model.AppError{
				Code:    "TOO_LARGE",
				Message: fmt.Sprintf("请求体过大（>%d bytes）", mbe.Limit),
				Stage:   "validate_request",
			}, err))
			return
		}
		writeErrorFromErr(w, requestError("INVALID_ARGUMENT", "读取请求体失败", err.Error()))
		return
	}
	if !utf8.Valid(body) {
		writeErrorFromErr(w, requestError("INVALID_ARGUMENT", "请求体不是合法 UTF-8 文本", ""))
		return
	}

	proxies, err := source.ParseProxiesYAML("request body", string(body))
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}
	respond(w, proxies, req, "body")
}

func respond(w http.ResponseWriter, proxies []model.Proxy, req convertRequest, input string) {
	res, err := compiler.Compile(proxies, req.Flags)
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}
	out, err := render.Render(res, req.Flags)
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}
	if err := setAttachmentHeaders(w, req.FileName); err != nil {
		writeErrorFromErr(w, err)
		return
	}
	metricsObserveConversion(input, res)
	WriteYAML(w, http.StatusOK, out)
}

// parseQuery reads flags, filename and (for /sub) url parameters. Unknown
// keys are rejected so typos do not silently turn a flag off.
func parseQuery(q url.Values, withURL bool, maxSubs int) (convertRequest, error) {
	var req convertRequest
	args := make(map[string]any, len(model.FlagKeys))

	for _, key := range slices.Sorted(maps.Keys(q)) {
		values := q[key]
		switch {
		case key == "url" && withURL:
			for _, v := range values {
				v = strings.TrimSpace(v)
				if v == "" {
					return convertRequest{}, requestError("INVALID_ARGUMENT", "url 不能为空", "")
				}
				req.URLs = append(req.URLs, v)
			}
		case key == "filename" || lo.Contains(model.FlagKeys, key):
			if len(values) != 1 {
				return convertRequest{}, requestError("INVALID_ARGUMENT", fmt.Sprintf("%s 参数只能出现一次", key), "")
			}
			if key == "filename" {
				if _, err := outputFileName(values[0]); err != nil {
					return convertRequest{}, err
				}
				req.FileName = values[0]
				continue
			}
			args[key] = values[0]
		default:
			return convertRequest{}, requestError("INVALID_ARGUMENT", fmt.Sprintf("不支持的 query 参数：%s", key), "allowed: "+strings.Join(allowedKeys(withURL), ","))
		}
	}

	if withURL {
		if len(req.URLs) == 0 {
			return convertRequest{}, requestError("INVALID_ARGUMENT", "缺少 url 参数", "expected: url=<subscription url>")
		}
		if len(req.URLs) > maxSubs {
			return convertRequest{}, requestError("INVALID_ARGUMENT", "url 参数过多", fmt.Sprintf("max=%d", maxSubs))
		}
	}
	req.Flags = model.FlagsFromMap(args)
	return req, nil
}

func allowedKeys(withURL bool) []string {
	keys := append([]string{"filename"}, model.FlagKeys...)
	if withURL {
		keys = append([]string{"url"}, keys...)
	}
	return keys
}

// FetchSubs downloads every distinct URL concurrently and
// concatenates the pools in argument order.
func FetchSubs(ctx context.Context, urls []string, opt fetch.Options) ([]model.Proxy, error) {
	uniq := lo.Uniq(urls)
	parts := make([][]model.Proxy, len(uniq))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range uniq {
		g.Go(func() error {
			text, err := fetch.FetchText(gctx, u, opt)
			if err != nil {
				return err
			}
			proxies, err := source.ParseProxiesYAML(u, text)
			if err != nil {
				return err
			}
			parts[i] = proxies
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lo.Flatten(parts), nil
}
