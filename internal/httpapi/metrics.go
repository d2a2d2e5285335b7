package httpapi

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/John-Robertt/override-go/internal/compiler"
)

// Label values are joined with a byte that never occurs in valid UTF-8.
const labelSep = "\xff"

// counterVec is one counter family in Prometheus text format. A family
// without labels always reports a sample, starting at zero.
type counterVec struct {
	name   string
	help   string
	labels []string
	values map[string]uint64
}

func newCounterVec(name, help string, labels ...string) *counterVec {
	return &counterVec{name: "override_" + name, help: help, labels: labels, values: make(map[string]uint64)}
}

func (c *counterVec) add(n uint64, labelValues ...string) {
	for i, v := range labelValues {
		v = strings.TrimSpace(v)
		if v == "" {
			v = "(unknown)"
		}
		labelValues[i] = v
	}
	c.values[strings.Join(labelValues, labelSep)] += n
}

func (c *counterVec) writeTo(b *strings.Builder) {
	fmt.Fprintf(b, "# HELP %s %s\n# TYPE %s counter\n", c.name, c.help, c.name)
	if len(c.labels) == 0 {
		fmt.Fprintf(b, "%s %d\n", c.name, c.values[""])
		return
	}
	for _, key := range slices.Sorted(maps.Keys(c.values)) {
		b.WriteString(c.name)
		b.WriteByte('{')
		for i, v := range strings.Split(key, labelSep) {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%s=\"%s\"", c.labels[i], promLabelEscape(v))
		}
		fmt.Fprintf(b, "} %d\n", c.values[key])
	}
}

// metricsStore holds the process-wide counters exposed on /metrics: HTTP
// traffic, errors by stage, and what the conversions produced.
type metricsStore struct {
	mu sync.Mutex

	requests     *counterVec
	byPattern    *counterVec
	appErrors    *counterVec
	conversions  *counterVec
	proxies      *counterVec
	regionGroups *counterVec
	lowCost      *counterVec
}

func newMetricsStore() *metricsStore {
	return &metricsStore{
		requests:     newCounterVec("http_requests_total", "Total HTTP requests."),
		byPattern:    newCounterVec("http_requests_by_pattern_total", "HTTP requests by ServeMux pattern and status.", "pattern", "status"),
		appErrors:    newCounterVec("app_errors_total", "Application errors returned to clients.", "stage", "code"),
		conversions:  newCounterVec("conversions_total", "Configs generated, by input kind.", "input"),
		proxies:      newCounterVec("proxies_converted_total", "Nodes written into generated configs, after renaming.", "input"),
		regionGroups: newCounterVec("region_groups_generated_total", "Region groups generated, by region.", "region"),
		lowCost:      newCounterVec("low_cost_pools_total", "Conversions whose pool had low-cost nodes."),
	}
}

func (s *metricsStore) families() []*counterVec {
	return []*counterVec{s.requests, s.byPattern, s.appErrors, s.conversions, s.proxies, s.regionGroups, s.lowCost}
}

var metrics = newMetricsStore()

func metricsIncRequest(pattern string, status int) {
	if status == 0 {
		status = http.StatusOK
	}

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	metrics.requests.add(1)
	metrics.byPattern.add(1, pattern, strconv.Itoa(status))
}

func metricsIncAppError(stage, code string) {
	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	metrics.appErrors.add(1, stage, code)
}

// metricsObserveConversion records a successful conversion. input is "sub"
// for fetched subscriptions and "body" for posted pools.
func metricsObserveConversion(input string, res *compiler.Result) {
	significant := res.Attributes.Significant()

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	metrics.conversions.add(1, input)
	metrics.proxies.add(uint64(len(res.Proxies)), input)
	for _, id := range significant {
		metrics.regionGroups.add(1, id)
	}
	if res.Attributes.HasLowCost {
		metrics.lowCost.add(1)
	}
}

func handleMetrics(w http.ResponseWriter, r *http.Request) {
	// Prometheus text exposition format.
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	var b strings.Builder
	metrics.mu.Lock()
	for _, c := range metrics.families() {
		c.writeTo(&b)
	}
	metrics.mu.Unlock()

	_, _ = fmt.Fprint(w, b.String())
}

func promLabelEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
