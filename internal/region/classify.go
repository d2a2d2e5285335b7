package region

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

// Name patterns shared by the scanner and the group assembler.
const (
	// ISPPattern marks home-broadband / residential / landing nodes.
	ISPPattern = "(?i)家宽|家庭|家庭宽带|商宽|商业宽带|星链|Starlink|落地"
	// LowCostAlternatives is LowCostPattern without its flag group, for
	// joining into larger filters.
	LowCostAlternatives = `0\.[0-5]|低倍率|省流|大流量|实验性`
	// LowCostPattern marks reduced-rate or experimental nodes.
	LowCostPattern = "(?i)" + LowCostAlternatives
)

// noTimeout pins every pattern to an unbounded match time regardless of
// regexp2.DefaultMatchTimeout. match depends on MatchString never failing.
const noTimeout = time.Duration(math.MaxInt64)

// Classifier assigns a node name to at most one region. It is immutable after
// construction and safe for concurrent use.
type Classifier struct {
	regions []compiled
	isp     *regexp2.Regexp
	lowCost *regexp2.Regexp
}

type compiled struct {
	id string
	re *regexp2.Regexp
}

// NewClassifier compiles the given descriptors in order. Patterns run
// without a match timeout, so a name either matches or it does not.
func NewClassifier(descs []Descriptor) (*Classifier, error) {
	c := &Classifier{regions: make([]compiled, 0, len(descs))}
	for _, d := range descs {
		re, err := compile(d.Pattern)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", d.ID, err)
		}
		c.regions = append(c.regions, compiled{id: d.ID, re: re})
	}
	var err error
	if c.isp, err = compile(ISPPattern); err != nil {
		return nil, fmt.Errorf("isp pattern: %w", err)
	}
	if c.lowCost, err = compile(LowCostPattern); err != nil {
		return nil, fmt.Errorf("low-cost pattern: %w", err)
	}
	return c, nil
}

var (
	defaultOnce       sync.Once
	defaultClassifier *Classifier
)

// Default returns the classifier for the built-in catalog.
func Default() *Classifier {
	defaultOnce.Do(func() {
		c, err := NewClassifier(catalog[:])
		if err != nil {
			// The catalog is a compile-time constant.
			panic(err)
		}
		defaultClassifier = c
	})
	return defaultClassifier
}

// Classify returns the first region, in catalog order, whose pattern matches
// name.
func (c *Classifier) Classify(name string) (string, bool) {
	for _, r := range c.regions {
		if match(r.re, name) {
			return r.id, true
		}
	}
	return "", false
}

// IsISP reports whether name looks like a residential/landing node.
func (c *Classifier) IsISP(name string) bool { return match(c.isp, name) }

// IsLowCost reports whether name looks like a reduced-rate node.
func (c *Classifier) IsLowCost(name string) bool { return match(c.lowCost, name) }

// CompileFilter compiles a mihomo filter string the way the client will.
func CompileFilter(pattern string) (*regexp2.Regexp, error) { return compile(pattern) }

func compile(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = noTimeout
	return re, nil
}

func match(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}
