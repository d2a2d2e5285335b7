package region

// SignificanceThreshold is the node count a region must exceed before it
// gets its own group.
const SignificanceThreshold = 2

type Count struct {
	Region string
	Count  int
}

// Attributes is what a single sweep over the pool learns.
type Attributes struct {
	Counts     []Count // catalog order, only regions with at least one node
	HasLowCost bool
}

// Scan counts nodes per region, skipping ISP/landing names, and detects
// low-cost nodes. Each name counts toward at most one region.
func (c *Classifier) Scan(names []string) Attributes {
	counts := make(map[string]int, len(c.regions))
	var attrs Attributes
	for _, name := range names {
		if !attrs.HasLowCost && c.IsLowCost(name) {
			attrs.HasLowCost = true
		}
		if c.IsISP(name) {
			continue
		}
		if id, ok := c.Classify(name); ok {
			counts[id]++
		}
	}
	for _, r := range c.regions {
		if n := counts[r.id]; n > 0 {
			attrs.Counts = append(attrs.Counts, Count{Region: r.id, Count: n})
		}
	}
	return attrs
}

// Significant returns the regions whose count exceeds SignificanceThreshold,
// in catalog order.
func (a Attributes) Significant() []string {
	out := make([]string, 0, len(a.Counts))
	for _, c := range a.Counts {
		if c.Count > SignificanceThreshold {
			out = append(out, c.Region)
		}
	}
	return out
}
