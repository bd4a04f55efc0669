package engine

import "fmt"

// Strategy is one (choice heuristic, split rule) combination.
type Strategy struct {
	RectChoice RectChoice
	SplitRule  SplitRule
}

func (s Strategy) String() string {
	return fmt.Sprintf("%s/%s", s.RectChoice, s.SplitRule)
}

// StrategyResult holds the outcome of packing with a single strategy.
type StrategyResult struct {
	Strategy  Strategy
	Width     int
	Height    int
	Attempts  int
	Occupancy float64
	Err       error
}

// Area returns the final atlas area, or 0 when packing failed.
func (r StrategyResult) Area() int {
	if r.Err != nil {
		return 0
	}
	return r.Width * r.Height
}

// AllStrategies returns every choice heuristic paired with every split rule.
func AllStrategies() []Strategy {
	var out []Strategy
	for _, c := range RectChoices() {
		for _, s := range SplitRules() {
			out = append(out, Strategy{RectChoice: c, SplitRule: s})
		}
	}
	return out
}

// CompareStrategies packs rects once per strategy, overriding the heuristic
// fields of base, and returns the results in strategy order. This enables
// side-by-side comparison of how each heuristic pair sizes the same input.
func CompareStrategies(rects []RectSize, base Options, strategies []Strategy) []StrategyResult {
	results := make([]StrategyResult, 0, len(strategies))

	for _, s := range strategies {
		opts := base
		opts.RectChoice = s.RectChoice
		opts.SplitRule = s.SplitRule

		res, err := Pack(rects, opts)
		results = append(results, StrategyResult{
			Strategy:  s,
			Width:     res.Width,
			Height:    res.Height,
			Attempts:  res.Attempts,
			Occupancy: res.Occupancy,
			Err:       err,
		})
	}

	return results
}

// BestStrategy returns the index of the successful result with the smallest
// area, preferring higher occupancy on equal area. The first one wins any
// remaining tie. It returns -1 if every strategy failed.
func BestStrategy(results []StrategyResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := results[best]
		if r.Area() < b.Area() || (r.Area() == b.Area() && r.Occupancy > b.Occupancy) {
			best = i
		}
	}
	return best
}
