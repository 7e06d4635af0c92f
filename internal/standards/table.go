package standards

import (
	"math"
	"time"
)

// Table is a named, ordered set of reference records.
type Table struct {
	Name    string
	Keys    []string
	Records []*Record
}

type matchOptions struct {
	asOf time.Time
}

type MatchOption func(*matchOptions)

// AsOf drops records whose effective range does not contain t.
func AsOf(t time.Time) MatchOption {
	return func(o *matchOptions) { o.asOf = t }
}

// FindBestMatch returns the record best matching key at the sizing value.
//
// Records must satisfy every key field (wildcards match anything) and have
// a capacity range containing sizing. A sizing value at or below the
// smallest lower bound of the categorical matches is clamped to the lowest
// range. Among the survivors the record with the most exact field matches
// wins; ties go to the earliest record in the table.
func (t *Table) FindBestMatch(key SearchKey, sizing float64, opts ...MatchOption) (*Record, bool) {
	var o matchOptions
	for _, fn := range opts {
		fn(&o)
	}

	type candidate struct {
		rec      *Record
		specific int
	}
	var cands []candidate
	lowest := math.Inf(1)
	for _, r := range t.Records {
		ok, n := r.matches(key)
		if !ok {
			continue
		}
		if !o.asOf.IsZero() && r.Effective != nil && !r.Effective.Contains(o.asOf) {
			continue
		}
		cands = append(cands, candidate{r, n})
		if r.Capacity != nil && r.Capacity.Min < lowest {
			lowest = r.Capacity.Min
		}
	}

	clamp := sizing <= lowest
	var best *candidate
	for i := range cands {
		c := &cands[i]
		if cr := c.rec.Capacity; cr != nil {
			if clamp && cr.Min != lowest {
				continue
			}
			if !clamp && !cr.Contains(sizing) {
				continue
			}
		}
		if best == nil || c.specific > best.specific {
			best = c
		}
	}
	if best == nil {
		return nil, false
	}
	return best.rec, true
}
