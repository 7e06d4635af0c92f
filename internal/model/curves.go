package model

import (
	"fmt"
	"strings"
)

type CurveForm int

const (
	CurveUnknown CurveForm = iota
	CurveLinear
	CurveQuadratic
	CurveCubic
	CurveBiquadratic
	CurveBicubic
)

// coefficients expected per form
var curveArity = map[CurveForm]int{
	CurveLinear:      2,
	CurveQuadratic:   3,
	CurveCubic:       4,
	CurveBiquadratic: 6,
	CurveBicubic:     10,
}

func (f CurveForm) Valid() bool {
	_, ok := curveArity[f]
	return ok
}

func (f CurveForm) String() string {
	switch f {
	case CurveLinear:
		return "linear"
	case CurveQuadratic:
		return "quadratic"
	case CurveCubic:
		return "cubic"
	case CurveBiquadratic:
		return "biquadratic"
	case CurveBicubic:
		return "bicubic"
	default:
		return "unknown"
	}
}

func ParseCurveForm(s string) (CurveForm, error) {
	switch strings.ToLower(s) {
	case "linear":
		return CurveLinear, nil
	case "quadratic":
		return CurveQuadratic, nil
	case "cubic":
		return CurveCubic, nil
	case "biquadratic":
		return CurveBiquadratic, nil
	case "bicubic":
		return CurveBicubic, nil
	default:
		return CurveUnknown, fmt.Errorf("invalid curve form: %q", s)
	}
}

// Curve is a polynomial performance curve in one or two variables.
type Curve struct {
	Name         string
	Form         CurveForm
	Coefficients []float64
	MinX, MaxX   float64
	MinY, MaxY   float64
}

// Validate checks the coefficient count against the form.
func (c Curve) Validate() error {
	n, ok := curveArity[c.Form]
	if !ok {
		return fmt.Errorf("curve %q: invalid form", c.Name)
	}
	if len(c.Coefficients) != n {
		return fmt.Errorf("curve %q: %s needs %d coefficients, got %d", c.Name, c.Form, n, len(c.Coefficients))
	}
	return nil
}

// Evaluate returns the curve value. Inputs are clamped to the curve limits
// when limits are set.
func (c *Curve) Evaluate(x, y float64) float64 {
	x = clampLimit(x, c.MinX, c.MaxX)
	y = clampLimit(y, c.MinY, c.MaxY)
	k := make([]float64, curveArity[CurveBicubic])
	copy(k, c.Coefficients)

	switch c.Form {
	case CurveLinear:
		return k[0] + k[1]*x
	case CurveQuadratic:
		return k[0] + k[1]*x + k[2]*x*x
	case CurveCubic:
		return k[0] + k[1]*x + k[2]*x*x + k[3]*x*x*x
	case CurveBiquadratic:
		return k[0] + k[1]*x + k[2]*x*x + k[3]*y + k[4]*y*y + k[5]*x*y
	case CurveBicubic:
		return k[0] + k[1]*x + k[2]*x*x + k[3]*y + k[4]*y*y + k[5]*x*y +
			k[6]*x*x*x + k[7]*y*y*y + k[8]*x*x*y + k[9]*x*y*y
	}
	return 0
}

func clampLimit(v, lo, hi float64) float64 {
	if hi <= lo {
		return v
	}
	return min(max(v, lo), hi)
}

// CurveSource supplies curve definitions by name, typically the reference
// data store.
type CurveSource interface {
	CurveSpec(name string) (Curve, bool)
}

// CurveRegistry holds the curves instantiated in a model.
type CurveRegistry struct {
	curves map[string]*Curve
	source CurveSource
}

func NewCurveRegistry(src CurveSource) *CurveRegistry {
	return &CurveRegistry{curves: map[string]*Curve{}, source: src}
}

// Add registers c, replacing any curve of the same name.
func (r *CurveRegistry) Add(c *Curve) *Curve {
	r.curves[c.Name] = c
	return c
}

// GetOrCreate returns the named curve, instantiating it from the source on
// first use. It reports none when neither the model nor the source knows
// the name.
func (r *CurveRegistry) GetOrCreate(name string) Optional[*Curve] {
	if c, ok := r.curves[name]; ok {
		return Some(c)
	}
	if r.source == nil {
		return None[*Curve]()
	}
	spec, ok := r.source.CurveSpec(name)
	if !ok {
		return None[*Curve]()
	}
	c := spec
	c.Coefficients = append([]float64(nil), spec.Coefficients...)
	return Some(r.Add(&c))
}

func (r *CurveRegistry) Len() int { return len(r.curves) }
