// Package requirements decides which optional air-side features a loop
// must carry (economizer, energy recovery, demand controlled ventilation)
// and applies them.
package requirements

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/ports"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// Feature names reported to a DecisionObserver.
const (
	FeatureEconomizer = "economizer"
	FeatureERV        = "erv"
)

// DecisionObserver is told the outcome of every requirement decision.
type DecisionObserver interface {
	ObserveRequirement(feature string, required bool)
}

// Evaluator answers requirement questions for the loops of one model.
type Evaluator struct {
	std      *standards.Standard
	results  ports.SizingResults
	weather  ports.WeatherData
	log      *zap.Logger
	observer DecisionObserver

	economizerExclusions []string
	ervExclusions        []string
}

type Option func(*Evaluator)

func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.log = l
		}
	}
}

func WithObserver(o DecisionObserver) Option {
	return func(e *Evaluator) { e.observer = o }
}

// WithEconomizerExclusions replaces the loop name substrings that are never
// required to carry an economizer.
func WithEconomizerExclusions(names ...string) Option {
	return func(e *Evaluator) { e.economizerExclusions = names }
}

// WithERVExclusions replaces the loop name substrings that are never
// required to carry energy recovery.
func WithERVExclusions(names ...string) Option {
	return func(e *Evaluator) { e.ervExclusions = names }
}

// New returns an Evaluator. results and weather may be nil; the decisions
// that need them then log and answer false.
func New(std *standards.Standard, results ports.SizingResults, weather ports.WeatherData, opts ...Option) *Evaluator {
	e := &Evaluator{
		std:                  std,
		results:              results,
		weather:              weather,
		log:                  std.Logger(),
		economizerExclusions: []string{"Outpatient F1"},
		ervExclusions:        []string{"Outpatient F1", "VAV_ER", "VAV_OR"},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func excluded(name string, substrings []string) bool {
	for _, s := range substrings {
		if s != "" && strings.Contains(name, s) {
			return true
		}
	}
	return false
}

func (e *Evaluator) decide(feature string, loop *model.AirLoop, required bool, reason string) bool {
	e.log.Debug("requirement decided",
		zap.String("feature", feature),
		zap.String("loop", loop.Name()),
		zap.Bool("required", required),
		zap.String("reason", reason))
	if e.observer != nil {
		e.observer.ObserveRequirement(feature, required)
	}
	return required
}

func (e *Evaluator) autosized(objectType, name, field, units string) model.Optional[float64] {
	if e.results == nil {
		return model.None[float64]()
	}
	return e.results.AutosizedValue(objectType, name, field, units)
}

// DCVRequired reports whether demand controlled ventilation is mandatory.
// It never is under NECB.
func (e *Evaluator) DCVRequired(*model.AirLoop) bool {
	return false
}
