// Package standards holds the reference data store, the lookup resolver and
// the Standard context that every configuration call receives.
package standards

import (
	"time"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
)

// LookupObserver is notified of every lookup outcome.
type LookupObserver interface {
	ObserveLookup(table string, hit bool)
}

// Standard is the active code/template context. It is passed explicitly to
// every lookup and assembly call.
type Standard struct {
	id       string
	store    *Store
	log      *zap.Logger
	observer LookupObserver
	now      func() time.Time
}

type Option func(*Standard)

func WithLogger(l *zap.Logger) Option {
	return func(s *Standard) {
		if l != nil {
			s.log = l
		}
	}
}

func WithObserver(o LookupObserver) Option {
	return func(s *Standard) { s.observer = o }
}

// WithClock overrides the date used for effective-date filtering.
func WithClock(now func() time.Time) Option {
	return func(s *Standard) {
		if now != nil {
			s.now = now
		}
	}
}

func New(id string, store *Store, opts ...Option) (*Standard, error) {
	if id == "" {
		return nil, ErrEmptyStandardID
	}
	if store == nil {
		return nil, ErrNilStore
	}
	s := &Standard{id: id, store: store, log: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With(zap.String("standard", id))
	return s, nil
}

func (s *Standard) ID() string { return s.id }

func (s *Standard) Store() *Store { return s.store }

func (s *Standard) Logger() *zap.Logger { return s.log }

func (s *Standard) Now() time.Time { return s.now() }

// Constant returns a store constant, or def when the store lacks it.
func (s *Standard) Constant(name string, def float64) float64 {
	return s.store.Constant(name).OrElse(def)
}

// NewSearchKey returns a key constrained to this standard's template.
func (s *Standard) NewSearchKey() SearchKey {
	return NewSearchKey(s.id)
}

// Lookup resolves the best record in table. A miss is logged and reported
// as false, never as an error.
func (s *Standard) Lookup(table string, key SearchKey, sizing float64, opts ...MatchOption) (*Record, bool) {
	t, err := s.store.Table(table)
	if err != nil {
		s.log.Warn("lookup on unknown table", zap.String("table", table), zap.Error(err))
		s.observe(table, false)
		return nil, false
	}
	rec, ok := t.FindBestMatch(key, sizing, opts...)
	s.observe(table, ok)
	if !ok {
		s.log.Warn("no reference record matches",
			zap.String("table", table),
			zap.Stringer("key", key),
			zap.Float64("sizing", sizing))
		return nil, false
	}
	s.log.Debug("reference record selected",
		zap.String("record", rec.ID()),
		zap.Stringer("key", key),
		zap.Float64("sizing", sizing))
	return rec, true
}

func (s *Standard) observe(table string, hit bool) {
	if s.observer != nil {
		s.observer.ObserveLookup(table, hit)
	}
}

// UnwrapOrLog returns the value held by opt. When opt is unset it logs msg
// at warn level and reports false.
func UnwrapOrLog[T any](log *zap.Logger, opt model.Optional[T], msg string, fields ...zap.Field) (T, bool) {
	v, ok := opt.Get()
	if !ok {
		log.Warn(msg, fields...)
	}
	return v, ok
}
