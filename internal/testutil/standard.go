package testutil

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// Reference date used by tests so effective-date filtering is stable.
var ReferenceDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// NewTestStore loads the bundled reference data.
func NewTestStore(t testing.TB) *standards.Store {
	t.Helper()
	s, err := standards.Default()
	if err != nil {
		t.Fatalf("load default store: %v", err)
	}
	return s
}

// NewStandard returns the NECB2011 context over the bundled data, pinned
// to ReferenceDate.
func NewStandard(t testing.TB, log *zap.Logger) *standards.Standard {
	t.Helper()
	if log == nil {
		log = zap.NewNop()
	}
	std, err := standards.New("NECB2011", NewTestStore(t),
		standards.WithLogger(log),
		standards.WithClock(func() time.Time { return ReferenceDate }))
	if err != nil {
		t.Fatalf("new standard: %v", err)
	}
	return std
}
