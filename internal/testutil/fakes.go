package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/report"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// FakeSizingResults implements ports.SizingResults over a map keyed by
// object name and field.
type FakeSizingResults struct {
	Values map[string]float64
	Calls  int
}

func NewFakeSizingResults() *FakeSizingResults {
	return &FakeSizingResults{Values: map[string]float64{}}
}

func (f *FakeSizingResults) Set(objectName, field string, v float64) {
	f.Values[objectName+"|"+field] = v
}

func (f *FakeSizingResults) AutosizedValue(_, objectName, field, _ string) model.Optional[float64] {
	f.Calls++
	if v, ok := f.Values[objectName+"|"+field]; ok {
		return model.Some(v)
	}
	return model.None[float64]()
}

// FakeWeather implements ports.WeatherData.
type FakeWeather struct {
	Temperature model.Optional[float64]
}

func (f FakeWeather) HeatingDesignTemperature() model.Optional[float64] { return f.Temperature }

// FakeSizingRunner implements ports.SizingRunner. OnRun, when set, is
// invoked with the model so tests can populate sizing results.
type FakeSizingRunner struct {
	Result bool
	OnRun  func(m *model.Model)
	Runs   int
}

func (f *FakeSizingRunner) RunSizing(_ context.Context, m *model.Model) bool {
	f.Runs++
	if f.OnRun != nil {
		f.OnRun(m)
	}
	return f.Result
}

// FakePublisher implements ports.ReportPublisher.
type FakePublisher struct {
	mu        sync.Mutex
	Published []*report.Report
	Err       error
}

func (f *FakePublisher) Publish(_ context.Context, r *report.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Published = append(f.Published, r)
	return nil
}

func (f *FakePublisher) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Published)
}

// FakeLookupService implements ports.LookupService with a canned record.
type FakeLookupService struct {
	VersionValue string
	TableNames   []string
	Record       *standards.Record

	LastTable  string
	LastKey    standards.SearchKey
	LastSizing float64
	LastAsOf   time.Time
}

func (f *FakeLookupService) Version() string { return f.VersionValue }

func (f *FakeLookupService) Tables() []string { return f.TableNames }

func (f *FakeLookupService) Lookup(table string, key standards.SearchKey, sizing float64, asOf time.Time) (*standards.Record, bool) {
	f.LastTable = table
	f.LastKey = key
	f.LastSizing = sizing
	f.LastAsOf = asOf
	return f.Record, f.Record != nil
}
