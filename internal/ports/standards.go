package ports

import (
	"context"
	"time"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/report"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// SizingResults exposes values computed by a sizing simulation.
type SizingResults interface {
	AutosizedValue(objectType, objectName, field, units string) model.Optional[float64]
}

// WeatherData exposes the design conditions of the site.
type WeatherData interface {
	HeatingDesignTemperature() model.Optional[float64]
}

// SizingRunner runs a sizing simulation on m. It reports success only.
type SizingRunner interface {
	RunSizing(ctx context.Context, m *model.Model) bool
}

type ReportPublisher interface {
	Publish(ctx context.Context, r *report.Report) error
}

// LookupService is the read-only reference data port used by controllers.
type LookupService interface {
	Version() string
	Tables() []string
	Lookup(table string, key standards.SearchKey, sizing float64, asOf time.Time) (*standards.Record, bool)
}
