package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/building"
	"github.com/Agrid-Dev/hvacstandards/internal/equipment"
	"github.com/Agrid-Dev/hvacstandards/internal/metrics"
	"github.com/Agrid-Dev/hvacstandards/internal/ports"
	"github.com/Agrid-Dev/hvacstandards/internal/report"
	"github.com/Agrid-Dev/hvacstandards/internal/requirements"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// Service configures described buildings and hands every report to the
// registered publishers.
type Service struct {
	std        *standards.Standard
	cfg        Config
	log        *zap.Logger
	metrics    *metrics.Metrics
	runner     ports.SizingRunner
	publishers []ports.ReportPublisher
}

type ServiceOption func(*Service)

func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

func WithSizingRunner(r ports.SizingRunner) ServiceOption {
	return func(s *Service) { s.runner = r }
}

// WithPublisher appends p. Nil publishers are ignored.
func WithPublisher(p ports.ReportPublisher) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.publishers = append(s.publishers, p)
		}
	}
}

func NewService(std *standards.Standard, cfg Config, log *zap.Logger, opts ...ServiceOption) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{std: std, cfg: cfg, log: log}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Configure builds d and runs the configuration pipeline on it. The
// site heating design temperature from the config fills in for a
// description that has none; d itself is not modified. Publish failures
// are logged and never fail the run.
func (s *Service) Configure(ctx context.Context, d *building.Description) (*report.Report, error) {
	desc := *d
	if desc.HeatingDesignTemperature == nil {
		desc.HeatingDesignTemperature = s.cfg.Weather.HeatingDesignTemperature
	}
	b, err := building.Build(s.std, &desc, s.log)
	if err != nil {
		return nil, err
	}

	o := building.ConfigureOptions{Log: s.log, Runner: s.runner}
	if ex := s.cfg.Requirements.EconomizerExclusions; len(ex) > 0 {
		o.Requirements = append(o.Requirements, requirements.WithEconomizerExclusions(ex...))
	}
	if ex := s.cfg.Requirements.ERVExclusions; len(ex) > 0 {
		o.Requirements = append(o.Requirements, requirements.WithERVExclusions(ex...))
	}
	if s.metrics != nil {
		o.Requirements = append(o.Requirements, requirements.WithObserver(s.metrics))
		o.Equipment = append(o.Equipment, equipment.WithSizingObserver(s.metrics))
	}
	rep := building.Configure(ctx, s.std, b, o)
	if s.metrics != nil {
		s.metrics.ObserveReport(rep)
	}

	for _, p := range s.publishers {
		if err := p.Publish(ctx, rep); err != nil {
			s.log.Warn("report publish failed", zap.String("report", rep.ID.String()), zap.Error(err))
		}
	}
	return rep, nil
}
