package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Agrid-Dev/hvacstandards/internal/resources/s3"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// NewLogger builds a production logger, or a development one with
// readable console output.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// LoadStore reads the reference data selected by cfg.
func LoadStore(ctx context.Context, cfg DataConfig, log *zap.Logger) (*standards.Store, error) {
	switch {
	case cfg.S3Bucket != "":
		r, err := s3.NewReader(ctx, cfg.Region, s3.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return r.LoadStore(ctx, cfg.S3Bucket, cfg.S3Key)
	case cfg.Path != "":
		return standards.LoadFile(cfg.Path)
	default:
		return standards.Default()
	}
}

// BuildStandard loads the reference data and binds it to the configured
// standard.
func BuildStandard(ctx context.Context, cfg Config, log *zap.Logger, opts ...standards.Option) (*standards.Standard, error) {
	store, err := LoadStore(ctx, cfg.Data, log)
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}
	std, err := standards.New(cfg.Standard, store, append([]standards.Option{standards.WithLogger(log)}, opts...)...)
	if err != nil {
		return nil, err
	}
	log.Info("standard ready",
		zap.String("standard", std.ID()),
		zap.String("data_version", store.Version()),
		zap.Int("tables", len(store.Tables())))
	return std, nil
}
