package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/cmd/app"
	"github.com/Agrid-Dev/hvacstandards/internal/building"
	httpctrl "github.com/Agrid-Dev/hvacstandards/internal/controllers/http"
	mqttctrl "github.com/Agrid-Dev/hvacstandards/internal/controllers/mqtt"
	"github.com/Agrid-Dev/hvacstandards/internal/metrics"
	"github.com/Agrid-Dev/hvacstandards/internal/requirements"
	"github.com/Agrid-Dev/hvacstandards/internal/resources/mongodb"
	"github.com/Agrid-Dev/hvacstandards/internal/staging"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

func serveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups and configuration over HTTP and MQTT",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return c.serve(ctx, cancel)
		},
	}
}

func (c *cli) serve(ctx context.Context, cancel context.CancelFunc) error {
	httpCfg, mqttCfg := c.cfg.Controllers.HTTP, c.cfg.Controllers.MQTT
	if !httpCfg.Enabled && !mqttCfg.Enabled {
		return errors.New("no controller enabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	std, err := app.BuildStandard(ctx, c.cfg, c.log, standards.WithObserver(m))
	if err != nil {
		return err
	}
	catalog := standards.NewCatalog(std)
	opts := []app.ServiceOption{app.WithMetrics(m)}

	var runners []func(context.Context) error

	if mqttCfg.Enabled {
		ctrl, err := mqttctrl.New(catalog, c.mqttConfig(), mqttctrl.WithLogger(c.log))
		if err != nil {
			return err
		}
		opts = append(opts, app.WithPublisher(ctrl))
		runners = append(runners, ctrl.Run)
	}

	if c.cfg.Mongo.Enabled {
		repo, err := c.openMongo(ctx)
		if err != nil {
			return err
		}
		defer closeMongo(repo, c.log)
		opts = append(opts, app.WithPublisher(repo))
	}

	if httpCfg.Enabled {
		srv := httpctrl.New(catalog, httpCfg.Addr,
			httpctrl.WithLogger(c.log),
			httpctrl.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
			httpctrl.WithConfigurer(app.NewService(std, c.cfg, c.log, opts...)),
			httpctrl.WithExhaustHeatThreshold(std.Constant("erv_exhaust_heat_threshold", httpctrl.DefaultExhaustHeatThreshold)))
		runners = append(runners, srv.Run)
	}

	errCh := make(chan error, len(runners))
	for _, run := range runners {
		go func() { errCh <- run(ctx) }()
	}

	var first error
	for range runners {
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) && first == nil {
			first = err
			cancel()
		}
	}
	c.log.Info("stopped")
	return first
}

func (c *cli) mqttConfig() mqttctrl.Config {
	m := c.cfg.Controllers.MQTT
	return mqttctrl.Config{
		InstanceID:     c.cfg.InstanceID,
		BrokerURL:      m.BrokerURL,
		ClientID:       m.ClientID,
		BaseTopic:      m.BaseTopic,
		QoS:            m.QoS,
		RetainReports:  m.Retain,
		StatusInterval: m.StatusInterval,
		Username:       m.Username,
		Password:       m.Password,
	}
}

func (c *cli) openMongo(ctx context.Context) (*mongodb.ReportRepository, error) {
	mc := c.cfg.Mongo
	return mongodb.NewReportRepository(ctx, mc.URI, mc.Database, mc.Collection, mongodb.WithLogger(c.log))
}

func closeMongo(repo *mongodb.ReportRepository, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repo.Close(ctx); err != nil {
		log.Warn("mongo disconnect failed", zap.Error(err))
	}
}

func lookupCmd(c *cli) *cobra.Command {
	var (
		key    map[string]string
		sizing float64
		asOf   string
	)
	cmd := &cobra.Command{
		Use:   "lookup [table]",
		Short: "Find the reference record that best matches a search key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []standards.MatchOption
			if asOf != "" {
				t, err := time.Parse(time.DateOnly, asOf)
				if err != nil {
					return fmt.Errorf("--as-of: %w", err)
				}
				opts = append(opts, standards.AsOf(t))
			}
			std, err := app.BuildStandard(cmd.Context(), c.cfg, c.log)
			if err != nil {
				return err
			}
			k := std.NewSearchKey()
			for f, v := range key {
				k.Set(f, v)
			}
			rec, ok := std.Lookup(args[0], k, sizing, opts...)
			if !ok {
				return fmt.Errorf("no %s record matches %s", args[0], k)
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"id":            rec.ID(),
				"applicability": rec.Applicability,
				"payload":       rec.Payload,
				"curves":        rec.Curves,
			})
		},
	}
	cmd.Flags().StringToStringVar(&key, "key", nil, "search key field=value, repeatable")
	cmd.Flags().Float64Var(&sizing, "sizing", 0, "capacity used to pick a capacity band")
	cmd.Flags().StringVar(&asOf, "as-of", "", "effective date (YYYY-MM-DD)")
	return cmd
}

func stagesCmd(_ *cli) *cobra.Command {
	var (
		maxStages int
		unitStep  float64
		refFlow   float64
	)
	cmd := &cobra.Command{
		Use:   "stages [total-capacity-w]",
		Short: "Split a total capacity into heat pump stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("total capacity: %w", err)
			}
			caps, err := staging.Capacities(total, maxStages, unitStep)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"stage_count": staging.StageCount(total, maxStages, unitStep),
				"capacities":  caps,
				"flows":       staging.Flows(caps, total, refFlow),
			})
		},
	}
	cmd.Flags().IntVar(&maxStages, "max-stages", staging.DefaultMaxStages, "maximum number of stages")
	cmd.Flags().Float64Var(&unitStep, "unit-step", staging.DefaultUnitStep, "capacity per stage unit in W")
	cmd.Flags().Float64Var(&refFlow, "ref-flow", 0, "rated flow at full capacity")
	return cmd
}

func validateCmd(_ *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [data-path]",
		Short: "Check a reference data document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := standards.LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := store.Validate(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: version %s, %d tables\n", store.Version(), len(store.Tables()))
			return err
		},
	}
}

func exhaustCmd(c *cli) *cobra.Command {
	var (
		zones   []string
		outdoor float64
	)
	cmd := &cobra.Command{
		Use:   "exhaust",
		Short: "Compute the exhaust heat content of a set of zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exhausts := make([]requirements.ZoneExhaust, 0, len(zones))
			for _, z := range zones {
				ze, err := parseZoneExhaust(z)
				if err != nil {
					return err
				}
				exhausts = append(exhausts, ze)
			}
			std, err := app.BuildStandard(cmd.Context(), c.cfg, c.log)
			if err != nil {
				return err
			}
			kw, ok := requirements.ExhaustHeatContent(exhausts, outdoor)
			threshold := std.Constant("erv_exhaust_heat_threshold", httpctrl.DefaultExhaustHeatThreshold)
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"exhaust_heat_kw": kw,
				"defined":         ok,
				"required":        ok && kw > threshold,
			})
		},
	}
	cmd.Flags().StringArrayVar(&zones, "zone", nil, "zone as name:outdoor_air_m3s:heating_temperature_c, repeatable")
	cmd.Flags().Float64Var(&outdoor, "outdoor", 0, "heating design outdoor temperature in degC")
	_ = cmd.MarkFlagRequired("outdoor")
	return cmd
}

func parseZoneExhaust(v string) (requirements.ZoneExhaust, error) {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return requirements.ZoneExhaust{}, fmt.Errorf("zone %q: want name:flow:temperature", v)
	}
	flow, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return requirements.ZoneExhaust{}, fmt.Errorf("zone %q flow: %w", v, err)
	}
	temp, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return requirements.ZoneExhaust{}, fmt.Errorf("zone %q temperature: %w", v, err)
	}
	return requirements.ZoneExhaust{Zone: parts[0], OutdoorAirFlow: flow, HeatingTemperature: temp}, nil
}

func configureCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "configure [building.yaml]",
		Short: "Configure a described building and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			d, err := building.Decode(f)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			std, err := app.BuildStandard(ctx, c.cfg, c.log)
			if err != nil {
				return err
			}

			var opts []app.ServiceOption
			if c.cfg.Mongo.Enabled {
				repo, err := c.openMongo(ctx)
				if err != nil {
					return err
				}
				defer closeMongo(repo, c.log)
				opts = append(opts, app.WithPublisher(repo))
			}
			if c.cfg.Controllers.MQTT.Enabled {
				ctrl, err := mqttctrl.New(standards.NewCatalog(std), c.mqttConfig(), mqttctrl.WithLogger(c.log))
				if err != nil {
					return err
				}
				if err := ctrl.Connect(); err != nil {
					return err
				}
				defer ctrl.Close()
				opts = append(opts, app.WithPublisher(ctrl))
			}

			rep, err := app.NewService(std, c.cfg, c.log, opts...).Configure(ctx, d)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
}
