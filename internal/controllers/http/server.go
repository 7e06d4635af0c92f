package httpctrl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/building"
	"github.com/Agrid-Dev/hvacstandards/internal/ports"
	"github.com/Agrid-Dev/hvacstandards/internal/report"
	"github.com/Agrid-Dev/hvacstandards/internal/requirements"
	"github.com/Agrid-Dev/hvacstandards/internal/staging"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// DefaultExhaustHeatThreshold is the exhaust heat content in kW above which
// an ERV is required.
const DefaultExhaustHeatThreshold = 150.0

// Configurer runs the configuration pipeline on a described building.
// A returned error means the description was rejected.
type Configurer interface {
	Configure(ctx context.Context, d *building.Description) (*report.Report, error)
}

type Server struct {
	svc        ports.LookupService
	configurer Configurer
	srv        *http.Server
	log        *zap.Logger
	metrics    http.Handler
	threshold  float64
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetricsHandler serves h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithConfigurer serves c on POST /v1/configure.
func WithConfigurer(c Configurer) Option {
	return func(s *Server) { s.configurer = c }
}

func WithExhaustHeatThreshold(kw float64) Option {
	return func(s *Server) { s.threshold = kw }
}

// New returns a runnable server.
func New(svc ports.LookupService, addr string, opts ...Option) *Server {
	s := &Server{svc: svc, log: zap.NewNop(), threshold: DefaultExhaustHeatThreshold}
	for _, o := range opts {
		o(s)
	}

	mux := http.NewServeMux()

	// Read
	mux.HandleFunc("GET /v1", s.handleGet)
	mux.HandleFunc("GET /v1/tables", s.handleTables)

	// Compute
	mux.HandleFunc("POST /v1/lookup", s.handleLookup)
	mux.HandleFunc("POST /v1/stages", s.handleStages)
	mux.HandleFunc("POST /v1/exhaust_heat", s.handleExhaustHeat)
	if s.configurer != nil {
		mux.HandleFunc("POST /v1/configure", s.handleConfigure)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the routes without a listener.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("http api listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// ---- DTOs ----

type infoDTO struct {
	Version string   `json:"version"`
	Tables  []string `json:"tables"`
}

type rangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type recordDTO struct {
	ID            string             `json:"id"`
	Table         string             `json:"table"`
	Applicability map[string]string  `json:"applicability"`
	Capacity      *rangeDTO          `json:"capacity,omitempty"`
	Payload       map[string]float64 `json:"payload"`
	Curves        map[string]string  `json:"curves,omitempty"`
}

func toRecordDTO(r *standards.Record) recordDTO {
	dto := recordDTO{
		ID:            r.ID(),
		Table:         r.Table,
		Applicability: r.Applicability,
		Payload:       r.Payload,
		Curves:        r.Curves,
	}
	if r.Capacity != nil {
		dto.Capacity = &rangeDTO{Min: r.Capacity.Min, Max: r.Capacity.Max}
	}
	return dto
}

type lookupRequest struct {
	Table  string            `json:"table"`
	Key    map[string]string `json:"key"`
	Sizing float64           `json:"sizing"`
	AsOf   string            `json:"as_of"`
}

type stagesRequest struct {
	Total     float64 `json:"total"`
	MaxStages int     `json:"max_stages"`
	UnitStep  float64 `json:"unit_step"`
	RefFlow   float64 `json:"ref_flow"`
}

type stagesResponse struct {
	StageCount int       `json:"stage_count"`
	Capacities []float64 `json:"capacities"`
	Flows      []float64 `json:"flows"`
}

type exhaustZoneDTO struct {
	Zone               string  `json:"zone"`
	OutdoorAirFlow     float64 `json:"outdoor_air_flow"`
	HeatingTemperature float64 `json:"heating_temperature"`
}

type exhaustRequest struct {
	Zones              []exhaustZoneDTO `json:"zones"`
	OutdoorTemperature *float64         `json:"outdoor_temperature"`
}

type exhaustResponse struct {
	ExhaustHeat float64 `json:"exhaust_heat_kw"`
	Defined     bool    `json:"defined"`
	Required    bool    `json:"required"`
}

// ---- Handlers ----

func (s *Server) handleGet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, infoDTO{Version: s.svc.Version(), Tables: s.svc.Tables()})
}

func (s *Server) handleTables(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Tables())
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	postBody(w, r, func(req lookupRequest) (any, int, error) {
		if req.Table == "" {
			return nil, http.StatusBadRequest, errors.New("missing field 'table'")
		}
		asOf, err := parseAsOf(req.AsOf)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		key := standards.SearchKey{}
		for f, v := range req.Key {
			key.Set(f, v)
		}
		rec, ok := s.svc.Lookup(req.Table, key, req.Sizing, asOf)
		if !ok {
			return nil, http.StatusNotFound, errors.New("no reference record matches")
		}
		return toRecordDTO(rec), http.StatusOK, nil
	})
}

func (s *Server) handleStages(w http.ResponseWriter, r *http.Request) {
	postBody(w, r, func(req stagesRequest) (any, int, error) {
		if req.MaxStages == 0 {
			req.MaxStages = staging.DefaultMaxStages
		}
		if req.UnitStep == 0 {
			req.UnitStep = staging.DefaultUnitStep
		}
		caps, err := staging.Capacities(req.Total, req.MaxStages, req.UnitStep)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		return stagesResponse{
			StageCount: staging.StageCount(req.Total, req.MaxStages, req.UnitStep),
			Capacities: caps,
			Flows:      staging.Flows(caps, req.Total, req.RefFlow),
		}, http.StatusOK, nil
	})
}

func (s *Server) handleExhaustHeat(w http.ResponseWriter, r *http.Request) {
	postBody(w, r, func(req exhaustRequest) (any, int, error) {
		if req.OutdoorTemperature == nil {
			return nil, http.StatusBadRequest, errors.New("missing field 'outdoor_temperature'")
		}
		zones := make([]requirements.ZoneExhaust, len(req.Zones))
		for i, z := range req.Zones {
			zones[i] = requirements.ZoneExhaust{
				Zone:               z.Zone,
				OutdoorAirFlow:     z.OutdoorAirFlow,
				HeatingTemperature: z.HeatingTemperature,
			}
		}
		kw, ok := requirements.ExhaustHeatContent(zones, *req.OutdoorTemperature)
		return exhaustResponse{ExhaustHeat: kw, Defined: ok, Required: ok && kw > s.threshold}, http.StatusOK, nil
	})
}

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	postBody(w, r, func(d building.Description) (any, int, error) {
		rep, err := s.configurer.Configure(r.Context(), &d)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		return rep, http.StatusOK, nil
	})
}

// ---- generic helpers ----

func parseAsOf(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid 'as_of', want RFC3339 or YYYY-MM-DD")
}

func postBody[T any](w http.ResponseWriter, r *http.Request, handle func(T) (any, int, error)) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req T
	if err := dec.Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	resp, code, err := handle(req)
	if err != nil {
		writeErr(w, code, err.Error())
		return
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
