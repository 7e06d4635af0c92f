package mqttctrl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/ports"
	"github.com/Agrid-Dev/hvacstandards/internal/report"
	"github.com/Agrid-Dev/hvacstandards/internal/staging"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

var ErrNotConnected = errors.New("mqtt: not connected")

type Config struct {
	// Identity
	InstanceID string

	// MQTT connection
	BrokerURL string
	ClientID  string

	// Topics
	BaseTopic string

	// Behavior
	QoS            byte
	RetainReports  bool
	StatusInterval time.Duration

	Username string
	Password string
}

type Controller struct {
	svc ports.LookupService
	cfg Config
	log *zap.Logger

	mu     sync.RWMutex
	client mqtt.Client
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func New(svc ports.LookupService, cfg Config, opts ...Option) (*Controller, error) {
	// ---- defaults ----

	if cfg.BrokerURL == "" {
		cfg.BrokerURL = "tcp://localhost:1883"
	}

	if cfg.InstanceID == "" {
		return nil, errors.New("mqtt: InstanceID is required")
	}
	if cfg.BaseTopic == "" {
		cfg.BaseTopic = "hvacstd/" + cfg.InstanceID
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "hvacstd-" + cfg.InstanceID
	}
	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = 30 * time.Second
	}
	if cfg.QoS > 1 {
		return nil, errors.New("mqtt: QoS must be 0 or 1")
	}
	c := &Controller{svc: svc, cfg: cfg, log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Connect opens the broker session and subscribes to the request topics on
// every (re)connect.
func (c *Controller) Connect() error {
	opts := mqtt.NewClientOptions().
		AddBroker(c.cfg.BrokerURL).
		SetClientID(c.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second)

	if c.cfg.Username != "" {
		opts.SetUsername(c.cfg.Username)
		opts.SetPassword(c.cfg.Password)
	}

	opts.OnConnect = func(cl mqtt.Client) {
		filters := map[string]byte{
			c.topic("lookup"): c.cfg.QoS,
			c.topic("stages"): c.cfg.QoS,
		}
		token := cl.SubscribeMultiple(filters, c.onMessage)
		token.Wait()
		if err := token.Error(); err != nil {
			c.log.Warn("mqtt subscribe failed", zap.Error(err))
		}
	}

	client := mqtt.NewClient(opts)
	tok := client.Connect()
	tok.Wait()
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	c.setClient(client)
	c.log.Info("mqtt connected", zap.String("broker", c.cfg.BrokerURL), zap.String("base_topic", c.cfg.BaseTopic))
	return nil
}

func (c *Controller) Close() {
	cl := c.getClient()
	if cl == nil {
		return
	}
	c.setClient(nil)
	cl.Disconnect(250)
}

// Run connects, then publishes the retained status on every interval until
// ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Connect(); err != nil {
		return err
	}
	defer c.Close()

	ticker := time.NewTicker(c.cfg.StatusInterval)
	defer ticker.Stop()

	c.publishStatus()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			c.publishStatus()
		}
	}
}

// Publish sends a configuration report to <base>/reports.
func (c *Controller) Publish(ctx context.Context, r *report.Report) error {
	cl := c.getClient()
	if cl == nil {
		return ErrNotConnected
	}
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("mqtt: encode report: %w", err)
	}
	tok := cl.Publish(c.topic("reports"), c.cfg.QoS, c.cfg.RetainReports, b)
	select {
	case <-tok.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt: publish report %s: %w", r.ID, err)
	}
	return nil
}

func (c *Controller) setClient(cl mqtt.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.client = cl
}

func (c *Controller) getClient() mqtt.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

type statusDTO struct {
	Version string   `json:"version"`
	Tables  []string `json:"tables"`
}

func (c *Controller) publishStatus() {
	c.publishJSON("status", true, statusDTO{Version: c.svc.Version(), Tables: c.svc.Tables()})
}

func (c *Controller) publishJSON(suffix string, retain bool, v any) {
	cl := c.getClient()
	if cl == nil {
		return
	}
	b, _ := json.Marshal(v)
	cl.Publish(c.topic(suffix), c.cfg.QoS, retain, b)
}

// lookup payload: {"request_id": "...", "table": "...", "key": {...}, "sizing": 0, "as_of": "2006-01-02"}
type lookupReq struct {
	RequestID string            `json:"request_id"`
	Table     string            `json:"table"`
	Key       map[string]string `json:"key"`
	Sizing    float64           `json:"sizing"`
	AsOf      string            `json:"as_of"`
}

type lookupResult struct {
	RequestID string             `json:"request_id,omitempty"`
	Found     bool               `json:"found"`
	Record    string             `json:"record,omitempty"`
	Payload   map[string]float64 `json:"payload,omitempty"`
	Curves    map[string]string  `json:"curves,omitempty"`
	Error     string             `json:"error,omitempty"`
}

type stagesResult struct {
	Capacities []float64 `json:"capacities,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Command payload format: {"value": ...}
type valueReq[T any] struct {
	Value *T `json:"value"`
}

func (c *Controller) onMessage(_ mqtt.Client, msg mqtt.Message) {
	// topic format: <base>/<command>
	t := msg.Topic()
	prefix := strings.TrimRight(c.cfg.BaseTopic, "/") + "/"
	if !strings.HasPrefix(t, prefix) {
		return
	}
	command := strings.TrimPrefix(t, prefix)

	payload := msg.Payload()

	switch command {
	case "lookup":
		c.publishJSON("lookup/result", false, c.handleLookup(payload))

	case "stages":
		total, err := decodeValueStrict[float64](payload)
		if err != nil {
			c.publishJSON("stages/result", false, stagesResult{Error: err.Error()})
			return
		}
		caps, err := staging.Capacities(total, staging.DefaultMaxStages, staging.DefaultUnitStep)
		if err != nil {
			c.publishJSON("stages/result", false, stagesResult{Error: err.Error()})
			return
		}
		c.publishJSON("stages/result", false, stagesResult{Capacities: caps})
	}
}

func (c *Controller) handleLookup(payload []byte) lookupResult {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	var req lookupReq
	if err := dec.Decode(&req); err != nil {
		return lookupResult{Error: "invalid json"}
	}
	res := lookupResult{RequestID: req.RequestID}
	if req.Table == "" {
		res.Error = "missing field 'table'"
		return res
	}
	var asOf time.Time
	if req.AsOf != "" {
		t, err := time.Parse(time.DateOnly, req.AsOf)
		if err != nil {
			res.Error = "invalid 'as_of'"
			return res
		}
		asOf = t
	}
	key := standards.SearchKey{}
	for f, v := range req.Key {
		key.Set(f, v)
	}
	rec, ok := c.svc.Lookup(req.Table, key, req.Sizing, asOf)
	if !ok {
		return res
	}
	res.Found = true
	res.Record = rec.ID()
	res.Payload = rec.Payload
	res.Curves = rec.Curves
	return res
}

func (c *Controller) topic(suffix string) string {
	return strings.TrimRight(c.cfg.BaseTopic, "/") + "/" + suffix
}

func decodeValueStrict[T any](b []byte) (T, error) {
	var zero T
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var req valueReq[T]
	if err := dec.Decode(&req); err != nil {
		return zero, err
	}
	if req.Value == nil {
		return zero, errors.New("missing field 'value'")
	}
	return *req.Value, nil
}
