package mqttctrl

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Agrid-Dev/hvacstandards/internal/ports"
	"github.com/Agrid-Dev/hvacstandards/internal/report"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
	"github.com/Agrid-Dev/hvacstandards/internal/testutil"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

type fakeToken struct {
	err  error
	done chan struct{}
}

func (t fakeToken) Done() <-chan struct{} {
	if t.done == nil {
		t.done = make(chan struct{})
		close(t.done)
	}
	return t.done
}

func (t fakeToken) Wait() bool                       { return true }
func (t fakeToken) WaitTimeout(_ time.Duration) bool { return true }
func (t fakeToken) Error() error                     { return t.err }

type publishCall struct {
	topic   string
	qos     byte
	retain  bool
	payload []byte
}

type fakeClient struct {
	publishes    []publishCall
	publishErr   error
	disconnected bool
}

func (c *fakeClient) IsConnected() bool      { return true }
func (c *fakeClient) IsConnectionOpen() bool { return true }
func (c *fakeClient) Connect() mqtt.Token    { return fakeToken{} }
func (c *fakeClient) Disconnect(_ uint)      { c.disconnected = true }
func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	var b []byte
	switch v := payload.(type) {
	case []byte:
		b = append([]byte(nil), v...)
	case string:
		b = []byte(v)
	default:
		tmp, _ := json.Marshal(v)
		b = tmp
	}
	c.publishes = append(c.publishes, publishCall{
		topic: topic, qos: qos, retain: retained, payload: b,
	})
	return fakeToken{err: c.publishErr}
}
func (c *fakeClient) Subscribe(_ string, _ byte, _ mqtt.MessageHandler) mqtt.Token {
	return fakeToken{}
}
func (c *fakeClient) SubscribeMultiple(_ map[string]byte, _ mqtt.MessageHandler) mqtt.Token {
	return fakeToken{}
}
func (c *fakeClient) Unsubscribe(_ ...string) mqtt.Token       { return fakeToken{} }
func (c *fakeClient) AddRoute(_ string, _ mqtt.MessageHandler) {}
func (c *fakeClient) OptionsReader() mqtt.ClientOptionsReader  { return mqtt.ClientOptionsReader{} }

// ---- tests ----
var _ ports.ReportPublisher = (*Controller)(nil)

func newDefaultSvc() *testutil.FakeLookupService {
	return &testutil.FakeLookupService{VersionValue: "2025.1", TableNames: []string{"boilers"}}
}

func newConnected(t *testing.T, svc *testutil.FakeLookupService, cfg Config) (*Controller, *fakeClient) {
	t.Helper()
	c, err := New(svc, cfg)
	if err != nil {
		t.Fatal(err)
	}
	fc := &fakeClient{}
	c.setClient(fc)
	return c, fc
}

func decodePublish[T any](t *testing.T, p publishCall) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(p.payload, &v); err != nil {
		t.Fatalf("invalid published json: %v payload=%s", err, string(p.payload))
	}
	return v
}

func TestNewDefaults(t *testing.T) {
	c, err := New(newDefaultSvc(), Config{InstanceID: "site1"})
	if err != nil {
		t.Fatal(err)
	}

	if c.cfg.BrokerURL != "tcp://localhost:1883" {
		t.Fatalf("expected default BrokerURL, got %q", c.cfg.BrokerURL)
	}
	if c.cfg.BaseTopic != "hvacstd/site1" {
		t.Fatalf("expected default BaseTopic, got %q", c.cfg.BaseTopic)
	}
	if c.cfg.ClientID != "hvacstd-site1" {
		t.Fatalf("expected default ClientID, got %q", c.cfg.ClientID)
	}
	if c.cfg.StatusInterval != 30*time.Second {
		t.Fatalf("expected default StatusInterval, got %v", c.cfg.StatusInterval)
	}
}

func TestNewValidation(t *testing.T) {
	svc := newDefaultSvc()

	if _, err := New(svc, Config{}); err == nil {
		t.Fatal("expected error when InstanceID missing")
	}

	if _, err := New(svc, Config{InstanceID: "x", QoS: 2}); err == nil {
		t.Fatal("expected error when QoS > 1")
	}
}

func TestTopicJoin(t *testing.T) {
	c, err := New(newDefaultSvc(), Config{InstanceID: "site1", BaseTopic: "hvacstd/site1/"})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.topic("reports"); got != "hvacstd/site1/reports" {
		t.Fatalf("expected topic without double slashes, got %q", got)
	}
}

func TestDecodeValueStrict(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v, err := decodeValueStrict[float64]([]byte(`{"value": 12.5}`))
		if err != nil {
			t.Fatal(err)
		}
		if v != 12.5 {
			t.Fatalf("expected 12.5, got %v", v)
		}
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := decodeValueStrict[float64]([]byte(`{}`))
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := decodeValueStrict[float64]([]byte(`{"value":1,"extra":1}`))
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := decodeValueStrict[float64]([]byte(`{"value":`))
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestPublish_Report(t *testing.T) {
	c, fc := newConnected(t, newDefaultSvc(), Config{InstanceID: "site1", QoS: 1, RetainReports: true})

	r := report.New("NECB2011", "2025.1", "office", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	r.Add("Boiler 1", "Boiler", report.OutcomeApplied)
	r.Finalize()

	if err := c.Publish(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if len(fc.publishes) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(fc.publishes))
	}

	p := fc.publishes[0]
	if p.topic != "hvacstd/site1/reports" {
		t.Fatalf("expected reports topic, got %q", p.topic)
	}
	if p.qos != 1 || p.retain != true {
		t.Fatalf("expected qos=1 retain=true, got qos=%d retain=%v", p.qos, p.retain)
	}

	got := decodePublish[map[string]any](t, p)
	if got["id"] != r.ID.String() {
		t.Fatalf("expected id %s, got %v", r.ID, got["id"])
	}
	if got["complete"] != true {
		t.Fatalf("expected complete report, got %v", got["complete"])
	}
}

func TestPublish_NotConnected(t *testing.T) {
	c, err := New(newDefaultSvc(), Config{InstanceID: "site1"})
	if err != nil {
		t.Fatal(err)
	}
	err = c.Publish(context.Background(), report.New("NECB2011", "", "m", time.Now()))
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestPublish_TokenError(t *testing.T) {
	c, fc := newConnected(t, newDefaultSvc(), Config{InstanceID: "site1"})
	boom := errors.New("boom")
	fc.publishErr = boom

	err := c.Publish(context.Background(), report.New("NECB2011", "", "m", time.Now()))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped token error, got %v", err)
	}
}

func TestPublishStatus(t *testing.T) {
	c, fc := newConnected(t, newDefaultSvc(), Config{InstanceID: "site1"})

	c.publishStatus()

	if len(fc.publishes) != 1 || fc.publishes[0].topic != "hvacstd/site1/status" || !fc.publishes[0].retain {
		t.Fatalf("expected one retained status publish, got %+v", fc.publishes)
	}
	got := decodePublish[statusDTO](t, fc.publishes[0])
	if got.Version != "2025.1" || len(got.Tables) != 1 {
		t.Fatalf("unexpected status %+v", got)
	}
}

func TestOnMessage_IgnoresWrongPrefix(t *testing.T) {
	svc := newDefaultSvc()
	c, fc := newConnected(t, svc, Config{InstanceID: "site1"})

	c.onMessage(nil, fakeMessage{
		topic:   "otherprefix/lookup",
		payload: []byte(`{"table":"boilers"}`),
	})

	if svc.LastTable != "" || len(fc.publishes) != 0 {
		t.Fatal("expected message ignored")
	}
}

func TestOnMessage_LookupHit(t *testing.T) {
	svc := newDefaultSvc()
	svc.Record = &standards.Record{
		Table:   "boilers",
		Index:   2,
		Payload: map[string]float64{standards.FieldThermalEfficiency: 0.83},
	}
	c, fc := newConnected(t, svc, Config{InstanceID: "site1"})

	c.onMessage(nil, fakeMessage{
		topic:   "hvacstd/site1/lookup",
		payload: []byte(`{"request_id":"r1","table":"boilers","key":{"fuel_type":"Gas"},"sizing":300000,"as_of":"2025-06-01"}`),
	})

	if svc.LastTable != "boilers" || svc.LastSizing != 300000 {
		t.Fatalf("unexpected lookup table=%s sizing=%v", svc.LastTable, svc.LastSizing)
	}
	if v, _ := svc.LastKey.Get(standards.FieldFuelType); v != "Gas" {
		t.Fatalf("expected fuel_type=Gas, got %v", svc.LastKey)
	}
	if len(fc.publishes) != 1 || fc.publishes[0].topic != "hvacstd/site1/lookup/result" {
		t.Fatalf("expected one lookup result, got %+v", fc.publishes)
	}
	got := decodePublish[lookupResult](t, fc.publishes[0])
	if !got.Found || got.RequestID != "r1" || got.Record != "boilers[2]" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestOnMessage_LookupMiss(t *testing.T) {
	c, fc := newConnected(t, newDefaultSvc(), Config{InstanceID: "site1"})

	c.onMessage(nil, fakeMessage{
		topic:   "hvacstd/site1/lookup",
		payload: []byte(`{"request_id":"r2","table":"boilers"}`),
	})

	got := decodePublish[lookupResult](t, fc.publishes[0])
	if got.Found || got.Error != "" || got.RequestID != "r2" {
		t.Fatalf("expected a clean miss, got %+v", got)
	}
}

func TestOnMessage_LookupInvalid_DoesNotCallService(t *testing.T) {
	for _, payload := range []string{`{"table":`, `{"sizing":1}`, `{"table":"boilers","as_of":"June"}`} {
		svc := newDefaultSvc()
		c, fc := newConnected(t, svc, Config{InstanceID: "site1"})

		c.onMessage(nil, fakeMessage{topic: "hvacstd/site1/lookup", payload: []byte(payload)})

		if svc.LastTable != "" {
			t.Fatalf("expected Lookup not called for %s", payload)
		}
		if got := decodePublish[lookupResult](t, fc.publishes[0]); got.Error == "" {
			t.Fatalf("expected error result for %s", payload)
		}
	}
}

func TestOnMessage_Stages(t *testing.T) {
	c, fc := newConnected(t, newDefaultSvc(), Config{InstanceID: "site1"})

	c.onMessage(nil, fakeMessage{
		topic:   "hvacstd/site1/stages",
		payload: []byte(`{"value":198000}`),
	})

	got := decodePublish[stagesResult](t, fc.publishes[0])
	if len(got.Capacities) != 4 || got.Capacities[2] != 198000 {
		t.Fatalf("unexpected capacities %v", got.Capacities)
	}

	c.onMessage(nil, fakeMessage{
		topic:   "hvacstd/site1/stages",
		payload: []byte(`{"value":-1}`),
	})
	if got := decodePublish[stagesResult](t, fc.publishes[1]); got.Error == "" {
		t.Fatal("expected error for a negative total")
	}
}

func TestClose(t *testing.T) {
	c, fc := newConnected(t, newDefaultSvc(), Config{InstanceID: "site1"})

	c.Close()
	if !fc.disconnected {
		t.Fatal("expected client disconnected")
	}
	if err := c.Publish(context.Background(), report.New("NECB2011", "", "m", time.Now())); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected after Close, got %v", err)
	}
	c.Close()
}
