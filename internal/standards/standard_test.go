package standards

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
)

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) ObserveLookup(_ string, hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func TestNewValidation(t *testing.T) {
	s, err := Load(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)

	_, err = New("", s)
	assert.ErrorIs(t, err, ErrEmptyStandardID)
	_, err = New("T", nil)
	assert.ErrorIs(t, err, ErrNilStore)
}

func TestStandardLookup(t *testing.T) {
	s, err := Load(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	obs := &countingObserver{}
	std, err := New("T", s, WithLogger(zap.New(core)), WithObserver(obs))
	require.NoError(t, err)

	key := std.NewSearchKey().Set(FieldFuelType, "Gas")
	r, ok := std.Lookup("boilers", key, 1000)
	require.True(t, ok)
	assert.Equal(t, "boilers[0]", r.ID())

	_, ok = std.Lookup("boilers", key.Clone().Set(FieldFuelType, "Oil"), 1000)
	assert.False(t, ok)
	_, ok = std.Lookup("nope", key, 1000)
	assert.False(t, ok)

	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 2, obs.misses)
	assert.Equal(t, 1, logs.FilterMessage("no reference record matches").Len())
	assert.Equal(t, 1, logs.FilterMessage("lookup on unknown table").Len())
	assert.Equal(t, 7.0, std.Constant("missing", 7))
	assert.Equal(t, 42.0, std.Constant("answer", 7))
}

func TestUnwrapOrLog(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	v, ok := UnwrapOrLog(log, model.Some(2.0), "missing")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
	assert.Zero(t, logs.Len())

	_, ok = UnwrapOrLog(log, model.None[float64](), "missing", zap.String("object", "x"))
	assert.False(t, ok)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "x", logs.All()[0].ContextMap()["object"])
}
