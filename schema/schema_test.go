package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLocalTime(t *testing.T) {
	assert.Equal(t, "12:30", LocalTime("2025-06-01T12:30"))
	assert.Equal(t, "12:30:00.000Z", LocalTime("2025-06-01T12:30:00.000Z"))
	assert.Equal(t, "", LocalTime("2025-06-01T"))
	assert.Equal(t, "", LocalTime(""))
}

func TestSampleMapSamplesAreChronological(t *testing.T) {
	m := SampleMap{
		"2025-06-01T12:20": 4,
		"2025-06-01T12:00": 1,
		"2025-06-01T12:10": 0,
	}

	samples := m.Samples()
	require.Len(t, samples, 3)
	assert.Equal(t, "12:00", samples[0].LocalTime)
	assert.Equal(t, 0, samples[1].Value)
	assert.Equal(t, "2025-06-01T12:20", samples[2].Timestamp)
}

func TestValueZeroIsNotAbsent(t *testing.T) {
	zero := NewValue(0)
	assert.True(t, zero.Present)
	assert.True(t, zero.IsZero())
	assert.False(t, NoValue.IsZero())
	assert.NotEqual(t, zero, NoValue)
	assert.Equal(t, "0", zero.String())
	assert.Equal(t, "-", NoValue.String())
	assert.Nil(t, NoValue.Int64Ptr())
	require.NotNil(t, zero.Int64Ptr())
	assert.Equal(t, int64(0), *zero.Int64Ptr())
}

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal([]Value{NewValue(-5), NoValue, NewValue(0)})
	require.NoError(t, err)
	assert.JSONEq(t, `[-5, null, 0]`, string(data))

	var back []Value
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []Value{NewValue(-5), NoValue, NewValue(0)}, back)
}

func TestValueYAML(t *testing.T) {
	data, err := yaml.Marshal(map[string]Value{"a": NewValue(3), "b": NoValue})
	require.NoError(t, err)
	assert.Contains(t, string(data), "a: 3")
	assert.Contains(t, string(data), "b: null")
}

func TestDerivativeOrderHelpers(t *testing.T) {
	assert.Equal(t, StationaryKind, KindFor(FirstOrder))
	assert.Equal(t, InflectionKind, KindFor(SecondOrder))
	assert.Equal(t, []DerivativeOrder{FirstOrder, SecondOrder}, BothOrders.Expand())
	assert.Equal(t, []DerivativeOrder{SecondOrder}, SecondOrder.Expand())

	p := DerivativePoint{First: NewValue(1), Second: NewValue(2)}
	assert.Equal(t, NewValue(1), p.Derivative(FirstOrder))
	assert.Equal(t, NewValue(2), p.Derivative(SecondOrder))
}

func TestTimelineIndex(t *testing.T) {
	tl := Timeline{Series: []string{"insta", "wechat"}}
	assert.Equal(t, 1, tl.Index("wechat"))
	assert.Equal(t, -1, tl.Index("weibo"))
}
