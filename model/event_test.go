package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventKind(t *testing.T) {
	for _, kind := range EventKinds {
		parsed, ok := ParseEventKind(string(kind))
		assert.True(t, ok)
		assert.Equal(t, kind, parsed)
	}

	_, ok := ParseEventKind("objectEvent")
	assert.False(t, ok)
}

func TestActionValid(t *testing.T) {
	assert.True(t, ActionAdd.Valid())
	assert.True(t, ActionObserve.Valid())
	assert.True(t, ActionDelete.Valid())
	assert.False(t, Action("add").Valid())
	assert.False(t, Action("").Valid())
}

func TestExtensionJSON(t *testing.T) {
	fields := []ExtensionField{
		{Prefix: "acme", Name: "temperature", Value: IntValue(21)},
		{Prefix: "acme", Name: "sealed", Value: TimeValue(time.Date(2007, 6, 30, 12, 30, 0, 0, time.UTC))},
	}

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"value":21`)
	assert.Contains(t, string(data), `"value":"2007-06-30T12:30:00.000Z"`)
}

func TestHeaderIsShared(t *testing.T) {
	var ev StructuredEvent = &QuantityEvent{}
	ev.Header().BizStep = "urn:x:shipping"
	assert.Equal(t, "urn:x:shipping", ev.(*QuantityEvent).BizStep)
	assert.Equal(t, KindQuantityEvent, ev.Kind())
}
