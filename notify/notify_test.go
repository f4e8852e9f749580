package notify_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/tacsym/fires"
	"github.com/c360studio/tacsym/notify"
)

func TestPublisher_Subjects(t *testing.T) {
	p := notify.NewPublisher(nil, "ops")
	assert.Equal(t, "ops.fires.created", p.Subject(notify.EventCreated))
	assert.Equal(t, "ops.fires.updated", p.Subject(notify.EventUpdated))

	p = notify.NewPublisher(nil, "")
	assert.Equal(t, "tacsym.fires.created", p.Subject(notify.EventCreated))
}

func TestPublisher_NilConnectionIsNoOp(t *testing.T) {
	record := fires.Record{ID: "f1", Name: "Ridge Fire", SymbolCode: "ENI-B-------"}

	p := notify.NewPublisher(nil, "")
	assert.NoError(t, p.FireCreated(record))
	assert.NoError(t, p.FireUpdated(record))

	var nilPublisher *notify.Publisher
	assert.NoError(t, nilPublisher.FireCreated(record))
}

func TestEvent_JSONShape(t *testing.T) {
	event := notify.Event{
		Type: notify.EventCreated,
		Record: fires.Record{
			ID:         "f1",
			Name:       "Ridge Fire",
			Latitude:   37.4,
			Longitude:  -122.1,
			SymbolCode: "ENI-B-------",
		},
		PublishedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "created", got["type"])
	assert.Equal(t, "2026-08-30T12:00:00Z", got["published_at"])

	record, ok := got["record"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "f1", record["id"])
	assert.Equal(t, "ENI-B-------", record["symbolCode"])
}
