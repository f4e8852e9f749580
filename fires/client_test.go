package fires_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/tacsym/fires"
)

func fastRetry() fires.RetryConfig {
	return fires.RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       time.Millisecond,
		BackoffMultiplier: 1.0,
		MaxBackoff:        time.Millisecond,
	}
}

func validRecord() fires.Record {
	return fires.Record{
		Name:       "Ridge Fire",
		Latitude:   37.42,
		Longitude:  -122.08,
		SymbolCode: "ENI-B-------",
	}
}

func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/fires", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]fires.Record{
			{ID: "f1", Name: "Ridge Fire", SymbolCode: "ENI-B-------"},
			{ID: "f2", Name: "Valley Fire", SymbolCode: "ENI-BA------"},
		})
	}))
	defer server.Close()

	client, err := fires.NewClient(server.URL + "/api")
	require.NoError(t, err)

	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ridge Fire", records[0].Name)
}

func TestClient_Create_AssignsID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got fires.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.NotEmpty(t, got.ID, "client must assign an ID before sending")

		got.UpdatedAt = time.Now().UTC()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(got)
	}))
	defer server.Close()

	client, err := fires.NewClient(server.URL)
	require.NoError(t, err)

	stored, err := client.Create(context.Background(), validRecord())
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.UpdatedAt.IsZero())
}

func TestClient_Create_RejectsInvalidRecord(t *testing.T) {
	client, err := fires.NewClient("http://localhost:0")
	require.NoError(t, err)

	tests := []struct {
		name   string
		modify func(*fires.Record)
	}{
		{"missing name", func(r *fires.Record) { r.Name = "" }},
		{"latitude out of range", func(r *fires.Record) { r.Latitude = 91 }},
		{"longitude out of range", func(r *fires.Record) { r.Longitude = -181 }},
		{"short symbol code", func(r *fires.Record) { r.SymbolCode = "ENI-" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.modify(&rec)
			_, err := client.Create(context.Background(), rec)
			require.Error(t, err)
			assert.True(t, fires.IsFatal(err))
		})
	}
}

func TestClient_Update_RequiresID(t *testing.T) {
	client, err := fires.NewClient("http://localhost:0")
	require.NoError(t, err)

	_, err = client.Update(context.Background(), validRecord())
	require.Error(t, err)
	assert.True(t, fires.IsFatal(err))
}

func TestClient_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/fires/f1", r.URL.Path)

		var got fires.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(got)
	}))
	defer server.Close()

	client, err := fires.NewClient(server.URL)
	require.NoError(t, err)

	rec := validRecord()
	rec.ID = "f1"
	stored, err := client.Update(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "f1", stored.ID)
}

func TestClient_RetryOnTransientError(t *testing.T) {
	var attempts atomic.Int32

	// Server that fails first 2 times, then succeeds
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]fires.Record{})
	}))
	defer server.Close()

	client, err := fires.NewClient(server.URL, fires.WithRetryConfig(fastRetry()))
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_NoRetryOnFatalError(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := fires.NewClient(server.URL, fires.WithRetryConfig(fastRetry()))
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.Error(t, err)
	assert.True(t, fires.IsFatal(err))
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_RetriesExhausted(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := fires.NewClient(server.URL, fires.WithRetryConfig(fastRetry()))
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.Error(t, err)
	assert.True(t, fires.IsTransient(err))
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := fires.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, fires.ErrNotFound)
	assert.True(t, fires.IsFatal(err))
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := fastRetry()
	cfg.BackoffBase = time.Minute
	cfg.MaxBackoff = time.Minute
	client, err := fires.NewClient(server.URL, fires.WithRetryConfig(cfg))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := fires.NewClient("")
	assert.Error(t, err)
}
