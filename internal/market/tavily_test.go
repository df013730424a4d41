package market

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTavily(url string) *TavilySource {
	s := NewTavilySource("tvly-key").WithEndpoint(url)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestTavilySource_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tvly-key", r.Header.Get("Authorization"))

		var req tavilyRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "data engineer required skills tech stack 2025", req.Query)
		assert.Equal(t, MaxResults, req.MaxResults)
		assert.Equal(t, "tvly-key", req.APIKey)

		_, _ = w.Write([]byte(`{"results":[
			{"title":"Data Engineer Skills","url":"https://a","content":"Spark, Airflow and SQL"},
			{"title":"","url":"https://b","content":""},
			{"title":"Roadmap","url":"https://c","content":"Kafka"}
		]}`))
	}))
	defer server.Close()

	snippets, err := newTestTavily(server.URL).Search(context.Background(), "data engineer")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"data engineer skills\nspark, airflow and sql",
		"roadmap\nkafka",
	}, snippets)
}

func TestTavilySource_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	_, err := newTestTavily(server.URL).Search(context.Background(), "astronaut")
	var noResults *NoResultsError
	require.True(t, errors.As(err, &noResults))
	assert.Equal(t, SourceTavily, noResults.Source)
}

func TestTavilySource_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer server.Close()

	_, err := newTestTavily(server.URL).Search(context.Background(), "sre")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "invalid api key")
}
