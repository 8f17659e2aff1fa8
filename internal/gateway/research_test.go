// internal/gateway/research_test.go
package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "marketscout/internal/common/errors"
	commonhttp "marketscout/internal/common/http"
	"marketscout/internal/common/logger"
)

func newResearchTestClient(baseURL string) *ResearchClient {
	return NewResearchClient(baseURL, commonhttp.NewClient(2*time.Second), logger.NewNoOpLogger())
}

func TestComprehensiveResearch_Success(t *testing.T) {
	expected := Payload{
		"business_type": "pharmacy",
		"location":      "Pune",
		"analysis": map[string]interface{}{
			"viability_score": 7.5,
			"competitors":     []interface{}{"MedPlus", "Apollo"},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/comprehensive-research", r.URL.Path)
		assert.Equal(t, "pharmacy", r.URL.Query().Get("business_type"))
		assert.Equal(t, "Pune", r.URL.Query().Get("location"))
		assert.Equal(t, "false", r.URL.Query().Get("include_raw_data"))
		assert.Equal(t, "true", r.URL.Query().Get("use_cache"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"business_type":"pharmacy","location":"Pune","analysis":{"viability_score":7.5,"competitors":["MedPlus","Apollo"]}}`))
	}))
	defer server.Close()

	client := newResearchTestClient(server.URL)
	payload, err := client.ComprehensiveResearch(context.Background(), "pharmacy", "Pune", DefaultResearchOptions())

	require.NoError(t, err)
	// The payload is returned verbatim, not reshaped.
	assert.Equal(t, expected, payload)
}

func TestComprehensiveResearch_OptionsEncoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("include_raw_data"))
		assert.Equal(t, "false", r.URL.Query().Get("use_cache"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newResearchTestClient(server.URL)
	_, err := client.ComprehensiveResearch(context.Background(), "gym", "Indore",
		ResearchOptions{IncludeRawData: true, UseCache: false})

	assert.NoError(t, err)
}

func TestComprehensiveResearch_RemoteErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"not found"}`))
	}))
	defer server.Close()

	client := newResearchTestClient(server.URL)
	_, err := client.ComprehensiveResearch(context.Background(), "pharmacy", "Pune", DefaultResearchOptions())

	require.Error(t, err)
	assert.True(t, apperrors.IsRemote(err))

	ge, ok := apperrors.AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, "not found", ge.Message)
	assert.Equal(t, http.StatusNotFound, ge.StatusCode)
}

func TestComprehensiveResearch_RemoteErrorStatusLineFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>boom</html>`))
	}))
	defer server.Close()

	client := newResearchTestClient(server.URL)
	_, err := client.ComprehensiveResearch(context.Background(), "pharmacy", "Pune", DefaultResearchOptions())

	require.Error(t, err)
	ge, ok := apperrors.AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindRemote, ge.Kind)
	assert.Equal(t, "500 Internal Server Error", ge.Message)
}

func TestResearch_ConnectivityError(t *testing.T) {
	// A server that is brought up and immediately torn down leaves a port
	// nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	client := newResearchTestClient(deadURL)
	_, err := client.ComprehensiveResearch(context.Background(), "pharmacy", "Pune", DefaultResearchOptions())

	require.Error(t, err)
	assert.True(t, apperrors.IsConnectivity(err))

	ge, ok := apperrors.AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, BackendResearch, ge.Backend)
	assert.Contains(t, ge.Message, "port 8000")
}

func TestCityOpportunities_Defaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/city-opportunities", r.URL.Path)
		assert.Equal(t, "Mumbai", r.URL.Query().Get("city"))
		assert.Equal(t, "true", r.URL.Query().Get("include_analysis"))
		assert.Equal(t, "5", r.URL.Query().Get("max_opportunities"))
		w.Write([]byte(`{"city":"Mumbai","opportunities":[]}`))
	}))
	defer server.Close()

	client := newResearchTestClient(server.URL)
	payload, err := client.CityOpportunities(context.Background(), "Mumbai", DefaultOpportunityOptions())

	require.NoError(t, err)
	assert.Equal(t, "Mumbai", payload["city"])
}

func TestRawScrapedData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/raw-scraped-data", r.URL.Path)
		assert.Equal(t, "bakery", r.URL.Query().Get("business_type"))
		assert.Equal(t, "Delhi", r.URL.Query().Get("location"))
		w.Write([]byte(`{"maps_data":[],"trends_data":[]}`))
	}))
	defer server.Close()

	client := newResearchTestClient(server.URL)
	payload, err := client.RawScrapedData(context.Background(), "bakery", "Delhi")

	require.NoError(t, err)
	assert.Contains(t, payload, "maps_data")
}

func TestResearchHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer server.Close()

	client := newResearchTestClient(server.URL)
	payload, err := client.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "healthy", payload["status"])
}

func TestResearch_TimeoutMapsToConnectivity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewResearchClient(server.URL, commonhttp.NewClient(20*time.Millisecond), logger.NewNoOpLogger())
	_, err := client.Health(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsConnectivity(err))
}
