package mapbox

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-odds/internal/adapter/httpclient"
)

const (
	testToken         = "test-token"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return NewClient(&http.Client{Timeout: 5 * time.Second}, baseURL, testToken, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Search_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "Douala")
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, testToken, r.URL.Query().Get("access_token"))

		resp := response{
			Features: []feature{
				{
					Center:    []float64{9.7043, 4.0483},
					PlaceName: "Douala, Littoral, Cameroon",
					Text:      "Douala",
					Relevance: 0.95,
				},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Search(context.Background(), "Douala")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 4.0483, got[0].Latitude)
	assert.Equal(t, 9.7043, got[0].Longitude)
	assert.Equal(t, "Douala, Littoral, Cameroon", got[0].DisplayName)
}

func TestClient_Search_DropsFeaturesWithoutCenter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Features: []feature{
			{PlaceName: "no center"},
			{Center: []float64{2.35, 48.85}, PlaceName: "Paris, France"},
		}}))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Search(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Paris, France", got[0].DisplayName)
}

func TestClient_Search_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Features: []feature{}}))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Search(context.Background(), "NONEXISTENT")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_Search_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not Authorized"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.token = "bad-token"

	_, err := c.Search(context.Background(), "Paris")
	var serr *httpclient.StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusUnauthorized, serr.Code)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_Search_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := c.Search(context.Background(), "Paris")
	require.Error(t, err)
}
