package slideshow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payloadJSON = `{
  "items": [
    {"id": "10-paa-yousee-musik", "title": "10% på YouSee Musik", "description": "Få 10% rabat på YouSee Musik i op til 6 måneder efter oprettelsen.", "link": "https://example.com/yousee", "image": null}
  ],
  "updatedAt": "2024-03-09T16:00:00.000Z",
  "sourceUrl": "https://www.studentersamfundet.dk/medlemsfordele",
  "config": {"slideIntervalSeconds": 10, "refreshIntervalMinutes": 20},
  "stale": true
}`

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		assert.Empty(t, r.Header.Get("If-None-Match"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payloadJSON))
	}))
	defer server.Close()

	payload, err := NewClient(server.URL, time.Second, "test").Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, payload.Items, 1)
	assert.Equal(t, "10-paa-yousee-musik", payload.Items[0].ID)
	assert.Nil(t, payload.Items[0].Image)
	assert.True(t, payload.Stale)
	assert.Equal(t, 20, payload.Config.RefreshIntervalMinutes)
}

func TestClient_FetchErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"bad gateway", http.StatusBadGateway, `{"error":"offline"}`, "API error 502"},
		{"empty items", http.StatusOK, `{"items":[]}`, "No benefit items returned"},
		{"missing items", http.StatusOK, `{}`, "No benefit items returned"},
		{"invalid json", http.StatusOK, `<html>`, "failed to decode benefits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second, "test").Fetch(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
