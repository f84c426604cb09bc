package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airlens/airmon/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*SmartZoneClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewSmartZoneClient(Options{
		BaseURL:         server.URL,
		Username:        "apireadonly",
		Password:        "secret",
		QueryAPIVersion: "v9_1",
		LoginAPIVersion: "v10_0",
	}, zap.NewNop())
	return client, server
}

func TestZonesPagination(t *testing.T) {
	var logins atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/wsg/api/public/v10_0/session", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var creds sessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "apireadonly", creds.Username)
		logins.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/wsg/api/public/v9_1/query/zone", func(w http.ResponseWriter, r *http.Request) {
		first := r.URL.Query().Get("firstIndex")
		w.Header().Set("Content-Type", "application/json")
		if first == "0" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"totalCount": 3,
				"hasMore":    true,
				"list": []domain.ZoneRecord{
					{ID: "z1", ZoneName: "A", APCountOnline: 2},
					{ID: "z2", ZoneName: "B", APCountOffline: 1},
				},
			})
			return
		}
		assert.Equal(t, "2", first)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"totalCount": 3,
			"hasMore":    false,
			"list":       []domain.ZoneRecord{{ID: "z3", ZoneName: "C"}},
		})
	})

	client, _ := newTestClient(t, mux)
	zones, err := client.Zones(t.Context())

	require.NoError(t, err)
	require.Len(t, zones, 3)
	assert.Equal(t, "z1", zones[0].ID)
	assert.Equal(t, "z3", zones[2].ID)
	assert.Equal(t, int32(1), logins.Load(), "session is established once and reused")
}

func TestSessionRenewalOn401(t *testing.T) {
	var logins, queries atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/wsg/api/public/v10_0/session", func(w http.ResponseWriter, r *http.Request) {
		logins.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/wsg/api/public/v9_1/query/ap", func(w http.ResponseWriter, r *http.Request) {
		if queries.Add(1) == 1 {
			// Session expired between login and query.
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"hasMore": false,
			"list":    []domain.AccessPointRecord{{APMac: "AA:BB", ZoneID: "z1"}},
		})
	})

	client, _ := newTestClient(t, mux)
	aps, err := client.AccessPoints(t.Context())

	require.NoError(t, err)
	require.Len(t, aps, 1)
	assert.Equal(t, "AA:BB", aps[0].APMac)
	assert.Equal(t, int32(2), logins.Load(), "re-login after 401")
	assert.Equal(t, int32(2), queries.Load())
}

func TestPing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wsg/api/public/v10_0/session", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/wsg/api/public/v9_1/controller", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"hasMore": false,
			"list":    []map[string]interface{}{{"name": "cluster-1"}},
		})
	})

	client, _ := newTestClient(t, mux)
	assert.NoError(t, client.Ping(t.Context()))
}

func TestPingEmptyClusterFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wsg/api/public/v10_0/session", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/wsg/api/public/v9_1/controller", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"hasMore": false, "list": []interface{}{}})
	})

	client, _ := newTestClient(t, mux)
	assert.Error(t, client.Ping(t.Context()))
}

func TestLoginFailureSurfaces(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wsg/api/public/v10_0/session", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, mux)
	_, err := client.Zones(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
}
