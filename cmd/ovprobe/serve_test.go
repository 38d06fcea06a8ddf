package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/ovector"
	"github.com/pavanmanishd/ovector/ovmetrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	v, err := ovector.WithMaxSize[uint64](1024)
	require.NoError(t, err)
	t.Cleanup(v.Free)
	v.PushBack(7)

	reg := prometheus.NewRegistry()
	reg.MustRegister(ovmetrics.NewCollector("ovector"))

	srv := httptest.NewServer(newRouter(reg, []*ovector.Vector[uint64]{v}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	return resp, sb.String()
}

func TestServeMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ovector_reservations")
	assert.Contains(t, body, "ovector_releases_total")
}

func TestServeStats(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats ovector.ReservationStats
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	assert.GreaterOrEqual(t, stats.Reservations, int64(1))
}

func TestServeVector(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/vectors/0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var m ovector.VectorMetrics
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	assert.Equal(t, 1, m.Len)
	assert.Equal(t, 1024, m.Cap)

	for _, id := range []string{"1", "-1", "x"} {
		resp, _ := get(t, srv.URL+"/vectors/"+id)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, id)
	}
}
