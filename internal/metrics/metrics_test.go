package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveListing(10, 3)
		m.IncLiveUpdate()
		m.IncLoginRejected("bad_password")
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareCountsByRouteTemplate(t *testing.T) {
	m := New()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/clubs/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clubs/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("/clubs/:id", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))
}

func TestCounters(t *testing.T) {
	m := New()
	m.IncLiveUpdate()
	m.IncLiveUpdate()
	m.IncLoginRejected("pending")
	m.ObserveListing(10, 4)
	m.ObserveListing(0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.liveUpdates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginsRejected.WithLabelValues("pending")))

	expected := `
# HELP poker_club_directory_match_ratio Share of approved clubs that survived the filters of a listing.
# TYPE poker_club_directory_match_ratio histogram
`
	require.NoError(t, testutil.CollectAndCompare(m.listedRatio, strings.NewReader(expected+ratioSeries()), "poker_club_directory_match_ratio"))
}

// ratioSeries is the exposition of a single 0.4 observation.
func ratioSeries() string {
	return `poker_club_directory_match_ratio_bucket{le="0.1"} 0
poker_club_directory_match_ratio_bucket{le="0.25"} 0
poker_club_directory_match_ratio_bucket{le="0.5"} 1
poker_club_directory_match_ratio_bucket{le="0.75"} 1
poker_club_directory_match_ratio_bucket{le="1"} 1
poker_club_directory_match_ratio_bucket{le="+Inf"} 1
poker_club_directory_match_ratio_sum 0.4
poker_club_directory_match_ratio_count 1
`
}
