package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestObserveRequestGroupsUnmatched(t *testing.T) {
	ObserveRequest("get", "", 200, 3*time.Millisecond)
	assert.Contains(t, scrape(t), `mockcenter_http_requests_total{method="GET",route="unmatched",status="200"}`)
}

func TestInFlightReleases(t *testing.T) {
	done := InFlight()
	assert.Contains(t, scrape(t), "mockcenter_http_inflight_requests 1")
	done()
	assert.Contains(t, scrape(t), "mockcenter_http_inflight_requests 0")
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordLogin("InvalidCredentials")
	RecordResult(1001)

	body := scrape(t)
	assert.Contains(t, body, `mockcenter_auth_logins_total{outcome="InvalidCredentials"} 1`)
	assert.Contains(t, body, `mockcenter_api_results_total{code="1001"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestResultCodesStartAtZero(t *testing.T) {
	assert.Contains(t, scrape(t), `mockcenter_api_results_total{code="2006"} 0`)
}
