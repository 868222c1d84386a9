package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	t.Run("Success - Matched Pattern Used As Label", func(t *testing.T) {
		// Arrange
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/payments/{handle}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		})
		counter := httpRequestsTotal.WithLabelValues("202", http.MethodGet, "GET /api/v1/payments/{handle}")
		before := testutil.ToFloat64(counter)

		// Act
		Middleware(mux).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/payments/A0001", nil))

		// Assert
		assert.Equal(t, before+1, testutil.ToFloat64(counter))
	})

	t.Run("Success - Unmatched Route Collapsed", func(t *testing.T) {
		counter := httpRequestsTotal.WithLabelValues("404", http.MethodGet, "unmatched")
		before := testutil.ToFloat64(counter)

		Middleware(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, before+1, testutil.ToFloat64(counter))
	})
}

func TestObservers(t *testing.T) {
	t.Run("Success - Gateway And Sweep Counters", func(t *testing.T) {
		calls := gatewayCallsTotal.WithLabelValues("zarinpal", "verify", "ok")
		runs := sweepRunsTotal.WithLabelValues("completed")
		expired := sweepCartsTotal.WithLabelValues("expired")
		callsBefore, runsBefore, expiredBefore := testutil.ToFloat64(calls), testutil.ToFloat64(runs), testutil.ToFloat64(expired)

		ObserveGatewayCall("zarinpal", "verify", "ok", 120*time.Millisecond)
		ObserveSweep("completed", 1, 3, 0, 0)

		assert.Equal(t, callsBefore+1, testutil.ToFloat64(calls))
		assert.Equal(t, runsBefore+1, testutil.ToFloat64(runs))
		assert.Equal(t, expiredBefore+3, testutil.ToFloat64(expired))
	})
}
