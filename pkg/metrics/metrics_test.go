package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordersIncrementCounters(t *testing.T) {
	before := testutil.ToFloat64(unknownVariants.WithLabelValues("component"))
	RecordUnknownVariant("component")
	if got := testutil.ToFloat64(unknownVariants.WithLabelValues("component")); got != before+1 {
		t.Fatalf("unknown variants: want %v got %v", before+1, got)
	}

	beforeErr := testutil.ToFloat64(imageLoads.WithLabelValues("error"))
	RecordImageLoad(errors.New("boom"))
	if got := testutil.ToFloat64(imageLoads.WithLabelValues("error")); got != beforeErr+1 {
		t.Fatalf("image loads: want %v got %v", beforeErr+1, got)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordActionDispatched("sdui:confirm", "onPress")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sdui_actions_dispatched_total") {
		t.Fatalf("expected dispatch counter in output:\n%s", rec.Body.String())
	}
}

func TestInstrumentHandlerRecordsStatus(t *testing.T) {
	handler := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "418"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "418")); got != before+1 {
		t.Fatalf("requests: want %v got %v", before+1, got)
	}
}
