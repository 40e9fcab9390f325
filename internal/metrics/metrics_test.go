package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheLookups.WithLabelValues("metrics-test", "hit"))
	misses := testutil.ToFloat64(CacheLookups.WithLabelValues("metrics-test", "miss"))

	RecordCacheLookup("metrics-test", true)
	RecordCacheLookup("metrics-test", false)
	RecordCacheLookup("metrics-test", false)

	assert.Equal(t, hits+1, testutil.ToFloat64(CacheLookups.WithLabelValues("metrics-test", "hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(CacheLookups.WithLabelValues("metrics-test", "miss")))
}

func TestRecordUpstream(t *testing.T) {
	ok := testutil.ToFloat64(UpstreamRequests.WithLabelValues("metrics-test", "200"))
	failed := testutil.ToFloat64(UpstreamRequests.WithLabelValues("metrics-test", "error"))

	RecordUpstream("metrics-test", 200, time.Now().Add(-50*time.Millisecond))
	RecordUpstream("metrics-test", 0, time.Now())

	assert.Equal(t, ok+1, testutil.ToFloat64(UpstreamRequests.WithLabelValues("metrics-test", "200")))
	assert.Equal(t, failed+1, testutil.ToFloat64(UpstreamRequests.WithLabelValues("metrics-test", "error")))
}

func TestRecordTokenRefresh(t *testing.T) {
	ok := testutil.ToFloat64(TokenRefreshes.WithLabelValues("ok"))
	failed := testutil.ToFloat64(TokenRefreshes.WithLabelValues("error"))

	RecordTokenRefresh(nil)
	RecordTokenRefresh(errors.New("boom"))

	assert.Equal(t, ok+1, testutil.ToFloat64(TokenRefreshes.WithLabelValues("ok")))
	assert.Equal(t, failed+1, testutil.ToFloat64(TokenRefreshes.WithLabelValues("error")))
}
