package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/itmo-rating-bot/internal/domain"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObservePoll(domain.PollTriggerSchedule, OutcomeChanged)
	m.ObservePoll(domain.PollTriggerSchedule, OutcomeChanged)
	m.ObservePoll(domain.PollTriggerUser, OutcomeFetchFailed)
	m.NotificationSent()
	m.NotificationSent()
	m.NotificationFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.polls.WithLabelValues("schedule", OutcomeChanged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.polls.WithLabelValues("user", OutcomeFetchFailed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.notificationsSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsFailed))
}

func TestMetrics_ObserveSnapshot(t *testing.T) {
	m := New()

	m.ObserveSnapshot(domain.RatingSnapshot{
		TotalPeople:         50,
		ContractCount:       12,
		ContractPaidCount:   7,
		ContractUnpaidCount: 5,
		Timestamp:           time.Unix(1700000000, 0),
	})

	assert.Equal(t, 12.0, testutil.ToFloat64(m.counters.WithLabelValues("contract_count")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.counters.WithLabelValues("contract_paid_count")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.counters.WithLabelValues("contract_unpaid_count")))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.totalPeople))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.lastPoll))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.NotificationFailed()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "rating_bot_notifications_failed_total 1"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
