package rating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	// o nome precisa ser IANA: o cron usa CRON_TZ=<nome>
	assert.Equal(t, "Europe/Moscow", Location.String())

	_, offset := time.Date(2025, 1, 15, 12, 0, 0, 0, Location).Zone()
	assert.Equal(t, 3*60*60, offset)

	ts := time.Date(2025, 7, 20, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-07-20 12:30:00", FormatTimestamp(ts))
}
