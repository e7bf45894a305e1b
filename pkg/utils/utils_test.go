package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2025, 6, 10, 0, 1, 0, 0, time.UTC)
	night := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2025, 6, 11, 0, 1, 0, 0, time.UTC)

	assert.True(t, SameCalendarDay(morning, night))
	assert.False(t, SameCalendarDay(night, nextDay))
}

func TestSameCalendarDay_UsesLocalDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	// 23:00 UTC June 10 is already June 11 in Jakarta.
	utcEvening := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	jakartaMorning := time.Date(2025, 6, 11, 8, 0, 0, 0, jakarta)

	assert.False(t, SameCalendarDay(utcEvening, jakartaMorning.In(time.UTC)))
	assert.True(t, SameCalendarDay(utcEvening.In(jakarta), jakartaMorning))
}
