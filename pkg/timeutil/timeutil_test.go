package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	from := time.Date(2020, 2, 27, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(from, Date(2020, 2, 27)))
	assert.Equal(t, 2, DaysBetween(from, Date(2020, 2, 29)))
	assert.Equal(t, 3, DaysBetween(from, Date(2020, 3, 1)))
	assert.Equal(t, -27, DaysBetween(from, Date(2020, 1, 31)))
}

func TestFormatDueIn(t *testing.T) {
	assert.Equal(t, "due today", FormatDueIn(0))
	assert.Equal(t, "due tomorrow", FormatDueIn(1))
	assert.Equal(t, "due in 5 days", FormatDueIn(5))
	assert.Equal(t, "overdue by 1 day", FormatDueIn(-1))
	assert.Equal(t, "overdue by 4 days", FormatDueIn(-4))
}
