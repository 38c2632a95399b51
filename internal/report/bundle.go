// Package report renders the nightly study report as markdown and PDF.
package report

import (
	"github.com/hrathore/padhai/internal/mock"
	"github.com/hrathore/padhai/internal/statistics"
)

// Bundle is everything one report shows.
type Bundle struct {
	Date          string
	Stats         statistics.DailyStats
	Week          []statistics.DayPoint
	Weak          []statistics.WeakTopic
	History       []mock.Attempt
	Books         []string
	Streak        int
	CountdownDays int
	HasCountdown  bool
}
