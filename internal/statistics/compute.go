package statistics

import (
	"sort"
	"time"

	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/database"
	"github.com/hrathore/padhai/internal/plan"
	"github.com/hrathore/padhai/internal/session"
)

// ComputeDailyStats folds one day's blocks and logs into totals.
func ComputeDailyStats(date string, blocks []plan.StudyBlock, logs []session.Log) DailyStats {
	stats := DailyStats{Date: date, BlocksTotal: len(blocks)}
	for _, block := range blocks {
		stats.TargetMinutes += block.TargetMinutes
		switch block.Status {
		case plan.StatusDone:
			stats.BlocksDone++
		case plan.StatusSkipped:
			stats.BlocksSkipped++
		}
	}
	for _, log := range logs {
		if log.Skipped {
			continue
		}
		stats.Minutes += log.Minutes
		stats.QuestionsDone += log.QuestionsDone
		stats.Correct += log.Correct
	}
	return stats
}

// WeeklySeries folds logs into a 7-day series ending on end. Days without
// logs appear with zero values.
func WeeklySeries(logs []session.Log, end time.Time) []DayPoint {
	byDate := map[string]*DayPoint{}
	series := make([]DayPoint, 7)
	for i := 0; i < 7; i++ {
		date := end.AddDate(0, 0, i-6).Format(database.DateLayout)
		series[i] = DayPoint{Date: date}
		byDate[date] = &series[i]
	}
	for _, log := range logs {
		point, ok := byDate[log.LogDate]
		if !ok || log.Skipped {
			continue
		}
		point.Minutes += log.Minutes
		point.QuestionsDone += log.QuestionsDone
		point.Correct += log.Correct
	}
	return series
}

// Streak counts consecutive days ending today with at least one non-skip
// log. Skipped entries do not sustain a streak.
func Streak(logs []session.Log, today time.Time) int {
	active := map[string]bool{}
	for _, log := range logs {
		if !log.Skipped {
			active[log.LogDate] = true
		}
	}

	streak := 0
	for day := today; active[day.Format(database.DateLayout)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// WeakTopics applies the weak-topic rule: a topic is weak when its
// completion is below the completion threshold, or when it has practice
// questions and its accuracy is below the accuracy threshold. Only topics
// with logged activity in the window are considered, so an untouched
// catalogue does not flood the list. Topics with no practice are never
// flagged on accuracy. The result is sorted by largest deficit, ties
// broken by section then name.
func WeakTopics(aggregates []TopicAggregate, weakConfig config.WeakConfig) []WeakTopic {
	var weak []WeakTopic
	for _, aggregate := range aggregates {
		if aggregate.StudiedMinutes == 0 && aggregate.QuestionsDone == 0 {
			continue
		}
		deficit := 0.0
		if completion := aggregate.Completion(); completion < weakConfig.CompletionThreshold {
			deficit = weakConfig.CompletionThreshold - completion
		}
		if aggregate.QuestionsDone > 0 {
			if accuracy := aggregate.Accuracy(); accuracy < weakConfig.AccuracyThreshold {
				if gap := weakConfig.AccuracyThreshold - accuracy; gap > deficit {
					deficit = gap
				}
			}
		}
		if deficit > 0 {
			weak = append(weak, WeakTopic{TopicAggregate: aggregate, Deficit: deficit})
		}
	}

	sort.SliceStable(weak, func(i, j int) bool {
		if weak[i].Deficit != weak[j].Deficit {
			return weak[i].Deficit > weak[j].Deficit
		}
		if weak[i].Section != weak[j].Section {
			return weak[i].Section < weak[j].Section
		}
		return weak[i].Name < weak[j].Name
	})
	return weak
}

// ExamCountdown returns the number of days until the exam date, or false
// when no exam date is configured or it has passed.
func ExamCountdown(examDate string, today time.Time) (int, bool) {
	if examDate == "" {
		return 0, false
	}
	exam, err := time.ParseInLocation(database.DateLayout, examDate, today.Location())
	if err != nil {
		return 0, false
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	days := int(exam.Sub(day).Hours() / 24)
	if days < 0 {
		return 0, false
	}
	return days, true
}
