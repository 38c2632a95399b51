// Package statistics aggregates study logs into daily numbers, weekly
// series, streaks and weak-topic classification.
package statistics

// DailyStats summarises one day of studying.
type DailyStats struct {
	Date          string
	Minutes       int
	TargetMinutes int
	QuestionsDone int
	Correct       int
	BlocksDone    int
	BlocksSkipped int
	BlocksTotal   int
}

// Completion returns studied minutes over the daily target, in [0, 1+].
func (s DailyStats) Completion() float64 {
	if s.TargetMinutes == 0 {
		return 0
	}
	return float64(s.Minutes) / float64(s.TargetMinutes)
}

// Accuracy returns correct over attempted practice questions.
func (s DailyStats) Accuracy() float64 {
	if s.QuestionsDone == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.QuestionsDone)
}

// DayPoint is one entry of the weekly series.
type DayPoint struct {
	Date          string
	Minutes       int
	QuestionsDone int
	Correct       int
}

// Accuracy returns correct over attempted questions for the day.
func (p DayPoint) Accuracy() float64 {
	if p.QuestionsDone == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.QuestionsDone)
}

// TopicAggregate is the studied total of one syllabus topic.
type TopicAggregate struct {
	TopicID        int64  `db:"topic_id"`
	Name           string `db:"name"`
	Paper          int    `db:"paper"`
	Section        string `db:"section"`
	TargetMinutes  int    `db:"target_minutes"`
	StudiedMinutes int    `db:"studied_minutes"`
	QuestionsDone  int    `db:"questions_done"`
	Correct        int    `db:"correct"`
}

// Completion returns studied minutes over the topic target.
func (a TopicAggregate) Completion() float64 {
	if a.TargetMinutes == 0 {
		return 0
	}
	return float64(a.StudiedMinutes) / float64(a.TargetMinutes)
}

// Accuracy returns correct over attempted questions.
func (a TopicAggregate) Accuracy() float64 {
	if a.QuestionsDone == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.QuestionsDone)
}

// WeakTopic is a topic flagged by the weak-topic rule, with the shortfall
// that ranked it.
type WeakTopic struct {
	TopicAggregate
	Deficit float64
}
