// Package bot routes Telegram commands to the study services and renders
// the replies.
package bot

import (
	"fmt"
	"strings"

	"github.com/hrathore/padhai/internal/mock"
	"github.com/hrathore/padhai/internal/plan"
	"github.com/hrathore/padhai/internal/statistics"
)

const progressBarWidth = 10

var statusMarkers = map[string]string{
	plan.StatusPending: "▫️",
	plan.StatusDone:    "✅",
	plan.StatusSkipped: "⏭",
}

func progressBar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*progressBarWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
}

func formatHours(minutes int) string {
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}

// FormatPlan renders the day's block list with status markers.
func FormatPlan(date string, blocks []plan.StudyBlock, countdownDays int, hasCountdown bool) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "*Plan for %s*\n", date)
	if hasCountdown {
		fmt.Fprintf(&builder, "_%d days to the exam_\n", countdownDays)
	}
	builder.WriteString("\n")
	for _, block := range blocks {
		fmt.Fprintf(&builder, "%s %d. %s — %s\n",
			statusMarkers[block.Status], block.OrderIndex+1, block.Label, formatHours(block.TargetMinutes))
	}
	return strings.TrimRight(builder.String(), "\n")
}

// FormatBlock renders one block as the next thing to study.
func FormatBlock(block plan.StudyBlock) string {
	return fmt.Sprintf("*Up next:* %s (%s)\nWhen finished: /done [minutes] [score], or /skip",
		block.Label, formatHours(block.TargetMinutes))
}

// FormatStats renders the daily summary with progress bar and streak.
func FormatStats(stats statistics.DailyStats, streak int) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "*Today (%s)*\n", stats.Date)
	fmt.Fprintf(&builder, "%s %s / %s\n", progressBar(stats.Completion()), formatHours(stats.Minutes), formatHours(stats.TargetMinutes))
	fmt.Fprintf(&builder, "Blocks: %d/%d done, %d skipped\n", stats.BlocksDone, stats.BlocksTotal, stats.BlocksSkipped)
	if stats.QuestionsDone > 0 {
		fmt.Fprintf(&builder, "Practice: %d/%d correct (%.0f%%)\n", stats.Correct, stats.QuestionsDone, stats.Accuracy()*100)
	}
	fmt.Fprintf(&builder, "Streak: %d day(s)", streak)
	return builder.String()
}

// FormatWeekly renders the 7-day series.
func FormatWeekly(series []statistics.DayPoint) string {
	var builder strings.Builder
	builder.WriteString("*Last 7 days*\n")
	for _, point := range series {
		accuracy := "-"
		if point.QuestionsDone > 0 {
			accuracy = fmt.Sprintf("%.0f%%", point.Accuracy()*100)
		}
		fmt.Fprintf(&builder, "`%s` %s %s\n", point.Date[5:], formatHours(point.Minutes), accuracy)
	}
	return strings.TrimRight(builder.String(), "\n")
}

// FormatWeakTopics renders the weak-topic list, worst first.
func FormatWeakTopics(weak []statistics.WeakTopic) string {
	if len(weak) == 0 {
		return "No weak topics right now. Keep going."
	}
	var builder strings.Builder
	builder.WriteString("*Weak topics*\n")
	for _, topic := range weak {
		accuracy := ""
		if topic.QuestionsDone > 0 {
			accuracy = fmt.Sprintf(", accuracy %.0f%%", topic.Accuracy()*100)
		}
		fmt.Fprintf(&builder, "- %s (%s): %.0f%% done%s\n",
			topic.Name, topic.Section, topic.Completion()*100, accuracy)
	}
	return strings.TrimRight(builder.String(), "\n")
}

// FormatQuestion renders one mock question with its options.
func FormatQuestion(progress mock.Progress) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "*Question %d/%d* [%s]\n%s\n\n", progress.Number, progress.Total, progress.Question.Section, progress.Question.Question)
	letters := []string{"a", "b", "c", "d"}
	for i, option := range progress.Question.Options() {
		fmt.Fprintf(&builder, "%s) %s\n", letters[i], option)
	}
	builder.WriteString("\nAnswer with a, b, c or d. Or: skip, end.")
	return builder.String()
}

// FormatFeedback renders the immediate result of one answer.
func FormatFeedback(feedback mock.Feedback) string {
	letters := []string{"a", "b", "c", "d"}
	if feedback.Correct {
		return "✅ Correct!"
	}
	text := fmt.Sprintf("❌ Wrong, the answer was %s.", letters[feedback.AnswerIndex])
	if feedback.Explanation != "" {
		text += "\n_" + feedback.Explanation + "_"
	}
	return text
}

// FormatAttempt renders a finished mock test result.
func FormatAttempt(attempt mock.Attempt) string {
	return fmt.Sprintf(
		"*Mock finished (%s)*\nNet score: %.2f/%d\nCorrect %d · Wrong %d · Skipped %d\nDuration: %dm%02ds",
		attempt.Kind, attempt.ScoreNet, attempt.TotalQuestions,
		attempt.Correct, attempt.Wrong, attempt.Skipped,
		attempt.DurationSeconds/60, attempt.DurationSeconds%60,
	)
}

// FormatHistory renders the recent mock attempts, newest first.
func FormatHistory(attempts []mock.Attempt) string {
	if len(attempts) == 0 {
		return "No mock tests yet. Start one with /mock."
	}
	var builder strings.Builder
	builder.WriteString("*Recent mocks*\n")
	for _, attempt := range attempts {
		fmt.Fprintf(&builder, "`%s` %s: %.2f/%d (%dc/%dw/%ds)\n",
			attempt.AttemptDate, attempt.Kind, attempt.ScoreNet, attempt.TotalQuestions,
			attempt.Correct, attempt.Wrong, attempt.Skipped)
	}
	return strings.TrimRight(builder.String(), "\n")
}
