// Package syllabus provides the topic catalogue, question bank seeding and
// syllabus formatting.
package syllabus

// Topic is one syllabus entry with its study target and book references.
type Topic struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Paper       int     `db:"paper"`
	Section     string  `db:"section"`
	TargetHours float64 `db:"target_hours"`
	MarksWeight int     `db:"marks_weight"`
	Priority    string  `db:"priority"`
	Books       string  `db:"books"`
	PDFLink     string  `db:"pdf_link"`
}

// TargetMinutes returns the topic study target in whole minutes.
func (t Topic) TargetMinutes() int {
	return int(t.TargetHours * 60)
}
