package syllabus

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	_ "embed"

	"github.com/jmoiron/sqlx"
)

//go:embed seed/topics.csv
var fallbackTopicsCSV []byte

//go:embed seed/questions.json
var fallbackQuestionsJSON []byte

// Seeder loads the built-in topic catalogue and question bank into an
// empty database. Tables that already contain rows are left untouched.
type Seeder struct {
	db *sqlx.DB
}

func NewSeeder(db *sqlx.DB) *Seeder {
	return &Seeder{db: db}
}

// Seed populates the topics and questions tables if they are empty.
// topicsPath and questionsPath override the embedded seed files when
// non-empty and readable.
func (s *Seeder) Seed(ctx context.Context, topicsPath, questionsPath string) error {
	if err := s.seedTopics(ctx, topicsPath); err != nil {
		return fmt.Errorf("Seeder.seedTopics() > %w", err)
	}
	if err := s.seedQuestions(ctx, questionsPath); err != nil {
		return fmt.Errorf("Seeder.seedQuestions() > %w", err)
	}
	return nil
}

func (s *Seeder) seedTopics(ctx context.Context, path string) error {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM topics"); err != nil {
		return fmt.Errorf("db.GetContext() > %w", err)
	}
	if count > 0 {
		return nil
	}

	topics, err := readTopicsCSV(readSeedFile(path, fallbackTopicsCSV))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	for _, topic := range topics {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO topics (id, name, paper, section, target_hours, marks_weight, priority, books, pdf_link)
			VALUES (:id, :name, :paper, :section, :target_hours, :marks_weight, :priority, :books, :pdf_link)
		`, topic)
		if err != nil {
			return fmt.Errorf("tx.NamedExecContext() > %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	slog.Info("Seeded syllabus topics", slog.Int("count", len(topics)))
	return nil
}

func (s *Seeder) seedQuestions(ctx context.Context, path string) error {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM questions"); err != nil {
		return fmt.Errorf("db.GetContext() > %w", err)
	}
	if count > 0 {
		return nil
	}

	questions, err := readQuestionsJSON(readSeedFile(path, fallbackQuestionsJSON))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	for _, question := range questions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO questions (id, paper, section, topic_id, question, option_a, option_b, option_c, option_d, answer_index, level, explanation)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			question.ID,
			question.Paper,
			question.Section,
			question.TopicID,
			question.Question,
			question.Options[0],
			question.Options[1],
			question.Options[2],
			question.Options[3],
			question.AnswerIndex,
			question.Level,
			question.Explanation,
		)
		if err != nil {
			return fmt.Errorf("tx.ExecContext() > %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	slog.Info("Seeded question bank", slog.Int("count", len(questions)))
	return nil
}

func readSeedFile(path string, fallback []byte) []byte {
	if path == "" {
		return fallback
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Failed to read seed file, using embedded data",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return fallback
	}
	return data
}

func readTopicsCSV(data []byte) ([]Topic, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reader.Read() > %w", err)
	}
	if len(header) != 9 {
		return nil, fmt.Errorf("unexpected topic CSV header: %v", header)
	}

	var topics []Topic
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reader.Read() > %w", err)
		}
		topic, err := topicFromRecord(record)
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, nil
}

func topicFromRecord(record []string) (Topic, error) {
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return Topic{}, fmt.Errorf("invalid topic id %q: %w", record[0], err)
	}
	paper, err := strconv.Atoi(record[2])
	if err != nil {
		return Topic{}, fmt.Errorf("invalid paper %q: %w", record[2], err)
	}
	targetHours, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return Topic{}, fmt.Errorf("invalid target hours %q: %w", record[4], err)
	}
	marksWeight, err := strconv.Atoi(record[5])
	if err != nil {
		return Topic{}, fmt.Errorf("invalid marks weight %q: %w", record[5], err)
	}
	return Topic{
		ID:          id,
		Name:        record[1],
		Paper:       paper,
		Section:     record[3],
		TargetHours: targetHours,
		MarksWeight: marksWeight,
		Priority:    record[6],
		Books:       record[7],
		PDFLink:     record[8],
	}, nil
}

// SeedQuestion mirrors the JSON layout of the bundled question bank.
type SeedQuestion struct {
	ID          int64    `json:"id"`
	Paper       int      `json:"paper"`
	Section     string   `json:"section"`
	TopicID     int64    `json:"topic_id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Level       string   `json:"level"`
	Explanation string   `json:"explanation"`
}

func readQuestionsJSON(data []byte) ([]SeedQuestion, error) {
	var questions []SeedQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("json.Unmarshal() > %w", err)
	}
	for _, question := range questions {
		if len(question.Options) != 4 {
			return nil, fmt.Errorf("question %d: expected 4 options, got %d", question.ID, len(question.Options))
		}
		if question.AnswerIndex < 0 || question.AnswerIndex > 3 {
			return nil, fmt.Errorf("question %d: answer index %d out of range", question.ID, question.AnswerIndex)
		}
	}
	return questions, nil
}
