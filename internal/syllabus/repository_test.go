package syllabus

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicColumns() []string {
	return []string{"id", "name", "paper", "section", "target_hours", "marks_weight", "priority", "books", "pdf_link"}
}

func TestDBTopicRepository_Find(t *testing.T) {
	tests := []struct {
		name      string
		id        int64
		setupMock func(mock sqlmock.Sqlmock)
		want      *Topic
		wantErr   bool
	}{
		{
			name: "found",
			id:   3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM topics WHERE id = ?")).
					WithArgs(int64(3)).
					WillReturnRows(sqlmock.NewRows(topicColumns()).
						AddRow(3, "Human Physiology", 2, "SrSec", 4.0, 12, "HIGH", "NCERT XI; NCERT XII", ""))
			},
			want: &Topic{
				ID:          3,
				Name:        "Human Physiology",
				Paper:       2,
				Section:     "SrSec",
				TargetHours: 4.0,
				MarksWeight: 12,
				Priority:    "HIGH",
				Books:       "NCERT XI; NCERT XII",
			},
		},
		{
			name: "not found returns nil",
			id:   99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM topics WHERE id = ?")).
					WithArgs(int64(99)).
					WillReturnRows(sqlmock.NewRows(topicColumns()))
			},
			want: nil,
		},
		{
			name: "query error",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM topics WHERE id = ?")).
					WithArgs(int64(1)).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()
			tc.setupMock(mock)

			repo := NewDBTopicRepository(sqlx.NewDb(mockDB, "sqlmock"))
			got, err := repo.Find(context.Background(), tc.id)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBTopicRepository_HighestPriority(t *testing.T) {
	tests := []struct {
		name      string
		paper     int
		section   string
		setupMock func(mock sqlmock.Sqlmock)
		wantID    int64
		wantNil   bool
	}{
		{
			name:    "returns top ranked topic",
			paper:   1,
			section: "History",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM topics WHERE paper = \\? AND section = \\?").
					WithArgs(1, "History").
					WillReturnRows(sqlmock.NewRows(topicColumns()).
						AddRow(11, "Rajasthan History", 1, "History", 6.0, 20, "HIGH", "", ""))
			},
			wantID: 11,
		},
		{
			name:    "empty section returns nil",
			paper:   1,
			section: "Economy",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM topics WHERE paper = \\? AND section = \\?").
					WithArgs(1, "Economy").
					WillReturnRows(sqlmock.NewRows(topicColumns()))
			},
			wantNil: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()
			tc.setupMock(mock)

			repo := NewDBTopicRepository(sqlx.NewDb(mockDB, "sqlmock"))
			got, err := repo.HighestPriority(context.Background(), tc.paper, tc.section)
			require.NoError(t, err)
			if tc.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.wantID, got.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
