package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_bot "github.com/hrathore/padhai/internal/mocks/bot"
	"github.com/hrathore/padhai/internal/telegram"
)

func TestPoller_TracksOffsetAndStopsOnCancel(t *testing.T) {
	dispatcher, _, _ := setupDispatcher(t)
	ctrl := gomock.NewController(t)
	source := mock_bot.NewMockUpdateSource(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	source.EXPECT().GetUpdates(gomock.Any(), int64(0), 30).
		Return([]telegram.Update{{UpdateID: 7}, {UpdateID: 8}}, nil)
	source.EXPECT().GetUpdates(gomock.Any(), int64(9), 30).
		DoAndReturn(func(context.Context, int64, int) ([]telegram.Update, error) {
			cancel()
			return nil, nil
		})

	err := NewPoller(source, dispatcher, 30).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
