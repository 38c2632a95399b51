package bot

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hrathore/padhai/internal/telegram"
)

//go:generate mockgen -source=poller.go -destination=../mocks/bot/mock_update_source.go -package=mock_bot UpdateSource

// UpdateSource is the incoming side of the Telegram client.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]telegram.Update, error)
}

// errorPause is how long the poller waits after a failed poll before the
// next one.
const errorPause = 5 * time.Second

// Poller drives the long-poll loop and hands updates to the dispatcher.
type Poller struct {
	source         UpdateSource
	dispatcher     *Dispatcher
	timeoutSeconds int
}

// NewPoller creates a new Poller.
func NewPoller(source UpdateSource, dispatcher *Dispatcher, timeoutSeconds int) *Poller {
	return &Poller{
		source:         source,
		dispatcher:     dispatcher,
		timeoutSeconds: timeoutSeconds,
	}
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		updates, err := p.source.GetUpdates(ctx, offset, p.timeoutSeconds)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return ctx.Err()
			}
			slog.Error("Polling failed", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(errorPause):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			p.dispatcher.HandleUpdate(ctx, update)
		}
	}
}
