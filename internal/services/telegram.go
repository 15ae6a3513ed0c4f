package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/justsurfingit/habte-job-portal/internal/models"
)

// TelegramPoster announces a paid job on the Telegram channel and returns the
// message id.
type TelegramPoster interface {
	PostJob(ctx context.Context, job *models.Job) (string, error)
}

// SimulatedTelegram stands in for the channel bot. It only logs and hands back
// a fresh message token.
type SimulatedTelegram struct {
	logger *slog.Logger
}

func NewSimulatedTelegram(logger *slog.Logger) *SimulatedTelegram {
	return &SimulatedTelegram{logger: logger}
}

func (t *SimulatedTelegram) PostJob(ctx context.Context, job *models.Job) (string, error) {
	msgID := "tg-" + uuid.NewString()
	t.logger.InfoContext(ctx, "job posted to telegram",
		slog.String("job_id", job.ID.String()),
		slog.String("title", job.Title),
		slog.String("message_id", msgID),
	)
	return msgID, nil
}
