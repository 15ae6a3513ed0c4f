package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/justsurfingit/habte-job-portal/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type AuditReport struct {
	StaleJobs int64
	StaleCVs  int64
}

// PaymentAuditor periodically reports payments stuck in pending, which happens
// when the process exits before a completion fires. It never mutates records.
type PaymentAuditor struct {
	db         *gorm.DB
	staleAfter time.Duration
	logger     *slog.Logger
	cron       *cron.Cron
	now        func() time.Time
}

func NewPaymentAuditor(db *gorm.DB, staleAfter time.Duration, logger *slog.Logger) *PaymentAuditor {
	return &PaymentAuditor{
		db:         db,
		staleAfter: staleAfter,
		logger:     logger,
		cron:       cron.New(),
		now:        time.Now,
	}
}

func (a *PaymentAuditor) Start(spec string) error {
	if _, err := a.cron.AddFunc(spec, a.run); err != nil {
		return fmt.Errorf("add payment audit: %w", err)
	}
	a.cron.Start()
	a.logger.Info("payment audit scheduled", slog.String("schedule", spec))
	return nil
}

func (a *PaymentAuditor) Stop() {
	ctx := a.cron.Stop()
	<-ctx.Done()
}

func (a *PaymentAuditor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report, err := a.Sweep(ctx)
	if err != nil {
		a.logger.Error("payment audit failed", slog.String("error", err.Error()))
		return
	}
	if report.StaleJobs > 0 || report.StaleCVs > 0 {
		a.logger.Warn("payments stuck in pending",
			slog.Int64("jobs", report.StaleJobs),
			slog.Int64("cvs", report.StaleCVs),
			slog.Duration("older_than", a.staleAfter),
		)
	}
}

// Sweep counts pending payments created more than staleAfter ago.
func (a *PaymentAuditor) Sweep(ctx context.Context) (AuditReport, error) {
	cutoff := a.now().Add(-a.staleAfter)
	var r AuditReport
	if err := a.db.WithContext(ctx).Model(&models.Job{}).
		Where("payment_status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Count(&r.StaleJobs).Error; err != nil {
		return r, fmt.Errorf("count stale jobs: %w", err)
	}
	if err := a.db.WithContext(ctx).Model(&models.CV{}).
		Where("payment_status = ? AND created_at < ?", models.PaymentPending, cutoff).
		Count(&r.StaleCVs).Error; err != nil {
		return r, fmt.Errorf("count stale cvs: %w", err)
	}
	return r, nil
}
