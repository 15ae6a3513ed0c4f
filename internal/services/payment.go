package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/justsurfingit/habte-job-portal/internal/database"
	"github.com/justsurfingit/habte-job-portal/internal/models"
	"gorm.io/gorm"
)

const (
	completionTimeout = 10 * time.Second
	telegramAttempts  = 3
	telegramBackoff   = 200 * time.Millisecond
)

type paymentTask struct {
	timer *time.Timer
}

// PaymentSimulator completes the simulated Telebirr payment of a job or CV a
// fixed delay after creation. Each record gets at most one timer; deleting the
// record cancels it. Completion writes only the payment columns, so a client
// update that lands in between keeps its own columns.
type PaymentSimulator struct {
	db       *gorm.DB
	telegram TelegramPoster
	delay    time.Duration
	logger   *slog.Logger
	now      func() time.Time
	token    func(n int) string

	mu      sync.Mutex
	tasks   map[string]*paymentTask
	stopped bool
	running sync.WaitGroup
}

func NewPaymentSimulator(db *gorm.DB, telegram TelegramPoster, delay time.Duration, logger *slog.Logger) *PaymentSimulator {
	return &PaymentSimulator{
		db:       db,
		telegram: telegram,
		delay:    delay,
		logger:   logger,
		now:      time.Now,
		token:    randomBase36,
		tasks:    make(map[string]*paymentTask),
	}
}

func taskKey(kind ResourceKind, id models.ID) string {
	return string(kind) + ":" + id.String()
}

func (p *PaymentSimulator) ScheduleJob(id models.ID, postToTelegram bool) {
	p.schedule(ResourceJob, id, func(ctx context.Context) error {
		return p.completeJob(ctx, id, postToTelegram)
	})
}

func (p *PaymentSimulator) ScheduleCV(id models.ID) {
	p.schedule(ResourceCV, id, func(ctx context.Context) error {
		return p.completeCV(ctx, id)
	})
}

func (p *PaymentSimulator) schedule(kind ResourceKind, id models.ID, complete func(context.Context) error) {
	key := taskKey(kind, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		p.logger.Warn("payment simulator stopped; payment left pending",
			slog.String("kind", string(kind)), slog.String("id", id.String()))
		return
	}
	if old, ok := p.tasks[key]; ok {
		old.timer.Stop()
	}
	task := &paymentTask{}
	task.timer = time.AfterFunc(p.delay, func() { p.fire(key, task, kind, id, complete) })
	p.tasks[key] = task
}

func (p *PaymentSimulator) fire(key string, task *paymentTask, kind ResourceKind, id models.ID, complete func(context.Context) error) {
	p.mu.Lock()
	if p.stopped || p.tasks[key] != task {
		p.mu.Unlock()
		return
	}
	delete(p.tasks, key)
	p.running.Add(1)
	p.mu.Unlock()
	defer p.running.Done()

	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	if err := complete(ctx); err != nil {
		p.logger.Error("payment completion failed; record stays pending",
			slog.String("kind", string(kind)),
			slog.String("id", id.String()),
			slog.String("error", err.Error()),
		)
	}
}

// Cancel drops the pending completion for a record. It reports whether a
// timer was still waiting.
func (p *PaymentSimulator) Cancel(kind ResourceKind, id models.ID) bool {
	key := taskKey(kind, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	task, ok := p.tasks[key]
	if !ok {
		return false
	}
	task.timer.Stop()
	delete(p.tasks, key)
	return true
}

// Pending returns the number of completions still waiting on their timer.
func (p *PaymentSimulator) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}

// Stop cancels every waiting completion and blocks until the ones already
// running finish. Records whose timers were cancelled stay pending.
func (p *PaymentSimulator) Stop() {
	p.mu.Lock()
	p.stopped = true
	dropped := len(p.tasks)
	for key, task := range p.tasks {
		task.timer.Stop()
		delete(p.tasks, key)
	}
	p.mu.Unlock()

	p.running.Wait()
	if dropped > 0 {
		p.logger.Warn("payment simulator stopped with pending payments", slog.Int("dropped", dropped))
	}
}

func (p *PaymentSimulator) transactionID(kind ResourceKind) string {
	return fmt.Sprintf("TXN-%s-%d-%s", strings.ToUpper(string(kind)), p.now().UnixMilli(), p.token(9))
}

func (p *PaymentSimulator) completeJob(ctx context.Context, id models.ID, postToTelegram bool) error {
	var job models.Job
	if err := p.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			p.logger.Info("job gone before payment completed", slog.String("id", id.String()))
			return nil
		}
		return fmt.Errorf("load job: %w", err)
	}
	if job.PaymentStatus != models.PaymentPending {
		return nil
	}

	updates := map[string]any{
		"payment_status":          models.PaymentCompleted,
		"telebirr_transaction_id": p.transactionID(ResourceJob),
	}
	if postToTelegram {
		var msgID string
		err := retry(ctx, p.logger, telegramAttempts, telegramBackoff, func() error {
			var err error
			msgID, err = p.telegram.PostJob(ctx, &job)
			return err
		})
		if err != nil {
			p.logger.Warn("telegram posting failed", slog.String("id", id.String()), slog.String("error", err.Error()))
		} else {
			updates["posted_to_telegram"] = true
			updates["telegram_message_id"] = msgID
		}
	}

	res := p.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND payment_status = ?", id, models.PaymentPending).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("complete job payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		p.logger.Info("job gone before payment completed", slog.String("id", id.String()))
		return nil
	}
	p.logger.Info("job payment completed", slog.String("id", id.String()), slog.String("title", job.Title))
	return nil
}

func (p *PaymentSimulator) completeCV(ctx context.Context, id models.ID) error {
	res := p.db.WithContext(ctx).Model(&models.CV{}).
		Where("id = ? AND payment_status = ?", id, models.PaymentPending).
		Updates(map[string]any{
			"payment_status":          models.PaymentCompleted,
			"telebirr_transaction_id": p.transactionID(ResourceCV),
		})
	if res.Error != nil {
		return fmt.Errorf("complete cv payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		p.logger.Info("cv gone before payment completed", slog.String("id", id.String()))
		return nil
	}
	p.logger.Info("cv payment completed", slog.String("id", id.String()))
	return nil
}
