package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/habte-job-portal/internal/auth"
	"github.com/justsurfingit/habte-job-portal/internal/database"
	"github.com/justsurfingit/habte-job-portal/internal/dtos"
	"github.com/justsurfingit/habte-job-portal/internal/models"
	"gorm.io/gorm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect("sqlite://file:"+name+"?mode=memory&cache=shared", discardLogger())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

type fakeTelegram struct {
	mu       sync.Mutex
	posted   []models.ID
	failures int
}

func (f *fakeTelegram) PostJob(_ context.Context, job *models.Job) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return "", errors.New("telegram unavailable")
	}
	f.posted = append(f.posted, job.ID)
	return "msg-" + job.ID.String(), nil
}

func (f *fakeTelegram) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posted)
}

type fixture struct {
	db       *gorm.DB
	telegram *fakeTelegram
	payments *PaymentSimulator
	links    *LinkGenerator
	users    *UserService
	jobs     *JobService
	cvs      *CVService
}

func newFixture(t *testing.T, delay time.Duration) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{
		db:       db,
		telegram: &fakeTelegram{},
		links:    NewLinkGenerator(),
	}
	f.payments = NewPaymentSimulator(db, f.telegram, delay, discardLogger())
	// Registered after the DB cleanup, so it runs first.
	t.Cleanup(f.payments.Stop)

	f.users = NewUserService(db, auth.NewTokenManager("test-secret", time.Hour))
	f.jobs = NewJobService(db, f.links, f.payments, Pricing{Standard: 100, WithTelegram: 150})
	f.cvs = NewCVService(db, f.links, f.payments)
	return f
}

func (f *fixture) register(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	req := dtos.RegisterRequest{Name: "Test User", Email: email, Password: "secret123", Role: role}
	if role == models.RoleEmployer {
		req.Company = "Habte Tech"
	}
	u, _, err := f.users.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return u
}

func jobRequest(title string) *dtos.JobCreationRequest {
	return &dtos.JobCreationRequest{
		Title:            title,
		Description:      "Build and run backend services.",
		Location:         "Addis Ababa",
		Type:             models.JobTypeFullTime,
		ApplicationEmail: "jobs@habte.et",
	}
}

func (f *fixture) createJob(t *testing.T, employer *models.User, req *dtos.JobCreationRequest) *models.Job {
	t.Helper()
	job, err := f.jobs.CreateJob(context.Background(), employer, req)
	if err != nil {
		t.Fatalf("CreateJob(%q): %v", req.Title, err)
	}
	return job
}

func (f *fixture) loadJob(t *testing.T, id models.ID) *models.Job {
	t.Helper()
	var job models.Job
	if err := f.db.First(&job, "id = ?", id).Error; err != nil {
		t.Fatalf("load job %s: %v", id, err)
	}
	return &job
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func fixedToken(s string) func(int) string {
	return func(int) string { return s }
}
