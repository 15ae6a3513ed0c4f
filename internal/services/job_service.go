package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/justsurfingit/habte-job-portal/internal/dtos"
	"github.com/justsurfingit/habte-job-portal/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	msgJobNotFound     = "Job not found."
	msgJobLinkConflict = "Could not assign a unique shareable link. Please try again."
)

// Pricing holds the fixed posting fees. The amount is chosen once at creation.
type Pricing struct {
	Standard     float64
	WithTelegram float64
}

func (p Pricing) For(postToTelegram bool) float64 {
	if postToTelegram {
		return p.WithTelegram
	}
	return p.Standard
}

type JobPage struct {
	Jobs       []models.Job
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type JobService struct {
	DB       *gorm.DB
	Links    *LinkGenerator
	Payments *PaymentSimulator
	Pricing  Pricing
}

func NewJobService(db *gorm.DB, links *LinkGenerator, payments *PaymentSimulator, pricing Pricing) *JobService {
	return &JobService{
		DB:       db,
		Links:    links,
		Payments: payments,
		Pricing:  pricing,
	}
}

// CreateJob persists a new posting with a pending payment and schedules the
// payment completion. It returns before the payment completes.
func (s *JobService) CreateJob(ctx context.Context, employer *models.User, req *dtos.JobCreationRequest) (*models.Job, error) {
	if err := RequireRole(employer, models.RoleEmployer); err != nil {
		return nil, err
	}

	company := strings.TrimSpace(req.Company)
	if company == "" {
		company = employer.Company
	}
	if company == "" {
		return nil, apperr.Validation("Company is required.", map[string]string{"company": "required"})
	}
	if err := requireText(map[string]string{
		"title":            req.Title,
		"description":      req.Description,
		"location":         req.Location,
		"applicationEmail": req.ApplicationEmail,
	}); err != nil {
		return nil, err
	}
	level := req.ExperienceLevel
	if level == "" {
		level = models.ExperienceMid
	}

	job := &models.Job{
		ID:               models.NewID(),
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Company:          company,
		Location:         strings.TrimSpace(req.Location),
		Type:             req.Type,
		Salary:           strings.TrimSpace(req.Salary),
		Requirements:     datatypes.NewJSONSlice([]string(req.Requirements)),
		Skills:           datatypes.NewJSONSlice([]string(req.Skills)),
		ApplicationEmail: strings.TrimSpace(req.ApplicationEmail),
		ApplicationURL:   strings.TrimSpace(req.ApplicationURL),
		EmployerID:       employer.ID,
		IsActive:         true,
		IsRemote:         req.IsRemote,
		ExperienceLevel:  level,
		PaymentStatus:    models.PaymentPending,
		PaymentAmount:    s.Pricing.For(req.PostToTelegram),
	}
	if job.ShareableLink == "" {
		job.ShareableLink = s.Links.Assign(ResourceJob, job.Title)
	}

	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, storeError(err, msgJobNotFound, msgJobLinkConflict)
	}

	s.Payments.ScheduleJob(job.ID, req.PostToTelegram)
	return job, nil
}

// GetJob resolves identifier as an id or shareable link. Inactive jobs are
// reported as not found.
func (s *JobService) GetJob(ctx context.Context, identifier string) (*models.Job, error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).Scopes(lookupScope(identifier)).First(&job).Error; err != nil {
		return nil, storeError(err, msgJobNotFound, msgJobLinkConflict)
	}
	if !CanReadJob(&job) {
		return nil, apperr.NotFound(msgJobNotFound)
	}
	return &job, nil
}

func (s *JobService) ListJobs(ctx context.Context, q JobQuery) (*JobPage, error) {
	page := &JobPage{Page: q.Page, Limit: q.Limit, Jobs: []models.Job{}}

	if err := s.DB.WithContext(ctx).Model(&models.Job{}).Scopes(q.Scope()).Count(&page.Total).Error; err != nil {
		return nil, apperr.Internal("Server error while fetching jobs.", err)
	}
	err := s.DB.WithContext(ctx).Scopes(q.Scope()).
		Order("created_at DESC").Order("id DESC").
		Offset(q.Skip()).Limit(q.Take()).
		Find(&page.Jobs).Error
	if err != nil {
		return nil, apperr.Internal("Server error while fetching jobs.", err)
	}
	page.TotalPages = q.TotalPages(page.Total)
	return page, nil
}

// ListEmployerJobs returns every job of employer, inactive ones included.
func (s *JobService) ListEmployerJobs(ctx context.Context, employer *models.User) ([]models.Job, error) {
	if err := RequireRole(employer, models.RoleEmployer); err != nil {
		return nil, err
	}
	jobs := []models.Job{}
	err := s.DB.WithContext(ctx).Where("employer = ?", employer.ID).
		Order("created_at DESC").Order("id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperr.Internal("Server error while fetching jobs.", err)
	}
	return jobs, nil
}

// loadOwned fetches a job by store id and checks requester may change it.
func (s *JobService) loadOwned(ctx context.Context, requester *models.User, id string, denied string) (*models.Job, error) {
	if err := RequireRole(requester, models.RoleEmployer); err != nil {
		return nil, err
	}
	var job models.Job
	if err := s.DB.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, storeError(err, msgJobNotFound, msgJobLinkConflict)
	}
	if !CanMutate(requester.ID, &job) {
		return nil, apperr.Forbidden(denied)
	}
	return &job, nil
}

// UpdateJob writes only the columns present in req. Payment columns are left
// to the payment simulator, so both writes survive when they interleave.
func (s *JobService) UpdateJob(ctx context.Context, requester *models.User, id string, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.loadOwned(ctx, requester, id, "Access denied. You can only update your own jobs.")
	if err != nil {
		return nil, err
	}

	present := map[string]string{}
	for field, v := range map[string]*string{
		"title":            req.Title,
		"description":      req.Description,
		"company":          req.Company,
		"location":         req.Location,
		"applicationEmail": req.ApplicationEmail,
	} {
		if v != nil {
			present[field] = *v
		}
	}
	if err := requireText(present); err != nil {
		return nil, err
	}

	updates := jobUpdates(req)
	if len(updates) == 0 {
		return job, nil
	}
	if err := s.DB.WithContext(ctx).Model(&models.Job{}).Where("id = ?", job.ID).Updates(updates).Error; err != nil {
		return nil, storeError(err, msgJobNotFound, msgJobLinkConflict)
	}

	var fresh models.Job
	if err := s.DB.WithContext(ctx).First(&fresh, "id = ?", job.ID).Error; err != nil {
		return nil, storeError(err, msgJobNotFound, msgJobLinkConflict)
	}
	return &fresh, nil
}

func jobUpdates(req *dtos.JobUpdateRequest) map[string]any {
	u := map[string]any{}
	text := func(col string, v *string) {
		if v != nil {
			u[col] = strings.TrimSpace(*v)
		}
	}
	text("title", req.Title)
	text("company", req.Company)
	text("location", req.Location)
	text("salary", req.Salary)
	text("application_email", req.ApplicationEmail)
	text("application_url", req.ApplicationURL)
	if req.Description != nil {
		u["description"] = *req.Description
	}
	if req.Type != nil {
		u["type"] = *req.Type
	}
	if req.Requirements != nil {
		u["requirements"] = datatypes.NewJSONSlice([]string(*req.Requirements))
	}
	if req.Skills != nil {
		u["skills"] = datatypes.NewJSONSlice([]string(*req.Skills))
	}
	if req.IsActive != nil {
		u["is_active"] = *req.IsActive
	}
	if req.IsRemote != nil {
		u["is_remote"] = *req.IsRemote
	}
	if req.ExperienceLevel != nil {
		u["experience_level"] = *req.ExperienceLevel
	}
	return u
}

// DeleteJob removes the job and cancels its pending payment completion.
func (s *JobService) DeleteJob(ctx context.Context, requester *models.User, id string) error {
	job, err := s.loadOwned(ctx, requester, id, "Access denied. You can only delete your own jobs.")
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&models.Job{}, "id = ?", job.ID).Error; err != nil {
		return apperr.Internal("Server error while deleting job.", err)
	}
	s.Payments.Cancel(ResourceJob, job.ID)
	return nil
}

// requireText rejects fields that are blank once trimmed.
func requireText(fields map[string]string) error {
	missing := map[string]string{}
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing[name] = "must not be blank"
		}
	}
	if len(missing) > 0 {
		return apperr.Validation("Validation failed.", missing)
	}
	return nil
}
