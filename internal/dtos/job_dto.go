package dtos

import "github.com/justsurfingit/habte-job-portal/internal/models"

type JobCreationRequest struct {
	Title            string         `json:"title" binding:"required"`
	Description      string         `json:"description" binding:"required"`
	Location         string         `json:"location" binding:"required"`
	Type             models.JobType `json:"type" binding:"required,oneof=full-time part-time contract internship"`
	ApplicationEmail string         `json:"applicationEmail" binding:"required,email"`

	// Optional Fields
	Company         string                 `json:"company"` // Defaults to the employer's company
	Salary          string                 `json:"salary"`
	Requirements    models.StringList      `json:"requirements"`
	Skills          models.StringList      `json:"skills"`
	ApplicationURL  string                 `json:"applicationUrl" binding:"omitempty,url"`
	IsRemote        bool                   `json:"isRemote"`
	ExperienceLevel models.ExperienceLevel `json:"experienceLevel" binding:"omitempty,oneof=entry mid senior executive"`
	PostToTelegram  bool                   `json:"postToTelegram"`
}

// JobUpdateRequest carries only the fields a client wants to change. Payment
// and Telegram state are not client writable.
type JobUpdateRequest struct {
	Title            *string                 `json:"title" binding:"omitempty,min=1"`
	Description      *string                 `json:"description" binding:"omitempty,min=1"`
	Company          *string                 `json:"company" binding:"omitempty,min=1"`
	Location         *string                 `json:"location" binding:"omitempty,min=1"`
	Type             *models.JobType         `json:"type" binding:"omitempty,oneof=full-time part-time contract internship"`
	Salary           *string                 `json:"salary"`
	Requirements     *models.StringList      `json:"requirements"`
	Skills           *models.StringList      `json:"skills"`
	ApplicationEmail *string                 `json:"applicationEmail" binding:"omitempty,email"`
	ApplicationURL   *string                 `json:"applicationUrl" binding:"omitempty,url"`
	IsActive         *bool                   `json:"isActive"`
	IsRemote         *bool                   `json:"isRemote"`
	ExperienceLevel  *models.ExperienceLevel `json:"experienceLevel" binding:"omitempty,oneof=entry mid senior executive"`
}

// JobListParams are the raw query parameters of GET /jobs.
type JobListParams struct {
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Type     string `form:"type"`
	Location string `form:"location"`
	Remote   string `form:"remote"`
	Search   string `form:"search"`
}
