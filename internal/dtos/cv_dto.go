package dtos

import "github.com/justsurfingit/habte-job-portal/internal/models"

// CVRequest is decoded after the payload passed the CV JSON schema, so enum
// and length rules are already enforced.
type CVRequest struct {
	Template            models.CVTemplate      `json:"template"`
	PersonalInfo        *models.PersonalInfo   `json:"personalInfo"`
	ProfessionalSummary *string                `json:"professionalSummary"`
	Experiences         []models.Experience    `json:"experiences"`
	Education           []models.Education     `json:"education"`
	Skills              []models.Skill         `json:"skills"`
	Languages           []models.Language      `json:"languages"`
	Certifications      []models.Certification `json:"certifications"`
	Projects            []models.Project       `json:"projects"`
	IsPublic            *bool                  `json:"isPublic"`
}

type VisibilityRequest struct {
	IsPublic *bool `json:"isPublic" binding:"required"`
}
