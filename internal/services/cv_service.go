package services

import (
	"context"
	"strings"
	"time"

	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/justsurfingit/habte-job-portal/internal/database"
	"github.com/justsurfingit/habte-job-portal/internal/dtos"
	"github.com/justsurfingit/habte-job-portal/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	msgCVNotFound     = "CV not found."
	msgCVDuplicate    = "You already have a CV with this name. Please use a different name or edit the existing one."
	msgCVLinkConflict = "Could not assign a unique shareable link. Please try again."
)

type CVService struct {
	DB       *gorm.DB
	Links    *LinkGenerator
	Payments *PaymentSimulator
	now      func() time.Time
}

func NewCVService(db *gorm.DB, links *LinkGenerator, payments *PaymentSimulator) *CVService {
	return &CVService{DB: db, Links: links, Payments: payments, now: time.Now}
}

// CreateCV stores a new CV for owner. A second CV with the same full name for
// the same owner is rejected before anything is written.
func (s *CVService) CreateCV(ctx context.Context, owner *models.User, req *dtos.CVRequest) (*models.CV, error) {
	if req.PersonalInfo == nil || req.ProfessionalSummary == nil || !req.Template.Valid() {
		return nil, apperr.Validation("Template, personal info and professional summary are required.", nil)
	}
	info := trimPersonalInfo(*req.PersonalInfo)
	if info.FullName == "" {
		return nil, apperr.Validation("Full name is required.", map[string]string{"personalInfo.fullName": "required"})
	}

	var count int64
	err := s.DB.WithContext(ctx).Model(&models.CV{}).
		Where("user_id = ? AND personal_full_name = ?", owner.ID, info.FullName).
		Count(&count).Error
	if err != nil {
		return nil, apperr.Internal("Server error while creating CV.", err)
	}
	if count > 0 {
		return nil, apperr.Conflict(msgCVDuplicate, nil)
	}

	cv := &models.CV{
		ID:                  models.NewID(),
		UserID:              owner.ID,
		Template:            req.Template,
		PersonalInfo:        info,
		ProfessionalSummary: *req.ProfessionalSummary,
		Experiences:         datatypes.NewJSONSlice(nonNil(req.Experiences)),
		Education:           datatypes.NewJSONSlice(nonNil(req.Education)),
		Skills:              datatypes.NewJSONSlice(withSkillDefaults(req.Skills)),
		Languages:           datatypes.NewJSONSlice(withLanguageDefaults(req.Languages)),
		Certifications:      datatypes.NewJSONSlice(nonNil(req.Certifications)),
		Projects:            datatypes.NewJSONSlice(nonNil(req.Projects)),
		IsPublic:            true,
		PaymentStatus:       models.PaymentPending,
		LastUpdated:         s.now(),
	}
	if cv.ShareableLink == "" {
		cv.ShareableLink = s.Links.Assign(ResourceCV, cv.PersonalInfo.FullName)
	}

	if err := s.DB.WithContext(ctx).Create(cv).Error; err != nil {
		return nil, s.createConflict(ctx, err, owner.ID, info.FullName)
	}

	s.Payments.ScheduleCV(cv.ID)
	return cv, nil
}

// createConflict tells a name clash that raced past the pre-check apart from
// a shareable link collision.
func (s *CVService) createConflict(ctx context.Context, err error, owner models.ID, fullName string) error {
	if !database.IsDuplicate(err) {
		return storeError(err, msgCVNotFound, msgCVLinkConflict)
	}
	var count int64
	s.DB.WithContext(ctx).Model(&models.CV{}).
		Where("user_id = ? AND personal_full_name = ?", owner, fullName).
		Count(&count)
	if count > 0 {
		return apperr.Conflict(msgCVDuplicate, err)
	}
	return apperr.Conflict(msgCVLinkConflict, err)
}

// GetCV resolves identifier as an id or shareable link. Private CVs are only
// returned to their owner; requester is empty for anonymous callers.
func (s *CVService) GetCV(ctx context.Context, requester models.ID, identifier string) (*models.CV, error) {
	var cv models.CV
	if err := s.DB.WithContext(ctx).Scopes(lookupScope(identifier)).First(&cv).Error; err != nil {
		return nil, storeError(err, msgCVNotFound, msgCVDuplicate)
	}
	if !CanReadCV(requester, &cv) {
		return nil, apperr.Forbidden("Access denied. This CV is private.")
	}

	var card models.OwnerCard
	err := s.DB.WithContext(ctx).Model(&models.User{}).
		Select("id", "name", "email", "phone", "location").
		Where("id = ?", cv.UserID).
		Limit(1).Find(&card).Error
	if err != nil {
		return nil, apperr.Internal("Server error while fetching CV.", err)
	}
	if !card.ID.IsZero() {
		cv.Owner = &card
	}
	return &cv, nil
}

func (s *CVService) ListOwnerCVs(ctx context.Context, owner *models.User) ([]models.CV, error) {
	cvs := []models.CV{}
	err := s.DB.WithContext(ctx).Where("user_id = ?", owner.ID).
		Order("created_at DESC").Order("id DESC").
		Find(&cvs).Error
	if err != nil {
		return nil, apperr.Internal("Server error while fetching CVs.", err)
	}
	return cvs, nil
}

func (s *CVService) loadOwned(ctx context.Context, requester *models.User, id string, denied string) (*models.CV, error) {
	if requester == nil {
		return nil, apperr.Auth("Access denied. No token provided.")
	}
	var cv models.CV
	if err := s.DB.WithContext(ctx).First(&cv, "id = ?", id).Error; err != nil {
		return nil, storeError(err, msgCVNotFound, msgCVDuplicate)
	}
	if !CanMutate(requester.ID, &cv) {
		return nil, apperr.Forbidden(denied)
	}
	return &cv, nil
}

// UpdateCV replaces the sections present in req. Owner, link and payment
// columns are never touched.
func (s *CVService) UpdateCV(ctx context.Context, requester *models.User, id string, req *dtos.CVRequest) (*models.CV, error) {
	cv, err := s.loadOwned(ctx, requester, id, "Access denied. You can only update your own CVs.")
	if err != nil {
		return nil, err
	}

	if req.PersonalInfo != nil {
		if err := requireText(map[string]string{"personalInfo.fullName": req.PersonalInfo.FullName}); err != nil {
			return nil, err
		}
	}

	updates := cvUpdates(req)
	updates["last_updated"] = s.now()
	if err := s.DB.WithContext(ctx).Model(&models.CV{}).Where("id = ?", cv.ID).Updates(updates).Error; err != nil {
		return nil, storeError(err, msgCVNotFound, msgCVDuplicate)
	}
	return s.reload(ctx, cv.ID)
}

func cvUpdates(req *dtos.CVRequest) map[string]any {
	u := map[string]any{}
	if req.Template != "" {
		u["template"] = req.Template
	}
	if req.PersonalInfo != nil {
		info := trimPersonalInfo(*req.PersonalInfo)
		u["personal_full_name"] = info.FullName
		u["personal_job_title"] = info.JobTitle
		u["personal_email"] = info.Email
		u["personal_phone"] = info.Phone
		u["personal_location"] = info.Location
		u["personal_linked_in"] = info.LinkedIn
		u["personal_website"] = info.Website
	}
	if req.ProfessionalSummary != nil {
		u["professional_summary"] = *req.ProfessionalSummary
	}
	if req.Experiences != nil {
		u["experiences"] = datatypes.NewJSONSlice(req.Experiences)
	}
	if req.Education != nil {
		u["education"] = datatypes.NewJSONSlice(req.Education)
	}
	if req.Skills != nil {
		u["skills"] = datatypes.NewJSONSlice(withSkillDefaults(req.Skills))
	}
	if req.Languages != nil {
		u["languages"] = datatypes.NewJSONSlice(withLanguageDefaults(req.Languages))
	}
	if req.Certifications != nil {
		u["certifications"] = datatypes.NewJSONSlice(req.Certifications)
	}
	if req.Projects != nil {
		u["projects"] = datatypes.NewJSONSlice(req.Projects)
	}
	if req.IsPublic != nil {
		u["is_public"] = *req.IsPublic
	}
	return u
}

// DeleteCV removes the CV and cancels its pending payment completion.
func (s *CVService) DeleteCV(ctx context.Context, requester *models.User, id string) error {
	cv, err := s.loadOwned(ctx, requester, id, "Access denied. You can only delete your own CVs.")
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&models.CV{}, "id = ?", cv.ID).Error; err != nil {
		return apperr.Internal("Server error while deleting CV.", err)
	}
	s.Payments.Cancel(ResourceCV, cv.ID)
	return nil
}

func (s *CVService) SetVisibility(ctx context.Context, requester *models.User, id string, isPublic bool) (*models.CV, error) {
	cv, err := s.loadOwned(ctx, requester, id, "Access denied. You can only update your own CVs.")
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&models.CV{}).Where("id = ?", cv.ID).Update("is_public", isPublic).Error; err != nil {
		return nil, apperr.Internal("Server error while updating CV visibility.", err)
	}
	return s.reload(ctx, cv.ID)
}

func (s *CVService) reload(ctx context.Context, id models.ID) (*models.CV, error) {
	var cv models.CV
	if err := s.DB.WithContext(ctx).First(&cv, "id = ?", id).Error; err != nil {
		return nil, storeError(err, msgCVNotFound, msgCVDuplicate)
	}
	return &cv, nil
}

func trimPersonalInfo(p models.PersonalInfo) models.PersonalInfo {
	return models.PersonalInfo{
		FullName: strings.TrimSpace(p.FullName),
		JobTitle: strings.TrimSpace(p.JobTitle),
		Email:    strings.TrimSpace(p.Email),
		Phone:    strings.TrimSpace(p.Phone),
		Location: strings.TrimSpace(p.Location),
		LinkedIn: strings.TrimSpace(p.LinkedIn),
		Website:  strings.TrimSpace(p.Website),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func withSkillDefaults(skills []models.Skill) []models.Skill {
	out := make([]models.Skill, 0, len(skills))
	for _, sk := range skills {
		if sk.Level == "" {
			sk.Level = models.SkillIntermediate
		}
		out = append(out, sk)
	}
	return out
}

func withLanguageDefaults(langs []models.Language) []models.Language {
	out := make([]models.Language, 0, len(langs))
	for _, l := range langs {
		if l.Level == "" {
			l.Level = models.LanguageConversational
		}
		out = append(out, l)
	}
	return out
}
