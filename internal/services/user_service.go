package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/justsurfingit/habte-job-portal/internal/auth"
	"github.com/justsurfingit/habte-job-portal/internal/database"
	"github.com/justsurfingit/habte-job-portal/internal/dtos"
	"github.com/justsurfingit/habte-job-portal/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	msgUserNotFound = "User not found."
	msgEmailTaken   = "User already exists with this email."
)

type UserService struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

func NewUserService(db *gorm.DB, tokens *auth.TokenManager) *UserService {
	return &UserService{DB: db, Tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and returns it with a session token.
func (s *UserService) Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, string, error) {
	if !req.Role.Valid() {
		return nil, "", apperr.Validation("Invalid role.", map[string]string{"role": "must be jobseeker or employer"})
	}
	company := strings.TrimSpace(req.Company)
	if req.Role == models.RoleEmployer && company == "" {
		return nil, "", apperr.Validation("Company is required for employers.", map[string]string{"company": "required"})
	}

	email := normalizeEmail(req.Email)
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", apperr.Internal("Server error during registration.", err)
	}
	if count > 0 {
		return nil, "", apperr.Conflict(msgEmailTaken, nil)
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, "", apperr.Validation("Password is too long.", map[string]string{
			"password": fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes),
		})
	}
	if err != nil {
		return nil, "", apperr.Internal("Server error during registration.", err)
	}

	user := &models.User{
		ID:       models.NewID(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hash,
		Role:     req.Role,
		Company:  company,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, "", storeError(err, msgUserNotFound, msgEmailTaken)
	}

	token, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", apperr.Internal("Server error during registration.", err)
	}
	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, req dtos.LoginRequest) (*models.User, string, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "email = ?", normalizeEmail(req.Email)).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, "", apperr.Auth("Invalid credentials.")
		}
		return nil, "", apperr.Internal("Server error during login.", err)
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, "", apperr.Auth("Invalid credentials.")
	}

	token, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", apperr.Internal("Server error during login.", err)
	}
	return &user, token, nil
}

// Authenticate resolves a session token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return nil, apperr.Auth("Invalid token.")
		}
		return nil, apperr.Internal("Server error during authentication.", err)
	}

	user, err := s.GetByID(ctx, claims.UserID())
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, apperr.Auth("Invalid token.")
	}
	return user, err
}

func (s *UserService) GetByID(ctx context.Context, id models.ID) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, storeError(err, msgUserNotFound, msgEmailTaken)
	}
	return &user, nil
}

// UpdateProfile writes the non-empty fields of req and returns the fresh user.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, req dtos.ProfileUpdateRequest) (*models.User, error) {
	updates := map[string]any{}
	set := func(col, v string) {
		if v = strings.TrimSpace(v); v != "" {
			updates[col] = v
		}
	}
	set("name", req.Name)
	set("phone", req.Phone)
	set("location", req.Location)
	set("bio", req.Bio)
	set("telebirr_account", req.TelebirrAccount)
	set("telegram_username", req.TelegramUsername)
	if len(req.Skills) > 0 {
		updates["skills"] = datatypes.NewJSONSlice([]string(req.Skills))
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			return nil, storeError(err, msgUserNotFound, msgEmailTaken)
		}
	}
	return s.GetByID(ctx, user.ID)
}

func (s *UserService) SetProfileImage(ctx context.Context, user *models.User, imageURL string) (*models.User, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, apperr.Validation("Image URL is required.", map[string]string{"imageUrl": "required"})
	}
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Update("profile_image", imageURL).Error; err != nil {
		return nil, storeError(err, msgUserNotFound, msgEmailTaken)
	}
	return s.GetByID(ctx, user.ID)
}
