package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/habte-job-portal/internal/dtos"
	"github.com/justsurfingit/habte-job-portal/internal/services"
)

// AuthHandler serves registration, login and the profile endpoints.
type AuthHandler struct {
	Users  *services.UserService
	Logger *slog.Logger
}

func NewAuthHandler(users *services.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	user, token, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	user, token, err := h.Users.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"user": currentUser(c)})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"profile": currentUser(c)})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	user, err := h.Users.UpdateProfile(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Profile updated successfully.", "profile": user})
}

// UploadImage stores an already-hosted image URL on the profile.
func (h *AuthHandler) UploadImage(c *gin.Context) {
	var req dtos.ProfileImageRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	user, err := h.Users.SetProfileImage(c.Request.Context(), currentUser(c), req.ImageURL)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"message":  "Profile image updated successfully.",
		"imageUrl": user.ProfileImage,
		"profile":  user,
	})
}
