package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/justsurfingit/habte-job-portal/internal/dtos"
	"github.com/justsurfingit/habte-job-portal/internal/services"
)

type CVHandler struct {
	CVService *services.CVService
	Logger    *slog.Logger
}

func NewCVHandler(s *services.CVService, logger *slog.Logger) *CVHandler {
	return &CVHandler{CVService: s, Logger: logger}
}

// decodeCV validates the raw body against the CV schema before decoding,
// so shape errors come back per field.
func decodeCV(c *gin.Context, creating bool) (*dtos.CVRequest, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, apperr.Validation("Could not read request body.", nil)
	}
	if err := services.ValidateCVDocument(raw, creating); err != nil {
		return nil, err
	}
	var req dtos.CVRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, apperr.Validation("Invalid JSON format: "+err.Error(), nil)
	}
	return &req, nil
}

func (h *CVHandler) CreateCV(c *gin.Context) {
	req, err := decodeCV(c, true)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cv, err := h.CVService.CreateCV(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{
		"message": "CV created successfully. Processing payment...",
		"cv":      cv,
	})
}

// GetCV accepts an id or a shareable link; private CVs are owner-only.
func (h *CVHandler) GetCV(c *gin.Context) {
	cv, err := h.CVService.GetCV(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"cv": cv})
}

func (h *CVHandler) MyCVs(c *gin.Context) {
	cvs, err := h.CVService.ListOwnerCVs(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"cvs": cvs, "count": len(cvs)})
}

func (h *CVHandler) UpdateCV(c *gin.Context) {
	req, err := decodeCV(c, false)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cv, err := h.CVService.UpdateCV(c.Request.Context(), currentUser(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "CV updated successfully.", "cv": cv})
}

func (h *CVHandler) DeleteCV(c *gin.Context) {
	if err := h.CVService.DeleteCV(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "CV deleted successfully."})
}

func (h *CVHandler) SetVisibility(c *gin.Context) {
	var req dtos.VisibilityRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cv, err := h.CVService.SetVisibility(c.Request.Context(), currentUser(c), c.Param("id"), *req.IsPublic)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	state := "private"
	if cv.IsPublic {
		state = "public"
	}
	respondOK(c, http.StatusOK, gin.H{"message": "CV is now " + state + ".", "cv": cv})
}
