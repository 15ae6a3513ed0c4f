package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/habte-job-portal/internal/apperr"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report json field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// respondError writes err in the API envelope. Internal details are logged,
// never returned.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Internal("Internal server error", err)
	}
	if e.Kind == apperr.KindInternal {
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("request_id", requestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}

	body := gin.H{"success": false, "message": e.Message}
	if len(e.Fields) > 0 {
		body["errors"] = e.Fields
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(e.Kind), body)
}

// bindJSON decodes the body into req, reporting failures as validation errors.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return bindingError(err)
	}
	return nil
}

func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = describeFieldError(fe)
		}
		return apperr.Validation("Validation failed.", fields)
	}
	return apperr.Validation("Invalid JSON format: "+err.Error(), nil)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must not be empty"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func respondOK(c *gin.Context, status int, body gin.H) {
	body["success"] = true
	c.JSON(status, body)
}

func notFoundRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "API endpoint not found"})
}
