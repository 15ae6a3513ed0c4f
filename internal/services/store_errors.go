package services

import (
	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/justsurfingit/habte-job-portal/internal/database"
)

// storeError maps a gorm error onto the error taxonomy.
func storeError(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case database.IsNotFound(err):
		return apperr.NotFound(notFound)
	case database.IsDuplicate(err):
		return apperr.Conflict(conflict, err)
	default:
		return apperr.Internal("Server error.", err)
	}
}
