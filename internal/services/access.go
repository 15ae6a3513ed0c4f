package services

import (
	"unicode/utf8"

	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/justsurfingit/habte-job-portal/internal/models"
	"gorm.io/gorm"
)

// Owned is a record with exactly one owner allowed to change it.
type Owned interface {
	OwnerID() models.ID
}

// CanMutate reports whether requester owns r. Ids are compared as typed
// values; an empty requester never matches.
func CanMutate(requester models.ID, r Owned) bool {
	return !requester.IsZero() && requester == r.OwnerID()
}

// CanReadJob reports whether a job is visible. Inactive jobs are hidden from
// everyone, including their employer, and callers report them as not found.
func CanReadJob(j *models.Job) bool {
	return j.IsActive
}

// CanReadCV reports whether requester may read c. An empty requester is an
// anonymous caller.
func CanReadCV(requester models.ID, c *models.CV) bool {
	return c.IsPublic || CanMutate(requester, c)
}

func RequireRole(u *models.User, role models.Role) error {
	if u == nil || u.Role != role {
		return apperr.Forbidden("Access denied. Insufficient permissions.")
	}
	return nil
}

type LookupMode int

const (
	LookupByID LookupMode = iota
	LookupByLink
)

// ResolveLookup decides how a public identifier is looked up: anything with
// exactly as many characters as a store id is treated as an id, everything
// else as a shareable link. A shareable link that happens to be id-length is therefore
// looked up as an id and not found.
func ResolveLookup(identifier string) LookupMode {
	if utf8.RuneCountInString(identifier) == models.IDLength {
		return LookupByID
	}
	return LookupByLink
}

// lookupScope restricts a query to the record named by identifier.
func lookupScope(identifier string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if ResolveLookup(identifier) == LookupByID {
			return db.Where("id = ?", identifier)
		}
		return db.Where("shareable_link = ?", identifier)
	}
}
