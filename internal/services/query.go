package services

import (
	"strconv"
	"strings"

	"github.com/justsurfingit/habte-job-portal/internal/apperr"
	"github.com/justsurfingit/habte-job-portal/internal/dtos"
	"github.com/justsurfingit/habte-job-portal/internal/models"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// JobQuery is a parsed job listing request: a filter over active jobs plus an
// offset/limit window, newest first.
type JobQuery struct {
	Page     int
	Limit    int
	Type     models.JobType
	Location string
	Search   string
	Remote   *bool
}

func ParseJobQuery(p dtos.JobListParams) (JobQuery, error) {
	q := JobQuery{
		Page:     positiveOr(p.Page, defaultPage),
		Limit:    positiveOr(p.Limit, defaultLimit),
		Location: strings.TrimSpace(p.Location),
		Search:   strings.TrimSpace(p.Search),
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if t := strings.TrimSpace(p.Type); t != "" {
		q.Type = models.JobType(t)
		if !q.Type.Valid() {
			return JobQuery{}, apperr.Validation("Invalid job type.", map[string]string{
				"type": "must be one of full-time, part-time, contract, internship",
			})
		}
	}
	if p.Remote != "" {
		remote := p.Remote == "true"
		q.Remote = &remote
	}
	return q, nil
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Scope applies the filter only, so the same scope serves both the count and
// the windowed fetch.
func (q JobQuery) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_active = ?", true)
		if q.Type != "" {
			db = db.Where("type = ?", q.Type)
		}
		if q.Location != "" {
			db = db.Where(`LOWER(location) LIKE ? ESCAPE '\'`, containsPattern(q.Location))
		}
		if q.Remote != nil {
			db = db.Where("is_remote = ?", *q.Remote)
		}
		if q.Search != "" {
			pat := containsPattern(q.Search)
			db = db.Where(
				`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(company) LIKE ? ESCAPE '\')`,
				pat, pat, pat,
			)
		}
		return db
	}
}

func (q JobQuery) Skip() int { return (q.Page - 1) * q.Limit }

func (q JobQuery) Take() int { return q.Limit }

func (q JobQuery) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(q.Limit) - 1) / int64(q.Limit))
}

// containsPattern builds a case-insensitive substring LIKE pattern with the
// wildcard characters of s escaped.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
