package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        ID        `gorm:"primaryKey;size:24" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"size:16;not null" json:"role"`
	// Company is required for employers only.
	Company string `json:"company,omitempty"`

	Phone            string                      `json:"phone,omitempty"`
	Location         string                      `json:"location,omitempty"`
	Bio              string                      `gorm:"type:text" json:"bio,omitempty"`
	Skills           datatypes.JSONSlice[string] `json:"skills"`
	TelebirrAccount  string                      `json:"telebirrAccount,omitempty"`
	TelegramUsername string                      `json:"telegramUsername,omitempty"`
	ProfileImage     string                      `json:"profileImage,omitempty"`
}

// Job is a posting owned by an employer. Payment fields are written only by
// the payment simulator.
type Job struct {
	ID        ID        `gorm:"primaryKey;size:24" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_jobs_employer_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title            string                      `gorm:"not null" json:"title"`
	Description      string                      `gorm:"type:text;not null" json:"description"`
	Company          string                      `gorm:"not null" json:"company"`
	Location         string                      `gorm:"not null;index:idx_jobs_listing,priority:3" json:"location"`
	Type             JobType                     `gorm:"size:16;not null;index:idx_jobs_listing,priority:2" json:"type"`
	Salary           string                      `json:"salary,omitempty"`
	Requirements     datatypes.JSONSlice[string] `json:"requirements"`
	Skills           datatypes.JSONSlice[string] `json:"skills"`
	ApplicationEmail string                      `gorm:"not null" json:"applicationEmail"`
	ApplicationURL   string                      `json:"applicationUrl,omitempty"`

	EmployerID ID `gorm:"column:employer;size:24;not null;index:idx_jobs_employer_created,priority:1" json:"employer"`

	IsActive        bool            `gorm:"not null;index:idx_jobs_listing,priority:1" json:"isActive"`
	IsRemote        bool            `gorm:"not null" json:"isRemote"`
	ExperienceLevel ExperienceLevel `gorm:"size:16;not null" json:"experienceLevel"`

	PostedToTelegram  bool    `gorm:"not null" json:"postedToTelegram"`
	TelegramMessageID *string `json:"telegramMessageId"`
	ShareableLink     string  `gorm:"uniqueIndex;not null" json:"shareableLink"`

	PaymentStatus         PaymentStatus `gorm:"size:16;not null;index" json:"paymentStatus"`
	PaymentAmount         float64       `gorm:"not null" json:"paymentAmount"`
	TelebirrTransactionID *string       `json:"telebirrTransactionId"`
}

func (j *Job) OwnerID() ID { return j.EmployerID }

type PersonalInfo struct {
	FullName string `gorm:"uniqueIndex:idx_cvs_owner_name,priority:2;not null" json:"fullName"`
	JobTitle string `gorm:"not null" json:"jobTitle"`
	Email    string `gorm:"not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedIn,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location,omitempty"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

type Language struct {
	Name  string        `json:"name"`
	Level LanguageLevel `json:"level"`
}

type Certification struct {
	Name          string `json:"name"`
	Issuer        string `json:"issuer"`
	Date          Date   `json:"date"`
	ExpiryDate    Date   `json:"expiryDate"`
	CredentialID  string `json:"credentialId,omitempty"`
	CredentialURL string `json:"credentialUrl,omitempty"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
	StartDate    Date     `json:"startDate"`
	EndDate      Date     `json:"endDate"`
}

// CV is a document built from a template. A user may hold at most one CV per
// full name.
type CV struct {
	ID        ID        `gorm:"primaryKey;size:24" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID   ID         `gorm:"size:24;not null;index;uniqueIndex:idx_cvs_owner_name,priority:1" json:"userId"`
	Owner    *OwnerCard `gorm:"-" json:"owner,omitempty"`
	Template CVTemplate `gorm:"size:16;not null" json:"template"`

	PersonalInfo        PersonalInfo `gorm:"embedded;embeddedPrefix:personal_" json:"personalInfo"`
	ProfessionalSummary string       `gorm:"type:text;not null" json:"professionalSummary"`

	Experiences    datatypes.JSONSlice[Experience]    `json:"experiences"`
	Education      datatypes.JSONSlice[Education]     `json:"education"`
	Skills         datatypes.JSONSlice[Skill]         `json:"skills"`
	Languages      datatypes.JSONSlice[Language]      `json:"languages"`
	Certifications datatypes.JSONSlice[Certification] `json:"certifications"`
	Projects       datatypes.JSONSlice[Project]       `json:"projects"`

	ShareableLink string `gorm:"uniqueIndex;not null" json:"shareableLink"`
	IsPublic      bool   `gorm:"not null" json:"isPublic"`

	PaymentStatus         PaymentStatus `gorm:"size:16;not null;index" json:"paymentStatus"`
	TelebirrTransactionID *string       `json:"telebirrTransactionId"`
	LastUpdated           time.Time     `json:"lastUpdated"`
}

func (c *CV) OwnerID() ID { return c.UserID }

// OwnerCard is the public contact card of a CV's owner.
type OwnerCard struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}
