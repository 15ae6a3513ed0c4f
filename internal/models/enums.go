package models

type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return true
	}
	return false
}

type CVTemplate string

const (
	TemplateProfessional CVTemplate = "professional"
	TemplateExecutive    CVTemplate = "executive"
	TemplateCreative     CVTemplate = "creative"
)

func (t CVTemplate) Valid() bool {
	switch t {
	case TemplateProfessional, TemplateExecutive, TemplateCreative:
		return true
	}
	return false
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

func (l SkillLevel) Valid() bool {
	switch l {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

type LanguageLevel string

const (
	LanguageBasic          LanguageLevel = "basic"
	LanguageConversational LanguageLevel = "conversational"
	LanguageFluent         LanguageLevel = "fluent"
	LanguageNative         LanguageLevel = "native"
)

func (l LanguageLevel) Valid() bool {
	switch l {
	case LanguageBasic, LanguageConversational, LanguageFluent, LanguageNative:
		return true
	}
	return false
}

// PaymentStatus is the state of the simulated Telebirr payment attached to a
// job or CV. Failed is reserved for a real gateway; nothing transitions into it.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)
