package services

import (
	"regexp"
	"strings"
)

// ResourceKind names the two payable resources. It prefixes shareable links
// and keys scheduled payments.
type ResourceKind string

const (
	ResourceJob ResourceKind = "job"
	ResourceCV  ResourceKind = "cv"
)

const linkTokenLength = 8

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)

// LinkGenerator builds shareable links of the form <kind>-<slug>-<token>.
// Tokens are random only; uniqueness is enforced by the store's unique index
// on shareable_link, so a collision fails the insert instead of overwriting.
type LinkGenerator struct {
	token func(n int) string
}

func NewLinkGenerator() *LinkGenerator {
	return &LinkGenerator{token: randomBase36}
}

func (g *LinkGenerator) Assign(kind ResourceKind, titleOrName string) string {
	return string(kind) + "-" + Slugify(titleOrName) + "-" + g.token(linkTokenLength)
}

// Slugify lowercases s and replaces each run of whitespace, Unicode spaces
// included, with one hyphen.
func Slugify(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(s), "-")
}
