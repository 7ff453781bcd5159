package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// NameSanitizer strips markup from free-text names.
type NameSanitizer struct {
	policy *bluemonday.Policy
}

// NewNameSanitizer builds a sanitizer that keeps only text content.
func NewNameSanitizer() *NameSanitizer {
	return &NameSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize removes tags and returns the plain text, with entities decoded again.
func (s *NameSanitizer) Sanitize(name string) string {
	if s == nil {
		return name
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(name)))
}
