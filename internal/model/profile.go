package model

import (
	"regexp"
	"strings"
)

// UserProfile holds the single local user. Slug is derived from Name and is
// recomputed whenever the name changes; RegisteredAt is set on first save and
// kept across renames.
type UserProfile struct {
	Slug         string `bson:"slug" json:"slug"`
	Name         string `bson:"name" json:"name"`
	RegisteredAt string `bson:"registeredAt" json:"registeredAt"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
}

var (
	slugStripRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// Slugify lowercases and trims a display name, strips everything outside
// [a-z0-9 -], turns whitespace runs into hyphens and collapses hyphen runs.
func Slugify(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	return slugCollapseRe.ReplaceAllString(s, "-")
}
