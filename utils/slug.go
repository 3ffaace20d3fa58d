package utils

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrimDash = regexp.MustCompile(`^-+|-+$`)
)

// Slugify turns free text into a URL-safe slug: lowercase, runs of
// non-alphanumerics collapsed to single dashes, no leading/trailing dash.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = slugInvalid.ReplaceAllString(slug, "-")
	slug = slugTrimDash.ReplaceAllString(slug, "")
	if slug == "" {
		slug = "item"
	}
	return slug
}

// UniqueSlug probes the given table for slug collisions and appends a
// numeric suffix until the slug is free: my-title, my-title-2, my-title-3...
func UniqueSlug(db *gorm.DB, table, title string) (string, error) {
	base := Slugify(title)
	slug := base

	for i := 2; ; i++ {
		var count int64
		if err := db.Table(table).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
