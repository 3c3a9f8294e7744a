package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// Person represents somebody using one of the tracked credit cards.
type Person struct {
	DefaultModel
	Name string
	Slug string `gorm:"uniqueIndex"` // URL-safe, globally unique derivation of the name
}

var ErrPersonSlugNotUnique = errors.New("the slug for this person is already in use")

// BeforeSave trims whitespace from all strings
func (p *Person) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	return nil
}

// BeforeCreate derives the slug for the person.
//
// The slug stays stable when the person is renamed later so that
// bookmarked URLs keep working.
//
// The check-then-insert below is not atomic. Two concurrent creations
// deriving the same slug can both pass the check; the unique index on
// the slug column then fails the second insert instead of silently
// storing a duplicate.
func (p *Person) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	if p.Slug != "" {
		return nil
	}

	base := Slugify(p.Name)
	if base == "" {
		base = "person"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		err := tx.Model(&Person{}).Where("slug = ?", slug).Count(&count).Error
		if err != nil {
			return err
		}

		if count == 0 {
			break
		}

		slug = fmt.Sprintf("%s-%d", base, i)
	}

	p.Slug = slug
	return nil
}

// Slugify derives a URL-safe slug from a name. Diacritics are folded to
// their base characters, everything else that is not alphanumeric
// becomes a hyphen.
func Slugify(name string) string {
	// Decompose the string and drop all combining marks, turning
	// e.g. "José" into "Jose"
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			hyphen = false
			continue
		}

		// Runs of non-alphanumeric characters collapse into a single hyphen
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
