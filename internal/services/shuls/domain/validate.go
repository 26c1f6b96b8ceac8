package domain

import (
	"regexp"
	"sync"

	"shulzmanim/internal/platform/net/http/bind"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// displayVariants are display codes that are not BCP 47 tags
var displayVariants = map[string]bool{
	"a":                  true,
	"s":                  true,
	"sh":                 true,
	"ah":                 true,
	"ashkenazi_romanian": true,
}

var internalName = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidLanguage accepts a BCP 47 tag or one of the display variants
func ValidLanguage(s string) bool {
	if displayVariants[s] {
		return true
	}
	_, err := language.Parse(s)
	return err == nil
}

var once sync.Once

// RegisterValidations installs the display_lang and internal_name tags
func RegisterValidations() {
	once.Do(func() {
		bind.RegisterValidation("display_lang", "{0} must be a language tag", func(fl validator.FieldLevel) bool {
			return ValidLanguage(fl.Field().String())
		})
		bind.RegisterValidation("internal_name", "{0} must be lowercase letters, digits and underscores", func(fl validator.FieldLevel) bool {
			return internalName.MatchString(fl.Field().String())
		})
	})
}
