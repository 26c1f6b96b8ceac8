package domain

import (
	"sync"

	"shulzmanim/internal/platform/net/http/bind"
	sdom "shulzmanim/internal/services/shuls/domain"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/go-playground/validator/v10"
)

var once sync.Once

// RegisterValidations installs the base_time tag, which accepts "" or a
// stored zmanim time or timestamp field
func RegisterValidations() {
	sdom.RegisterValidations()
	once.Do(func() {
		bind.RegisterValidation("base_time", "{0} must name a zmanim time field", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || zdom.IsBaseField(s)
		})
	})
}
