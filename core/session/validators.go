package session

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/elimuhub/elimu/core"
)

var (
	viewTag  = "view"
	viewText = "invalid view"
)

// InitValidators registers session-specific validators and translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(viewTag, viewValidation)
	core.RegisterCustomTranslation(validate, translator, viewTag, viewText)
}

func viewValidation(fl validator.FieldLevel) bool {
	return NavigationState(fl.Field().String()).IsValid()
}
