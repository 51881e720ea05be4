package portal

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/elimuhub/elimu/core"
)

var (
	tabTag  = "tab"
	tabText = "invalid tab"

	scopeTag  = "scope"
	scopeText = "invalid scope"
)

// InitValidators registers portal-specific validators and translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(tabTag, tabValidation)
	core.RegisterCustomTranslation(validate, translator, tabTag, tabText)

	_ = validate.RegisterValidation(scopeTag, scopeValidation)
	core.RegisterCustomTranslation(validate, translator, scopeTag, scopeText)
}

func tabValidation(fl validator.FieldLevel) bool {
	return ModuleID(fl.Field().String()).IsValid()
}

func scopeValidation(fl validator.FieldLevel) bool {
	s := Scope(fl.Field().String())
	return s == ScopeMe || s == ScopeStudents
}
