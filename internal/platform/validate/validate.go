// Package validate provides the shared struct validator used for catalog records and settings
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "riskscan/internal/platform/errors"
	"riskscan/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Svc pairs the validator with its english translator
type Svc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	once sync.Once
	svc  *Svc

	eventIDRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// messages replace the stock english text for these tags. {0} is the field, {1} the tag param
var messages = map[string]string{
	"min":      "{0} must be at least {1}",
	"max":      "{0} must be at most {1}",
	"event_id": "{0} must be lowercase letters, digits or underscores, starting with a letter",
}

// Get returns the process-wide validator, building it on first use
func Get() *Svc {
	once.Do(func() { svc = build() })
	return svc
}

func build() *Svc {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	_ = v.RegisterValidation("event_id", func(fl validator.FieldLevel) bool {
		return IsEventID(fl.Field().String())
	})
	for tag, text := range messages {
		registerMessage(v, trans, tag, text)
	}
	return &Svc{Validator: v, Translator: trans}
}

// jsonName reports fields by their json name, or the Go name when there is none
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Struct validates s and returns the first failure as a validation error carrying its field
func Struct(s any) error {
	err := Get().Validator.Struct(s)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.Validationf("validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.Validationf("%s", msg), field)
}

// Var validates a single value against a tag expression, e.g. Var(id, "event_id")
func Var(v any, tag string) error {
	if err := Get().Validator.Var(v, tag); err != nil {
		_, msg := FieldAndMessage(err)
		return perr.Validationf("%s", msg)
	}
	return nil
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}

// IsEventID reports whether s is a well-formed event type identifier
func IsEventID(s string) bool { return eventIDRe.MatchString(s) }
