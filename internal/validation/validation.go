// Package validation checks request payloads against their struct tags and
// reports violations as field-level registry errors.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/JaimeStill/document-registry/pkg/faults"
)

var (
	rsinRegex     = regexp.MustCompile(`^[0-9]{9}$`)
	languageRegex = regexp.MustCompile(`^[a-z]{3}$`)
)

var (
	defaultValidator = validator.New()
	defaultEn        = en.New()
	uni              = ut.New(defaultEn, defaultEn)
	trans, _         = uni.GetTranslator(defaultEn.Locale())
)

// codes maps validator tags onto the machine codes of the error body.
var codes = map[string]string{
	"required": "required",
	"max":      "max_length",
	"min":      "min_length",
	"oneof":    "invalid_choice",
	"url":      "bad-url",
	"uuid":     "invalid",
	"rsin":     "invalid",
	"language": "invalid",
	"gtefield": "invalid",
}

// Struct validates s and returns a faults.List naming every offending
// field by its JSON path, or nil.
func Struct(s any) error {
	err := defaultValidator.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate: %w", err)
	}

	list := make(faults.List, 0, len(verrs))
	for _, e := range verrs {
		list = append(list, faults.Validation(fieldPath(e), code(e.Tag()), e.Translate(trans)))
	}
	return list
}

// Var validates a single value against tag. The error names field.
func Var(field string, v any, tag string) error {
	err := defaultValidator.Var(v, tag)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	e := verrs[0]
	return faults.Validation(field, code(e.Tag()), field+" "+strings.TrimSpace(e.Translate(trans)))
}

func code(tag string) string {
	if c, ok := codes[tag]; ok {
		return c
	}
	return "invalid"
}

// fieldPath drops the struct name from the namespace, leaving the JSON path.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func registerTranslation(tag, msg string) error {
	return defaultValidator.RegisterTranslation(
		tag,
		trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		},
	)
}

func init() {
	defaultValidator.RegisterTagNameFunc(jsonName)

	if err := entranslations.RegisterDefaultTranslations(defaultValidator, trans); err != nil {
		panic(fmt.Sprintf("validation register default translations: %v", err))
	}

	custom := []struct {
		tag string
		fn  validator.Func
		msg string
	}{
		{
			tag: "rsin",
			fn:  func(fl validator.FieldLevel) bool { return rsinRegex.MatchString(fl.Field().String()) },
			msg: "{0} must be a 9 digit RSIN",
		},
		{
			tag: "language",
			fn:  func(fl validator.FieldLevel) bool { return languageRegex.MatchString(fl.Field().String()) },
			msg: "{0} must be an ISO 639-2/B language code",
		},
	}

	for _, c := range custom {
		if err := defaultValidator.RegisterValidation(c.tag, c.fn); err != nil {
			panic(fmt.Sprintf("validation %s: %v", c.tag, err))
		}
		if err := registerTranslation(c.tag, c.msg); err != nil {
			panic(fmt.Sprintf("validation %s: %v", c.tag, err))
		}
	}
}
