// Package validation wraps validator/v10 with the field rules shared by the
// admin forms and the venue API: wire field names, code and phone formats,
// and readable messages.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	CodePattern  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{1,49}$`)
	PhonePattern = regexp.MustCompile(`^\+?[0-9][0-9 -]{8,18}[0-9]$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("code", func(fl validator.FieldLevel) bool {
		return CodePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return PhonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	return v
}

// Errors maps a wire field name to what is wrong with it.
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Error joins the messages sorted by field name.
func (e Errors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e[name])
	}
	return strings.Join(parts, "; ")
}

// Struct runs tag validation on v and returns the failures, never nil.
func Struct(v any) Errors {
	out := Errors{}
	err := validate.Struct(v)
	if err == nil {
		return out
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out.Add("form", err.Error())
		return out
	}
	for _, fe := range fieldErrs {
		out.Add(fieldName(fe), describe(fe))
	}
	return out
}

// fieldName drops the struct name and embedded struct names from the
// namespace, keeping the wire names, e.g. "ClusterForm.SiteForm.coordinates.lat"
// becomes "coordinates.lat".
func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		if i == 0 || p == "" || unicode.IsUpper(rune(p[0])) {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return fe.Field()
	}
	return strings.Join(out, ".")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "code":
		return "must be 2-50 letters, digits, '-' or '_'"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid id"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "needs at least " + fe.Param() + " entries"
		}
		return "must be at least " + fe.Param() + " characters"
	case "max":
		if fe.Kind() == reflect.Slice {
			return "allows at most " + fe.Param() + " entries"
		}
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
