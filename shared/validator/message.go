package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gte":      "{field} must be at least {param}",
	"lte":      "{field} must be at most {param}",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"hhmm":     "{field} must be a time of day in HH:MM format",
	"date":     "{field} must be a date in YYYY-MM-DD format",
	"uuid":     "{field} must be a valid UUID",
	"nefield":  "{field} must differ from {param}",
}

// Length rules read differently for strings and collections.
var lengthMessages = map[string][2]string{
	"min": {"{field} must be at least {param} characters", "{field} must contain at least {param} items"},
	"max": {"{field} must be at most {param} characters", "{field} must contain at most {param} items"},
}

// message renders the first failed rule; name stands in for the field of a bare variable.
func message(err error, name string) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}

	fe := fieldErrs[0]

	field := fe.Field()
	if field == "" {
		field = name
	}

	// Elements of a dive keep their index, e.g. "service_ids[0]".
	if ns := fe.Namespace(); strings.Contains(ns, "[") {
		if _, inner, found := strings.Cut(ns, "."); found {
			field = inner
		}
	}

	tmpl, ok := messages[fe.Tag()]
	if pair, isLength := lengthMessages[fe.Tag()]; isLength {
		tmpl, ok = pair[0], true
		if kind := fe.Kind(); kind == reflect.Slice || kind == reflect.Map || kind == reflect.Array {
			tmpl = pair[1]
		}
	}

	if !ok {
		return field + " failed " + fe.Tag() + " validation"
	}

	return strings.NewReplacer("{field}", field, "{param}", fe.Param()).Replace(tmpl)
}
