package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"salon/shared/clock"
	"salon/shared/failure"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	// Messages name fields the way clients send them.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	formats := map[string]func(string) error{
		"hhmm": func(s string) error { _, err := clock.Parse(s); return err },
		"date": func(s string) error { _, err := clock.ParseDate(s, time.UTC); return err },
	}

	for tag, parse := range formats {
		err := v.RegisterValidation(tag, func(fl val.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)

			return ok && parse(s) == nil
		})
		if err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// Validate decodes a JSON body into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err, "")) //nolint:wrapcheck
	}

	return nil
}

// ValidateParam checks a single request parameter against tag.
func ValidateParam(name string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return failure.BadRequestFromString(message(err, name)) //nolint:wrapcheck
	}

	return nil
}
