package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
)

// Minimal internal validator driven by `validate:"..."` struct tags.
// Supports:
// - required
// - username (letters, digits, underscore, 3-32 chars)
// - pwdmin (min length 6)
// - eqfield=OtherField

var reUsername = regexp.MustCompile(`^[A-Za-z0-9_]{3,32}$`)

// ValidateStruct inspects struct tags and returns the first error found.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.New("ValidateStruct expects a struct or pointer to struct")
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		fv := v.Field(i)
		var sval string
		if fv.IsValid() && fv.Kind() == reflect.String {
			sval = fv.String()
		}
		for _, p := range strings.Split(tag, ",") {
			p = strings.TrimSpace(p)
			switch {
			case p == "required":
				if sval == "" {
					return errors.New(field.Name + " is required")
				}
			case p == "username":
				if sval != "" && !reUsername.MatchString(sval) {
					return errors.New(field.Name + " must be 3-32 letters, digits or underscores")
				}
			case p == "pwdmin":
				if len(sval) < 6 {
					return errors.New(field.Name + " must be at least 6 characters")
				}
			case strings.HasPrefix(p, "eqfield="):
				other := strings.TrimPrefix(p, "eqfield=")
				of := v.FieldByName(other)
				if of.IsValid() && of.Kind() == reflect.String && sval != of.String() {
					return errors.New(field.Name + " must equal " + other)
				}
			}
		}
	}
	return nil
}
