package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports input that was rejected before any remote call was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields by their column names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate checks a draft against its struct tags. It returns a *ValidationError for
// the first failing field.
func Validate(draft any) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("error validating %T: %w", draft, err)
	}

	fe := fieldErrs[0]

	return &ValidationError{Field: fe.Field(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}

// DuplicateType returns the type in types that clashes with name within category
// (case-insensitive), ignoring the type with exceptID. It returns nil if there is none.
func DuplicateType(types []Type, name string, category Category, exceptID int64) *Type {
	for i := range types {
		t := &types[i]
		if t.ID != exceptID && t.Category == category && strings.EqualFold(t.Name, name) {
			return t
		}
	}

	return nil
}

// CheckTypeUnique returns a *ValidationError if a type named name already exists in category.
func CheckTypeUnique(types []Type, name string, category Category, exceptID int64) error {
	if DuplicateType(types, name, category, exceptID) != nil {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("a %s type with the name %q already exists", category, name),
		}
	}

	return nil
}

// CheckTypeUnused returns a *ValidationError if any item still references the type.
func CheckTypeUnused(items []Item, t Type) error {
	count := 0

	for _, item := range items {
		if item.TypeID == t.ID {
			count++
		}
	}

	if count > 0 {
		return &ValidationError{
			Message: fmt.Sprintf("cannot delete %q type because it is being used by %d item(s)", t.Name, count),
		}
	}

	return nil
}

func required(field string, f Field[string]) error {
	if f.Set && strings.TrimSpace(f.Value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}

	return nil
}

func validCategory(f Field[Category]) error {
	if f.Set && !f.Value.Valid() {
		return &ValidationError{Field: "category", Message: "must be one of: food place"}
	}

	return nil
}

// Validate checks the fields the patch sets.
func (p ItemPatch) Validate() error {
	if err := required("name", p.Name); err != nil {
		return err
	}

	if err := required("location", p.Location); err != nil {
		return err
	}

	if err := validCategory(p.Category); err != nil {
		return err
	}

	if p.Link.Set && p.Link.Value != nil && *p.Link.Value != "" {
		if err := validate.Var(*p.Link.Value, "url"); err != nil {
			return &ValidationError{Field: "link", Message: "must be a valid URL"}
		}
	}

	return nil
}

// Validate checks the fields the patch sets.
func (p TypePatch) Validate() error {
	if err := required("name", p.Name); err != nil {
		return err
	}

	return validCategory(p.Category)
}

// Validate checks the fields the patch sets.
func (p LocationPatch) Validate() error {
	if err := required("label", p.Label); err != nil {
		return err
	}

	return required("url", p.URL)
}

// IsURL reports whether s is an absolute URL.
func IsURL(s string) bool {
	return validate.Var(s, "url") == nil
}
