package session

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports the required draft fields that were missing on
// commit. The model is never mutated when it is returned.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("session: draft validation failed, missing: %s", strings.Join(e.Missing, ", "))
}

// newValidator builds the draft validator. PlaneStringID is tag-checked;
// the special-weapon rule spans three fields, so it is a struct-level check.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		d := sl.Current().Interface().(Draft)
		if d.SpWeaponID1 == "" && d.SpWeaponID2 == "" && d.SpWeaponID3 == "" {
			sl.ReportError(d.SpWeaponID1, "SpWeaponID1", "SpWeaponID1", "required_without_all", "")
		}
	}, Draft{})
	return v
}

// checkDraft validates a draft and converts validator failures into a
// *ValidationError listing the missing fields.
func checkDraft(v *validator.Validate, d Draft) error {
	err := v.Struct(d)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return &ValidationError{Missing: missing}
}
