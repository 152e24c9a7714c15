package api

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var shapeValidator = validator.New(validator.WithRequiredStructEnabled())

// checkShape validates a decoded response against the struct tags declared on
// the domain types. The backend's JSON is loosely typed; a mismatch here is
// surfaced as a ValidationError instead of trusting the cast. Slices are
// validated element-wise.
func checkShape(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := checkShape(rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		if err := shapeValidator.Struct(rv.Interface()); err != nil {
			return NewValidationError(fmt.Sprintf("unexpected response shape: %v", err), 0)
		}
		return nil
	default:
		return nil
	}
}
