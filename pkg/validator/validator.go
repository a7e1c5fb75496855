package validator

import (
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/jwalitptl/siscec-api/internal/model"
	apperrors "github.com/jwalitptl/siscec-api/pkg/errors"
)

// Validator checks request structs tagged with `validate` and reports every
// failing field by its JSON name.
type Validator interface {
	Validate(obj interface{}) error
}

type validator struct {
	v        *playground.Validate
	messages map[string]string
}

var defaultMessages = map[string]string{
	"required": "es requerido",
	"numeric":  "debe ser numérico",
	"number":   "debe ser un número entero",
}

func New() Validator {
	v := playground.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// FlexString validates as its raw text; an absent field is empty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if f, ok := field.Interface().(model.FlexString); ok {
			return strings.TrimSpace(f.Raw)
		}
		return nil
	}, model.FlexString{})

	return &validator{v: v, messages: defaultMessages}
}

// Validate returns nil or an AppError of kind validation.
func (v *validator) Validate(obj interface{}) error {
	err := v.v.Struct(obj)
	if err == nil {
		return nil
	}

	verrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return apperrors.Internal(err)
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := v.messages[fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: msg})
	}
	return apperrors.Validation(fields...)
}
