package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pribylovaa/go-blog-service/internal/service"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В ошибках поле называется так же, как в JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("notblank", notBlank)

	return v
}

// notBlank — строка содержит хотя бы один непробельный символ.
func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return true
	}

	return strings.TrimSpace(f.String()) != ""
}

// validateStruct переводит первую ошибку validator-а в *service.FieldError.
func (h *Handlers) validateStruct(value any) error {
	err := h.validate.Struct(value)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &service.FieldError{Field: "request", Reason: "is invalid"}
	}

	fe := verrs[0]

	return &service.FieldError{Field: fe.Field(), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	unit := "characters"
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = "items"
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "is malformed"
	case "max":
		return fmt.Sprintf("must be at most %s %s", fe.Param(), unit)
	case "min":
		return fmt.Sprintf("must be at least %s %s", fe.Param(), unit)
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "hexadecimal", "len":
		return "is malformed"
	default:
		return "is invalid"
	}
}
