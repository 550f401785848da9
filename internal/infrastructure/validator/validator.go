package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// AppValidator implements the usecasecontract.IValidator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the blog rules registered.
func NewValidator() usecasecontract.IValidator {
	v := validator.New()
	register(v)
	return &AppValidator{validate: v}
}

// ValidateStruct runs the `validate` tags of s.
func (av *AppValidator) ValidateStruct(s interface{}) error {
	return av.validate.Struct(s)
}

// RegisterCustomValidators registers the blog rules with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

func register(v *validator.Validate) {
	// report json names so messages match the wire format
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("uniqueimageindex", uniqueImageIndex)
}

// uniqueImageIndex checks that no two images of a post share a display index.
func uniqueImageIndex(fl validator.FieldLevel) bool {
	images, ok := fl.Field().Interface().([]entity.BlogImage)
	if !ok {
		return false
	}
	seen := make(map[int]struct{}, len(images))
	for _, img := range images {
		if _, dup := seen[img.Index]; dup {
			return false
		}
		seen[img.Index] = struct{}{}
	}
	return true
}

// Messages turns a validation error into one readable message per field.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s should not be empty", field)
	case "url":
		return fmt.Sprintf("%s must be a URL address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uniqueimageindex":
		return fmt.Sprintf("%s must not contain duplicate index values", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}
