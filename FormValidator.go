package main

import (
	"errors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"reflect"
	"strconv"
	"strings"
)

const (
	notBlankTag = "notblank"
	gradeTag    = "grade"
)

const (
	fillAllFieldsMessage = "Please fill in all fields"
	gradeRangeMessage    = "Grade must be between 0 and 100"
	invalidOptionMessage = "Please choose a valid option"
)

const (
	minGradeValue = 0
	maxGradeValue = 100
)

// ValidationError blocks a form submission before any request is sent.
type ValidationError struct {
	Message string
	Details []string
}

func (err *ValidationError) Error() string {
	return err.Message + ": " + strings.Join(err.Details, "; ")
}

type FormValidatorInterface interface {
	Validate(form any) error
}

type FormValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewFormValidator() *FormValidator {
	formValidator := &FormValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	english := en.New()
	formValidator.translator, _ = ut.New(english, english).GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(formValidator.validate, formValidator.translator)

	formValidator.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = formValidator.validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = formValidator.validate.RegisterValidation(gradeTag, gradeValidation)

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, gradeTag} {
		_ = formValidator.validate.RegisterTranslation(tag, formValidator.translator, registerFn, translateCustomValidationErrs)
	}

	return formValidator
}

func (formValidator *FormValidator) Validate(form any) error {
	err := formValidator.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	ValidationErrorCount.Inc()
	validationError := &ValidationError{Message: invalidOptionMessage}
	priority := 0
	for _, fieldError := range fieldErrors {
		validationError.Details = append(
			validationError.Details, fieldError.Field()+": "+fieldError.Translate(formValidator.translator),
		)

		switch {
		case fieldError.Tag() == notBlankTag && priority < 2:
			validationError.Message, priority = fillAllFieldsMessage, 2
		case fieldError.Tag() == gradeTag && priority < 1:
			validationError.Message, priority = gradeRangeMessage, 1
		}
	}

	return validationError
}

func translateCustomValidationErrs(_ ut.Translator, fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case notBlankTag:
		return "this field cannot be blank"
	case gradeTag:
		return "must be a number between 0 and 100"
	default:
		return ""
	}
}

func notBlankValidation(field validator.FieldLevel) bool {
	if field.Field().Kind() != reflect.String {
		return false
	}

	return strings.TrimSpace(field.Field().String()) != ""
}

func gradeValidation(field validator.FieldLevel) bool {
	value, err := parseGradeValue(field.Field().String())

	return err == nil && value >= minGradeValue && value <= maxGradeValue
}

func parseGradeValue(input string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(input), 64)
}
