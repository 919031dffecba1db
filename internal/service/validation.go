package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaxCommentLength - максимальная длина комментария в символах
const MaxCommentLength = 1000

var tagNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Ошибка регистрации возможна только при пустом имени правила
	_ = v.RegisterValidation("tagname", func(fl validator.FieldLevel) bool {
		return tagNamePattern.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct проверяет структуру по тегам validate и переводит ошибки в ValidationError
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	result := &ValidationError{}
	for _, fe := range validationErrors {
		result.Fields = append(result.Fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: describe(fe),
		})
	}
	return result
}

func describe(fe validator.FieldError) string {
	isList := fe.Kind() == reflect.Slice
	switch fe.Tag() {
	case "min":
		if isList {
			return fmt.Sprintf("должно быть не меньше %s элементов", fe.Param())
		}
		return fmt.Sprintf("длина должна быть не меньше %s символов", fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("должно быть не больше %s элементов", fe.Param())
		}
		return fmt.Sprintf("длина должна быть не больше %s символов", fe.Param())
	case "tagname":
		return "допустимы только латинские буквы, цифры, _ и -"
	default:
		return "недопустимое значение"
	}
}

// validateCommentText проверяет текст комментария
func validateCommentText(text string) error {
	switch {
	case strings.TrimSpace(text) == "":
		return &ValidationError{Fields: []FieldError{{Field: "text", Message: "комментарий не может быть пустым"}}}
	case utf8.RuneCountInString(text) > MaxCommentLength:
		return &ValidationError{Fields: []FieldError{{
			Field:   "text",
			Message: fmt.Sprintf("длина должна быть не больше %d символов", MaxCommentLength),
		}}}
	}
	return nil
}
