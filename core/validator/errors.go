package validator

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// validationErrorsImpl 校验错误实现
type validationErrorsImpl struct {
	fieldErrors []FieldError
	message     string
	cause       validator.ValidationErrors
}

func (ve *validationErrorsImpl) Error() string {
	return ve.message
}

func (ve *validationErrorsImpl) Errors() []FieldError {
	return ve.fieldErrors
}

// Unwrap 返回底层的 validator.ValidationErrors
func (ve *validationErrorsImpl) Unwrap() error {
	return ve.cause
}

// fieldErrorImpl 字段错误实现
type fieldErrorImpl struct {
	fieldError  validator.FieldError
	message     string
	translators map[string]ut.Translator
}

func (fe *fieldErrorImpl) Field() string { return fe.fieldError.Field() }

func (fe *fieldErrorImpl) Namespace() string { return fe.fieldError.Namespace() }

func (fe *fieldErrorImpl) Tag() string { return fe.fieldError.Tag() }

func (fe *fieldErrorImpl) Value() any { return fe.fieldError.Value() }

func (fe *fieldErrorImpl) Message() string { return fe.message }

// Translate 翻译错误消息，语言未启用时返回默认消息
func (fe *fieldErrorImpl) Translate(lang string) string {
	if trans, exists := fe.translators[lang]; exists {
		return fe.fieldError.Translate(trans)
	}
	return fe.message
}

// IsValidationError 检查是否为校验错误
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// FieldErrors 返回校验错误中的字段错误，非校验错误返回 nil
func FieldErrors(err error) []FieldError {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	return ve.Errors()
}

// HasFieldError 检查是否存在指定字段的错误
func HasFieldError(err error, field string) bool {
	for _, fe := range FieldErrors(err) {
		if fe.Field() == field {
			return true
		}
	}
	return false
}
