package validator

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// ErrNilTarget 校验目标为空
var ErrNilTarget = errors.New("validation target cannot be nil")

// validatorImpl 校验器实现；创建后只读，可并发使用
type validatorImpl struct {
	validator    *validator.Validate
	uni          *ut.UniversalTranslator
	translators  map[string]ut.Translator
	enabledLangs []string
	defaultLang  string
	fieldNameTag string
}

// Validate 全局校验器实例，错误字段名取自 mapstructure 标签，与配置文件中的键一致
var Validate = New(WithFieldNameTag("mapstructure"))

// New 创建新的校验器实例
func New(opts ...ValidationOption) Validator {
	v := &validatorImpl{
		validator:    validator.New(validator.WithRequiredStructEnabled()),
		translators:  make(map[string]ut.Translator),
		enabledLangs: []string{"en", "zh"},
		defaultLang:  "en",
	}

	enLocale := en.New()
	v.uni = ut.New(enLocale, enLocale, zh.New())

	for _, opt := range opts {
		opt(v)
	}

	if v.fieldNameTag != "" {
		v.validator.RegisterTagNameFunc(tagNameFunc(v.fieldNameTag))
	}
	v.initTranslators()

	return v
}

func tagNameFunc(tagName string) validator.TagNameFunc {
	return func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get(tagName), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		default:
			return name
		}
	}
}

// initTranslators 注册启用语言的默认翻译
func (v *validatorImpl) initTranslators() {
	for _, lang := range v.enabledLangs {
		trans, found := v.uni.GetTranslator(lang)
		if !found {
			continue
		}
		switch lang {
		case "en":
			_ = en_translations.RegisterDefaultTranslations(v.validator, trans)
		case "zh":
			_ = zh_translations.RegisterDefaultTranslations(v.validator, trans)
		default:
			continue
		}
		v.translators[lang] = trans
	}
}

// Struct 校验结构体
func (v *validatorImpl) Struct(s any) error {
	return v.StructCtx(context.Background(), s)
}

// StructCtx 带上下文校验结构体
func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return ErrNilTarget
	}
	return v.translateError(v.validator.StructCtx(ctx, s))
}

// Var 校验单个变量，如 Var(url, "required,url")
func (v *validatorImpl) Var(field any, tag string) error {
	return v.translateError(v.validator.Var(field, tag))
}

// GetValidator 获取底层的validator实例
func (v *validatorImpl) GetValidator() *validator.Validate {
	return v.validator
}

// translateError 将 validator.ValidationErrors 转换为带默认语言消息的 ValidationErrors
func (v *validatorImpl) translateError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	trans, ok := v.translators[v.defaultLang]
	fieldErrors := make([]FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msg := fe.Error()
		if ok {
			msg = fe.Translate(trans)
		}
		fieldErrors = append(fieldErrors, &fieldErrorImpl{
			fieldError:  fe,
			message:     msg,
			translators: v.translators,
		})
		messages = append(messages, msg)
	}

	return &validationErrorsImpl{
		fieldErrors: fieldErrors,
		message:     strings.Join(messages, "; "),
		cause:       validationErrors,
	}
}
