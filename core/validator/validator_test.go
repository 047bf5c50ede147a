package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	URL     string `mapstructure:"url" validate:"required,url"`
	Email   string `mapstructure:"email" validate:"omitempty,email"`
	Timeout int    `mapstructure:"timeout" validate:"gte=0"`
	Log     struct {
		Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	} `mapstructure:"log"`
}

func validConfig() testConfig {
	c := testConfig{URL: "https://example.com/api/1.0", Timeout: 10}
	c.Log.Level = "info"
	return c
}

func TestValidatorCreation(t *testing.T) {
	assert.NotNil(t, Validate)
	assert.NotNil(t, New())
	v := New(WithTagName("validate"), WithTranslator("zh", "en"))
	require.NotNil(t, v)
	assert.NotNil(t, v.GetValidator())
}

func TestBasicValidation(t *testing.T) {
	c := validConfig()
	assert.NoError(t, Validate.Struct(&c))
	assert.NoError(t, Validate.StructCtx(context.Background(), c))
	assert.ErrorIs(t, Validate.Struct(nil), ErrNilTarget)
}

func TestValidationErrors(t *testing.T) {
	c := validConfig()
	c.URL = ""
	c.Email = "not-an-email"
	c.Timeout = -1
	c.Log.Level = "verbose"

	err := Validate.Struct(&c)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	fields := FieldErrors(err)
	require.Len(t, fields, 4)

	got := make(map[string]string)
	for _, fe := range fields {
		got[fe.Field()] = fe.Tag()
		assert.NotEmpty(t, fe.Message())
	}
	assert.Equal(t, map[string]string{
		"url":     "required",
		"email":   "email",
		"timeout": "gte",
		"level":   "oneof",
	}, got)

	assert.True(t, HasFieldError(err, "timeout"))
	assert.False(t, HasFieldError(err, "user_agent"))
	assert.Contains(t, err.Error(), "url")
}

func TestFieldNameWithoutTag(t *testing.T) {
	type plain struct {
		Name string `validate:"required"`
	}
	err := New(WithFieldNameTag("mapstructure")).Struct(plain{})
	require.Error(t, err)
	assert.True(t, HasFieldError(err, "Name"))
}

func TestTranslate(t *testing.T) {
	c := validConfig()
	c.URL = ""

	err := New(WithFieldNameTag("mapstructure")).Struct(&c)
	fields := FieldErrors(err)
	require.Len(t, fields, 1)

	assert.Equal(t, "url is a required field", fields[0].Message())
	assert.Equal(t, "url为必填字段", fields[0].Translate("zh"))
	assert.Equal(t, fields[0].Message(), fields[0].Translate("fr"))
	assert.Equal(t, "testConfig.url", fields[0].Namespace())
}

func TestVar(t *testing.T) {
	assert.NoError(t, Validate.Var("https://example.com/api/1.0", "required,url"))

	err := Validate.Var("not a url", "required,url")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Nil(t, FieldErrors(nil))
}
