package tag

import (
	"reflect"
)

const tagName = "default"

// ApplyDefaults sets default values for zero-valued struct fields based on
// their `default:"..."` tag. The target must be a non-nil pointer to a struct.
//
// Nested structs are processed recursively. Pointers to structs are only
// followed when already set, so an optional section stays nil until the
// caller provides it.
//
// Example:
//
//	type Config struct {
//	    URL     string `default:"https://example.com/api/1.0"`
//	    Timeout int    `default:"10"`
//	}
//	cfg := &Config{}
//	err := ApplyDefaults(cfg)
func ApplyDefaults(target any) error {
	valueOf := reflect.ValueOf(target)
	if valueOf.Kind() != reflect.Pointer {
		return ErrTargetMustBePointer
	}
	if valueOf.IsNil() {
		return ErrTargetIsNil
	}

	elem := valueOf.Elem()
	if elem.Kind() != reflect.Struct {
		return ErrUnsupportedType
	}

	return applyStruct(elem, "", 0)
}

const maxDepth = 32

func applyStruct(value reflect.Value, path string, depth int) error {
	if depth >= maxDepth {
		return ErrMaxDepthExceeded
	}

	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldValue := value.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		fieldPath := field.Name
		if path != "" {
			fieldPath = path + "." + field.Name
		}

		if err := applyField(fieldValue, field.Tag.Get(tagName), fieldPath, depth); err != nil {
			return err
		}
	}
	return nil
}

func applyField(value reflect.Value, tagValue, path string, depth int) error {
	switch value.Kind() {
	case reflect.Struct:
		return applyStruct(value, path, depth+1)
	case reflect.Pointer:
		if !value.IsNil() && value.Elem().Kind() == reflect.Struct {
			return applyStruct(value.Elem(), path, depth+1)
		}
		return nil
	}

	if tagValue == "" || !value.IsZero() {
		return nil
	}
	if err := parse(value, tagValue); err != nil {
		return &FieldError{Path: path, Value: tagValue, Err: err}
	}
	return nil
}
