package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

const statusOK = 200

var (
	errNotObject        = stderrors.New("response is not a JSON object")
	errMissingMeta      = stderrors.New("missing meta")
	errMissingStatus    = stderrors.New("missing meta.status_code")
	errMissingData      = stderrors.New("missing data")
	errStatusNotNumeric = stderrors.New("meta.status_code is not numeric")
)

var jsonNull = []byte("null")

// envelope is a decoded {"meta": {...}, "data": ...} response
type envelope struct {
	statusCode float64
	status     string
	data       json.RawMessage
}

func (e envelope) ok() bool {
	return e.statusCode == statusOK
}

// code truncates the status code to an int
func (e envelope) code() int {
	return int(e.statusCode)
}

// parseEnvelope checks presence of meta.status_code and data. A null data is
// present; a null status_code is not.
func parseEnvelope(body []byte) (envelope, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return envelope{}, fmt.Errorf("%w: %v", errNotObject, err)
	}
	if top == nil {
		return envelope{}, errNotObject
	}

	rawMeta, ok := top["meta"]
	if !ok {
		return envelope{}, errMissingMeta
	}
	var meta map[string]json.RawMessage
	if err := json.Unmarshal(rawMeta, &meta); err != nil {
		return envelope{}, fmt.Errorf("%w: %v", errMissingMeta, err)
	}

	rawCode, ok := meta["status_code"]
	if !ok || bytes.Equal(bytes.TrimSpace(rawCode), jsonNull) {
		return envelope{}, errMissingStatus
	}
	code, err := looseNumber(rawCode)
	if err != nil {
		return envelope{}, err
	}

	data, ok := top["data"]
	if !ok {
		return envelope{}, errMissingData
	}

	return envelope{
		statusCode: code,
		status:     statusText(meta["status"]),
		data:       data,
	}, nil
}

// looseNumber accepts a JSON number or a string holding one
func looseNumber(raw json.RawMessage) (float64, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%w: %v", errStatusNotNumeric, err)
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, fmt.Errorf("%w: empty string", errStatusNotNumeric)
		}
		var err error
		if f, err = cast.ToFloat64E(t); err != nil {
			return 0, fmt.Errorf("%w: %q", errStatusNotNumeric, t)
		}
	default:
		return 0, fmt.Errorf("%w: %s", errStatusNotNumeric, raw)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s", errStatusNotNumeric, raw)
	}
	return f, nil
}

// statusText renders meta.status; non string values keep their JSON text
func statusText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return string(raw)
}
