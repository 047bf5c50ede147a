package api

import (
	"net/url"

	"github.com/spf13/cast"

	"github.com/kochabx/forkapi/errors"
)

// Reserved parameter names
const (
	ParamMethod = "method"
	ParamFormat = "format"
	ParamEmail  = "email"
	ParamAPIKey = "api_key"

	formatJSON = "json"
)

// Params are the flat parameters of a call. Values must be scalars: strings,
// numbers, booleans (sent as 1 or 0) or fmt.Stringer. Nil values are skipped.
type Params map[string]any

// values encodes p for the wire
func (p Params) values() (url.Values, error) {
	v := make(url.Values, len(p)+4)
	for key, val := range p {
		if val == nil {
			continue
		}
		s, err := paramString(val)
		if err != nil {
			return nil, errors.InvalidArgument("parameter %q: %v", key, err).WithCause(err)
		}
		v.Set(key, s)
	}
	return v, nil
}

func paramString(val any) (string, error) {
	if b, ok := val.(bool); ok {
		if b {
			return "1", nil
		}
		return "0", nil
	}
	return cast.ToStringE(val)
}
