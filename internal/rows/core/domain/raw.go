package domain

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// RawText renders a posted value the way it is persisted: scalars through
// their string form, maps and slices as JSON. ok is false for nil and for
// values that cannot be encoded.
func RawText(v any) (s string, ok bool) {
	if v == nil {
		return "", false
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s, true
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(raw), true
}
