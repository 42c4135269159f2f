package domain

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-faster/jx"
)

// ErrNotObject is returned by DecodeRecord when the payload is not a JSON object.
var ErrNotObject = errors.New("expected JSON object")

// ErrTrailingData is returned by DecodeRecord when anything but whitespace
// follows the object.
var ErrTrailingData = errors.New("unexpected data after JSON object")

// Record is the raw registry response keyed by field name. Values are kept as
// undecoded JSON so nested objects and lists pass through untouched.
type Record map[string]jx.Raw

// DecodeRecord parses a JSON object into a Record. The whole payload must be
// that single object, optionally surrounded by whitespace.
func DecodeRecord(b []byte) (Record, error) {
	b = bytes.TrimSpace(b)

	d := jx.DecodeBytes(b)
	if d.Next() != jx.Object {
		return nil, ErrNotObject
	}
	obj, err := d.Raw()
	if err != nil {
		return nil, fmt.Errorf("could not decode record: %w", err)
	}
	if len(obj) != len(b) {
		return nil, ErrTrailingData
	}

	rec := Record{}
	if err := jx.DecodeBytes(obj).ObjBytes(func(d *jx.Decoder, key []byte) error {
		raw, err := d.Raw()
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		rec[string(key)] = append(jx.Raw(nil), raw...)

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not decode record: %w", err)
	}

	return rec, nil
}

// Str returns the string value of key, or "" when the field is absent or is
// not a JSON string.
func (r Record) Str(key string) string {
	raw, ok := r[key]
	if !ok || len(raw) == 0 {
		return ""
	}
	d := jx.DecodeBytes(raw)
	if d.Next() != jx.String {
		return ""
	}
	s, err := d.Str()
	if err != nil {
		return ""
	}

	return s
}

// Text returns the value of key as display text: strings unquoted, any other
// JSON value verbatim (null, 42, true). An absent key yields "".
func (r Record) Text(key string) string {
	raw, ok := r[key]
	if !ok || len(raw) == 0 {
		return ""
	}
	if jx.DecodeBytes(raw).Next() == jx.String {
		return r.Str(key)
	}

	return string(raw)
}
