// Package jsoncfg loads and saves JSON configuration files.
package jsoncfg

import (
	"encoding/json"
	"os"
	"time"
)

// Open decodes the JSON file at path into v.
// Unknown fields are rejected.
func Open(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d := json.NewDecoder(f)
	d.DisallowUnknownFields()
	return d.Decode(v)
}

// Save encodes v as indented JSON and writes it to path.
func Save(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	e := json.NewEncoder(f)
	e.SetIndent("", "    ")
	e.SetEscapeHTML(false)
	if err = e.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Duration is [time.Duration] but implements [encoding.TextMarshaler] and [encoding.TextUnmarshaler].
type Duration time.Duration

// Value returns the duration as [time.Duration].
func (d Duration) Value() time.Duration {
	return time.Duration(d)
}

// MarshalText implements [encoding.TextMarshaler.MarshalText].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler.UnmarshalText].
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}
