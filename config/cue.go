package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// CUE implements koanf.Parser for CUE documents. Every value must be concrete
// once defaults are applied, so a file may constrain a field as long as it
// also resolves it:
//
//	log: level: *"info" | "debug" | "warn" | "error"
type CUE struct{}

// CUEParser returns a CUE parser for koanf.
func CUEParser() *CUE {
	return &CUE{}
}

// Unmarshal evaluates b and returns the resulting struct as a map.
func (p *CUE) Unmarshal(b []byte) (map[string]interface{}, error) {
	v := cuecontext.New().CompileBytes(b)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("invalid CUE config: %w", err)
	}

	var out map[string]interface{}
	if err := v.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode CUE: %w", err)
	}
	return out, nil
}

// Marshal renders o as CUE source.
func (p *CUE) Marshal(o map[string]interface{}) ([]byte, error) {
	v := cuecontext.New().Encode(o)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to encode CUE: %w", err)
	}

	b, err := format.Node(v.Syntax())
	if err != nil {
		return nil, fmt.Errorf("failed to format CUE: %w", err)
	}
	return b, nil
}
