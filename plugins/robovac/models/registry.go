package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedModel is returned when no declaration exists for a model code.
var ErrUnsupportedModel = errors.New("unsupported model")

// PrefixLength is the number of leading characters of a device model string
// that identify its declaration.
const PrefixLength = 5

var declarations = map[string]*Declaration{
	t2080.Code: &t2080,
	t2118.Code: &t2118,
	t2193.Code: &t2193,
	t2250.Code: &t2250,
	t2267.Code: &t2267,
	t2276.Code: &t2276,
	t2277.Code: &t2277,
	t2278.Code: &t2278,
	t2320.Code: &t2320,
}

// Lookup returns the declaration for a model code.
func Lookup(modelCode string) (*Declaration, error) {
	decl, ok := declarations[modelCode]
	if !ok {
		return nil, fmt.Errorf("model %q: %w", modelCode, ErrUnsupportedModel)
	}
	return decl, nil
}

// Prefix extracts the model code from a full device model string (e.g. "T2080A" -> "T2080").
func Prefix(model string) string {
	model = strings.TrimSpace(model)
	if len(model) <= PrefixLength {
		return model
	}
	return model[:PrefixLength]
}

// Codes lists registered model codes, sorted.
func Codes() []string {
	out := make([]string, 0, len(declarations))
	for code := range declarations {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
