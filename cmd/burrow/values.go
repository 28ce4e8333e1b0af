package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/burrow/pkg/core"
)

// parseValue converts a console argument into an attribute value.
// Quoted text is a string with underscores read as spaces; otherwise
// integers, then floats, are tried before falling back to the raw text.
func parseValue(raw string) any {
	if s, ok := unquote(raw); ok {
		return s
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if strings.Contains(raw, ".") {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	return raw
}

func unquote(raw string) (string, bool) {
	if len(raw) < 2 || !strings.HasPrefix(raw, `"`) || !strings.HasSuffix(raw, `"`) {
		return raw, false
	}
	s := raw[1 : len(raw)-1]
	s = strings.ReplaceAll(s, `\"`, `"`)
	return strings.ReplaceAll(s, "_", " "), true
}

// assign sets attribute name of e from console text. Declared string
// attributes take the text as is, so "1234" stays a string.
func assign(e core.Entity, name, raw string) error {
	if f, ok := e.Schema().Lookup(name); ok && f.Kind == core.KindString {
		s, _ := unquote(raw)
		return core.Set(e, name, s)
	}
	return core.Set(e, name, parseValue(raw))
}

// parseAssignment splits "key=value".
func parseAssignment(arg string) (string, string, error) {
	key, raw, ok := strings.Cut(arg, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid assignment %q (want key=value)", arg)
	}
	return key, raw, nil
}
