package common

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// Encode writes v to w in one of the `--format` outputs.
type Encode func(v interface{}, w io.Writer) error

var DefaultEncodes = map[string]Encode{
	"json":       jsonEncoder(""),
	"prettyjson": jsonEncoder("  "),
	"yaml": func(v interface{}, w io.Writer) error {
		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(v)
	},
}

// jsonEncoder does not escape html, so poll descriptions are printed as
// they were submitted.
func jsonEncoder(indent string) Encode {
	return func(v interface{}, w io.Writer) error {
		e := json.NewEncoder(w)
		e.SetEscapeHTML(false)
		e.SetIndent("", indent)
		return e.Encode(v)
	}
}

// FormatNames lists the names of encodes for the flag usages, like
// "{json, prettyjson, yaml}".
func FormatNames(encodes map[string]Encode, extra ...string) string {
	names := append([]string{}, extra...)
	for name := range encodes {
		names = append(names, name)
	}
	sort.Strings(names)

	return "{" + strings.Join(names, ", ") + "}"
}
