package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

func validFormat(f string) bool {
	switch f {
	case formatJSON, formatYAML, formatText:
		return true
	default:
		return false
	}
}

// render writes v in the requested format. text renders the human view and
// falls back to JSON when nil.
func render(w io.Writer, format string, v any, text func(w io.Writer)) error {
	switch format {
	case formatYAML:
		return writeYAML(w, v)
	case formatText:
		if text != nil {
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			text(tw)
			return eris.Wrap(tw.Flush(), "flush output")
		}
		fallthrough
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "encode json")
	}
}

// writeYAML encodes v with its JSON field names. Result types only carry
// json tags, so v is round-tripped through JSON first.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	return eris.Wrap(enc.Close(), "encode yaml")
}

func line(w io.Writer, cols ...any) {
	for i, c := range cols {
		if i > 0 {
			_, _ = fmt.Fprint(w, "\t")
		}
		_, _ = fmt.Fprint(w, c)
	}
	_, _ = fmt.Fprintln(w)
}
