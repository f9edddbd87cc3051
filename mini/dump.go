package mini

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DumpFormat selects how WriteDump renders an environment.
type DumpFormat string

const (
	DumpText DumpFormat = "text"
	DumpYAML DumpFormat = "yaml"
	DumpNone DumpFormat = "none"
)

func ParseDumpFormat(raw string) (DumpFormat, error) {
	switch f := DumpFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case DumpText, DumpYAML, DumpNone:
		return f, nil
	case "":
		return DumpText, nil
	default:
		return "", fmt.Errorf("unknown dump format %q (want text, yaml or none)", raw)
	}
}

// WriteDump renders the three namespaces of env. The text form is one
// tab-indented `{name: value, ...}` line per namespace, integers first, then
// strings, then booleans.
func WriteDump(w io.Writer, env *Env, format DumpFormat) error {
	snap := env.Snapshot()
	switch format {
	case DumpNone:
		return nil
	case DumpYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode dump: %w", err)
		}
		return enc.Close()
	case DumpText, "":
		lines := []string{
			formatMapLine(snap.Ints, func(v int32) string { return strconv.FormatInt(int64(v), 10) }),
			formatMapLine(snap.Strings, strconv.Quote),
			formatMapLine(snap.Bools, strconv.FormatBool),
		}
		for _, line := range lines {
			if _, err := fmt.Fprintf(w, "\t%s\n", line); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown dump format %q", format)
	}
}

func formatMapLine[V any](m map[string]V, render func(V) string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range slices.Sorted(maps.Keys(m)) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(name))
		b.WriteString(": ")
		b.WriteString(render(m[name]))
	}
	b.WriteByte('}')
	return b.String()
}
