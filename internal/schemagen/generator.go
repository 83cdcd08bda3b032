package schemagen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/zengine/zengine/internal/core/schema"
)

// Options configures one generation run.
type Options struct {
	Input   string // descriptor file
	Output  string // generated Go file
	Stamp   string // stamp file for incremental builds, optional
	Package string // Go package name of the output
}

const fileTemplate = `// Code generated by schemagen from {{ .Source }}. DO NOT EDIT.

package {{ .Package }}

import (
	"github.com/zengine/zengine/internal/core/schema"
)

// {{ .Type }}TypeName is the registered type name of {{ .Type }}.
const {{ .Type }}TypeName = "{{ .Type }}"

// {{ .Type }}SchemaVersion is the wire version of {{ .Type }}.
const {{ .Type }}SchemaVersion = "{{ .Version }}"

// {{ .Type }}Schema builds the wire descriptor for {{ .Type }}.
func {{ .Type }}Schema() *schema.TypeSchema {
	return schema.MustTypeSchema({{ .Type }}TypeName, {{ .Type }}SchemaVersion,
{{- range .Fields }}
		{{ . }},
{{- end }}
	){{ if .Doc }}.WithDocumentation({{ printf "%q" .Doc }}){{ end }}
}
`

var schemaTemplate = template.Must(template.New("schema").Parse(fileTemplate))

// Generate runs one incremental generation pass. It reports whether the
// output was (re)written; false means the stamp was newer than the input and
// nothing was produced.
func Generate(opts Options) (bool, error) {
	if opts.Input == "" || opts.Output == "" || opts.Package == "" {
		return false, fmt.Errorf("schemagen: input, output and package are required")
	}

	upToDate, err := isUpToDate(opts)
	if err != nil {
		return false, err
	}
	if upToDate {
		return false, nil
	}

	d, err := LoadDescriptorFile(opts.Input)
	if err != nil {
		return false, err
	}

	src, err := Render(d, opts.Package, filepath.Base(opts.Input))
	if err != nil {
		return false, err
	}

	if err = os.WriteFile(opts.Output, src, 0o644); err != nil {
		return false, fmt.Errorf("write output: %w", err)
	}
	if opts.Stamp != "" {
		stamp := fmt.Sprintf("generated %s at %s\n",
			filepath.Base(opts.Output), time.Now().Format(time.RFC3339))
		if err = os.WriteFile(opts.Stamp, []byte(stamp), 0o644); err != nil {
			return false, fmt.Errorf("write stamp: %w", err)
		}
	}
	return true, nil
}

// Render produces the formatted Go source for a descriptor.
func Render(d *Descriptor, pkg, source string) ([]byte, error) {
	fields := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		lit, err := fieldLiteral(f)
		if err != nil {
			return nil, err
		}
		fields = append(fields, lit)
	}

	var buf bytes.Buffer
	err := schemaTemplate.Execute(&buf, struct {
		Source  string
		Package string
		Type    string
		Version string
		Doc     string
		Fields  []string
	}{
		Source:  source,
		Package: pkg,
		Type:    d.Type,
		Version: d.Version,
		Doc:     d.Doc,
		Fields:  fields,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

// fieldLiteral builds the schema.FieldSchema composite literal for one field.
func fieldLiteral(f FieldDescriptor) (string, error) {
	kind, err := schema.ParseKind(f.Kind)
	if err != nil {
		return "", err
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("Name: %q", f.Name))
	parts = append(parts, fmt.Sprintf("Kind: schema.Kind%s", kindSuffix(kind)))
	if f.Required {
		parts = append(parts, "Required: true")
	}
	if f.Default != nil {
		lit, err := defaultLiteral(kind, f.Default)
		if err != nil {
			return "", err
		}
		parts = append(parts, "Default: "+lit)
	}
	if f.Min != nil {
		parts = append(parts, fmt.Sprintf("Min: schema.Bound(%s)", floatLiteral(*f.Min)))
	}
	if f.Max != nil {
		parts = append(parts, fmt.Sprintf("Max: schema.Bound(%s)", floatLiteral(*f.Max)))
	}
	return "schema.FieldSchema{" + strings.Join(parts, ", ") + "}", nil
}

// defaultLiteral renders a default in its JSON-normalized Go form: numbers as
// float64 so deserialized payloads and schema defaults compare equal.
func defaultLiteral(kind schema.FieldKind, v any) (string, error) {
	switch kind {
	case schema.KindBool:
		return fmt.Sprintf("%t", v.(bool)), nil
	case schema.KindString:
		return strconv.Quote(v.(string)), nil
	default:
		n, err := toFloat(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("float64(%s)", floatLiteral(n)), nil
	}
}

func floatLiteral(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func kindSuffix(kind schema.FieldKind) string {
	switch kind {
	case schema.KindBool:
		return "Bool"
	case schema.KindInt:
		return "Int"
	case schema.KindInt64:
		return "Int64"
	case schema.KindUint64:
		return "Uint64"
	case schema.KindFloat32:
		return "Float32"
	case schema.KindFloat64:
		return "Float64"
	case schema.KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// isUpToDate reports whether the stamp is newer than the descriptor and the
// output still exists.
func isUpToDate(opts Options) (bool, error) {
	if opts.Stamp == "" {
		return false, nil
	}
	stampInfo, err := os.Stat(opts.Stamp)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat stamp: %w", err)
	}
	inputInfo, err := os.Stat(opts.Input)
	if err != nil {
		return false, fmt.Errorf("stat input: %w", err)
	}
	if _, err = os.Stat(opts.Output); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat output: %w", err)
	}
	return !stampInfo.ModTime().Before(inputInfo.ModTime()), nil
}
