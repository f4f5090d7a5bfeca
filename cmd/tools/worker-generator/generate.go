package main

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"dogmatch-workers/pkg/registry"
)

// WorkerData is the template input for one generated worker.
type WorkerData struct {
	Name        string
	PackageName string
	TaskType    string
	Description string
	Timeout     string
	Required    []string
	Inputs      []Field
	Outputs     []Field
	ErrorCodes  []string
}

// Field is one schema property rendered as a struct field.
type Field struct {
	Name        string
	JSONName    string
	GoType      string
	SchemaType  string
	Description string
	Enum        []string
}

var funcs = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
	"quoteAll": func(ss []string) string {
		q := make([]string, len(ss))
		for i, s := range ss {
			q[i] = fmt.Sprintf("%q", s)
		}
		return strings.Join(q, ", ")
	},
	"timeoutExpr": timeoutExpr,
}

var files = []struct {
	name string
	tmpl string
}{
	{"config.go", configTemplate},
	{"models.go", modelsTemplate},
	{"validation.go", validationTemplate},
	{"handler.go", handlerTemplate},
	{"handler_test.go", testTemplate},
}

// Generate writes the worker package for a into root/<category>/<id> and
// returns the written paths. Existing files are kept unless overwrite is set.
func Generate(a registry.Activity, root string, overwrite bool) ([]string, error) {
	data := newWorkerData(a)
	dir := filepath.Join(root, a.Category, a.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil && !overwrite {
			return written, fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		src, err := render(f.name, f.tmpl, data)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func render(name, tmpl string, data WorkerData) ([]byte, error) {
	t, err := template.New(name).Funcs(funcs).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated %s is not valid Go: %w", name, err)
	}
	return src, nil
}

func newWorkerData(a registry.Activity) WorkerData {
	return WorkerData{
		Name:        a.DisplayName,
		PackageName: packageName(a.ID),
		TaskType:    a.TaskType,
		Description: a.Description,
		Timeout:     a.Timeout,
		Required:    schemaRequired(a.InputSchema),
		Inputs:      schemaFields(a.InputSchema),
		Outputs:     schemaFields(a.OutputSchema),
		ErrorCodes:  a.ErrorCodes,
	}
}

func packageName(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

func schemaRequired(schema map[string]interface{}) []string {
	raw, _ := schema["required"].([]interface{})
	required := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			required = append(required, s)
		}
	}
	return required
}

// schemaFields returns the schema's properties sorted by name.
func schemaFields(schema map[string]interface{}) []Field {
	props, _ := schema["properties"].(map[string]interface{})
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		details, _ := props[name].(map[string]interface{})
		schemaType, _ := details["type"].(string)
		desc, _ := details["description"].(string)
		f := Field{
			Name:        exportedName(name),
			JSONName:    name,
			GoType:      goType(schemaType),
			SchemaType:  schemaType,
			Description: desc,
		}
		if enum, ok := details["enum"].([]interface{}); ok {
			for _, e := range enum {
				if s, ok := e.(string); ok {
					f.Enum = append(f.Enum, s)
				}
			}
		}
		fields = append(fields, f)
	}
	return fields
}

func goType(schemaType string) string {
	switch schemaType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

// exportedName turns camelCase or kebab-case into an exported identifier,
// keeping the usual initialisms upper case.
func exportedName(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	out := b.String()
	for _, ini := range []string{"Id", "Url", "Sms"} {
		if strings.HasSuffix(out, ini) {
			out = strings.TrimSuffix(out, ini) + strings.ToUpper(ini)
		}
	}
	return out
}

// timeoutExpr renders a registry timeout as a Go duration expression.
func timeoutExpr(s string) string {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		d = 10 * time.Second
	}
	switch {
	case d%time.Minute == 0:
		return fmt.Sprintf("%d * time.Minute", d/time.Minute)
	case d%time.Second == 0:
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	default:
		return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
	}
}
