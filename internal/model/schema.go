package model

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldKind classifies a schema field for validation and form rendering.
type FieldKind string

const (
	FieldText FieldKind = "text"
	FieldDate FieldKind = "date"
	FieldEnum FieldKind = "enum"
)

// System columns present on every resource table. They are owned by the
// service layer and never writable through the API.
const (
	ColumnID        = "id"
	ColumnCreatedAt = "created_at"
)

// TimeLayout is the stored created_at format. The fraction is zero-padded
// so TEXT ordering matches chronological ordering.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Row is one stored record keyed by column name. Values travel as strings,
// matching the TEXT-only storage model.
type Row map[string]string

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Field describes one writable column of a resource.
type Field struct {
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	Kind       FieldKind `json:"kind"`
	Required   bool      `json:"required"`
	Unique     bool      `json:"unique"`
	Searchable bool      `json:"searchable"`
	Options    []string  `json:"options,omitempty"`
	Default    string    `json:"default,omitempty"`
}

// Schema is the declarative description of a resource. It drives table
// creation, validation, search, ordering and the admin API for that
// resource; adding a resource means adding a schema, not code.
type Schema struct {
	Name          string   `json:"name"`
	Singular      string   `json:"singular"`
	Table         string   `json:"table"`
	Fields        []Field  `json:"fields"`
	LabelTemplate string   `json:"label_template"`
	OrderBy       []string `json:"order_by"`
}

var labelPlaceholder = regexp.MustCompile(`\{(\w+)\}`)

// Field returns the writable field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns lists every stored column in select order: id, the writable
// fields, then created_at.
func (s *Schema) Columns() []string {
	cols := make([]string, 0, len(s.Fields)+2)
	cols = append(cols, ColumnID)
	for _, f := range s.Fields {
		cols = append(cols, f.Name)
	}
	return append(cols, ColumnCreatedAt)
}

// WritableColumns lists the columns settable through create/update.
func (s *Schema) WritableColumns() []string {
	cols := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// SearchableColumns lists the columns matched by the list filter.
func (s *Schema) SearchableColumns() []string {
	var cols []string
	for _, f := range s.Fields {
		if f.Searchable {
			cols = append(cols, f.Name)
		}
	}
	return cols
}

// RequiredFields lists the fields that must be non-blank at creation.
func (s *Schema) RequiredFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Label renders the human-readable row label used to pick a row in edit and
// delete flows, e.g. "Jane Doe (0712345678)".
func (s *Schema) Label(row Row) string {
	return labelPlaceholder.ReplaceAllStringFunc(s.LabelTemplate, func(m string) string {
		return row[m[1:len(m)-1]]
	})
}

// Validate sanity-checks the schema itself. It runs once at startup over
// the whole catalog so a malformed schema fails the process, not a request.
func (s *Schema) Validate() error {
	if s.Name == "" || s.Table == "" || s.Singular == "" {
		return fmt.Errorf("schema %q: name, singular and table are required", s.Name)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema %q: no fields", s.Name)
	}

	// "label" is reserved for the rendered row label in API responses.
	seen := map[string]bool{ColumnID: true, ColumnCreatedAt: true, "label": true}
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema %q: field with empty name", s.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema %q: duplicate column %q", s.Name, f.Name)
		}
		seen[f.Name] = true

		switch f.Kind {
		case FieldText, FieldDate:
			if len(f.Options) > 0 {
				return fmt.Errorf("schema %q: field %q: options on non-enum field", s.Name, f.Name)
			}
		case FieldEnum:
			if len(f.Options) == 0 {
				return fmt.Errorf("schema %q: field %q: enum field without options", s.Name, f.Name)
			}
		default:
			return fmt.Errorf("schema %q: field %q: unknown kind %q", s.Name, f.Name, f.Kind)
		}

		if f.Default != "" && f.Kind == FieldEnum && !contains(f.Options, f.Default) {
			return fmt.Errorf("schema %q: field %q: default %q not among options", s.Name, f.Name, f.Default)
		}
	}

	for _, m := range labelPlaceholder.FindAllStringSubmatch(s.LabelTemplate, -1) {
		if !seen[m[1]] {
			return fmt.Errorf("schema %q: label template references unknown column %q", s.Name, m[1])
		}
	}
	if strings.TrimSpace(s.LabelTemplate) == "" {
		return fmt.Errorf("schema %q: empty label template", s.Name)
	}

	for _, col := range s.OrderBy {
		if !seen[col] {
			return fmt.Errorf("schema %q: order by unknown column %q", s.Name, col)
		}
	}
	if len(s.OrderBy) == 0 {
		return fmt.Errorf("schema %q: no ordering", s.Name)
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
