package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTable means the destination table is not allow-listed.
	ErrUnknownTable = errors.New("unknown destination table")
	// ErrUnknownColumn means an inferred column is not permitted for the
	// destination table.
	ErrUnknownColumn = errors.New("unknown column for destination table")
)

// Registry is the allow-list mapping each permitted destination table to
// its permitted column set. Both the table name and every inferred column
// must resolve here before any SQL text is constructed.
type Registry struct {
	tables map[string]map[string]bool
}

// NewRegistry returns the registry of importable tables.
func NewRegistry() *Registry {
	return &Registry{tables: map[string]map[string]bool{
		"users": columnSet(
			"email", "username", "password", "role",
			"f_name", "l_name", "mobile_number", "birthday", "status",
		),
		"stud_profile": columnSet(
			"student_number", "email", "first_name", "middle_name",
			"last_name", "course", "section", "birthday", "civil_status",
			"citizenship", "religion", "home_address", "zip_code",
			"mobile_number",
		),
		"company_settings": columnSet(
			"company_name", "header_color", "footer_text", "footer_color",
			"active_nav_index_color", "company_name_color",
			"footer_text_color", "logo_url",
		),
	}}
}

// Validate checks the destination table and every inferred column against
// the allow-list.
func (r *Registry) Validate(table string, columns []string) error {
	allowed, ok := r.tables[table]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	for _, col := range columns {
		if !allowed[col] {
			return fmt.Errorf("%w: %q.%q", ErrUnknownColumn, table, col)
		}
	}
	return nil
}

// Tables returns the allow-listed table names.
func (r *Registry) Tables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	return names
}

func columnSet(cols ...string) map[string]bool {
	set := make(map[string]bool, len(cols))
	for _, c := range cols {
		set[c] = true
	}
	return set
}
