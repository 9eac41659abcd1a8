package query

import "strings"

// ProjectionMap maps view field names onto qualified table columns.
// Joined tables project their own columns under their own alias.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	joins   []string
	columns []string
	fields  map[string]string
}

// NewProjectionMap creates a projection over schema.table with the given alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project maps a column of the base table to a view field name.
func (p *ProjectionMap) Project(column, view string) *ProjectionMap {
	return p.ProjectAs(p.alias, column, view)
}

// ProjectAs maps a column of a joined table, qualified by alias, to a view field name.
func (p *ProjectionMap) ProjectAs(alias, column, view string) *ProjectionMap {
	col := alias + "." + column
	p.columns = append(p.columns, col)
	p.fields[view] = col
	return p
}

// Join appends a join clause to the FROM expression.
func (p *ProjectionMap) Join(clause string) *ProjectionMap {
	p.joins = append(p.joins, clause)
	return p
}

// Alias returns the base table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the FROM expression including joins.
func (p *ProjectionMap) Table() string {
	from := p.schema + "." + p.table + " " + p.alias
	if len(p.joins) == 0 {
		return from
	}
	return from + " " + strings.Join(p.joins, " ")
}

// Column resolves a view field to its qualified column.
// Unknown names are returned unchanged.
func (p *ProjectionMap) Column(view string) string {
	if col, ok := p.fields[view]; ok {
		return col
	}
	return view
}

// Columns returns the comma-separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns the projected columns in declaration order.
func (p *ProjectionMap) ColumnList() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}
