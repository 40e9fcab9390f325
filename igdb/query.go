package igdb

import (
	"strconv"
	"strings"
)

// SortOrder is the direction of a sort clause
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// MaxLimit is the largest page size the convenience methods will request
const MaxLimit = 50

// Query builds a query-language payload. Clauses render in a fixed order
// so the same builder calls always produce the same string (and cache key).
type Query struct {
	fields []string
	search *string
	where  []string
	sort   string
	limit  int
	offset int
}

// NewQuery returns an empty query that selects all fields
func NewQuery() *Query {
	return &Query{}
}

// Fields appends fields to select; nested fields use dot notation (cover.image_id)
func (q *Query) Fields(fields ...string) *Query {
	q.fields = append(q.fields, fields...)
	return q
}

// Search sets a full-text search term; the term is escaped
func (q *Query) Search(term string) *Query {
	q.search = &term
	return q
}

// Where adds filter conditions, joined with &
func (q *Query) Where(conds ...string) *Query {
	for _, c := range conds {
		if c = strings.TrimSpace(c); c != "" {
			q.where = append(q.where, c)
		}
	}
	return q
}

// Sort sets the sort clause
func (q *Query) Sort(field string, order SortOrder) *Query {
	q.sort = field + " " + string(order)
	return q
}

// Limit sets the page size; values <= 0 omit the clause
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Offset sets the page offset; values <= 0 omit the clause
func (q *Query) Offset(n int) *Query {
	q.offset = n
	return q
}

// String renders the payload, e.g.
//
//	search "zelda"; fields id,name; where category = 0; sort rating desc; limit 10;
func (q *Query) String() string {
	var clauses []string
	if q.search != nil {
		clauses = append(clauses, `search "`+EscapeString(*q.search)+`"`)
	}

	fields := "*"
	if len(q.fields) > 0 {
		fields = strings.Join(q.fields, ",")
	}
	clauses = append(clauses, "fields "+fields)

	if len(q.where) > 0 {
		clauses = append(clauses, "where "+strings.Join(q.where, " & "))
	}
	if q.sort != "" {
		clauses = append(clauses, "sort "+q.sort)
	}
	if q.limit > 0 {
		clauses = append(clauses, "limit "+strconv.Itoa(q.limit))
	}
	if q.offset > 0 {
		clauses = append(clauses, "offset "+strconv.Itoa(q.offset))
	}

	return strings.Join(clauses, "; ") + ";"
}

// EscapeString escapes a value for use inside a quoted query-language literal
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// clampLimit applies a default to non-positive limits and caps at MaxLimit
func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
