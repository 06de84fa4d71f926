// Package query turns a category filter request into a concrete list plan:
// which text predicates apply, the ordering and the page window. It is pure
// so the list semantics can be pinned down without a database.
package query

import "strings"

const (
	DefaultPageSize = 2
	MaxPageSize     = 9
)

// sortColumns whitelists the sortable fields and maps them to their columns.
var sortColumns = map[string]string{
	"active":      "active",
	"createdDate": "created_date",
	"name":        "name",
	"description": "description",
}

// Options carries the raw, already type-coerced filter inputs.
type Options struct {
	Search      string
	Name        string
	Description string
	Active      *bool
	Sort        string
	Page        *int
	PageSize    *int
}

// Plan is the resolved list query. Search, when non-empty, matches either
// name or description and supersedes the per-field terms.
type Plan struct {
	Search      string
	Name        string
	Description string
	Active      *bool
	OrderColumn string
	OrderDesc   bool
	Offset      int
	Limit       int
}

// Build resolves options into a plan. Text terms are trimmed, and a term
// that is empty after trimming is no filter at all. An unrecognized sort
// value falls back to the default created_date DESC ordering. The offset is
// only non-zero when a page was explicitly supplied; page 0 and page 1 both
// mean the first page.
func Build(opts Options) Plan {
	plan := Plan{
		Search:      strings.TrimSpace(opts.Search),
		Name:        strings.TrimSpace(opts.Name),
		Description: strings.TrimSpace(opts.Description),
		Active:      opts.Active,
	}

	if plan.Search != "" {
		plan.Name = ""
		plan.Description = ""
	}

	plan.OrderColumn, plan.OrderDesc = parseSort(opts.Sort)

	plan.Limit = DefaultPageSize
	if opts.PageSize != nil {
		plan.Limit = *opts.PageSize
	}
	if opts.Page != nil {
		page := *opts.Page
		if page < 1 {
			page = 1
		}
		plan.Offset = (page - 1) * plan.Limit
	}

	return plan
}

func parseSort(sort string) (column string, desc bool) {
	sort = strings.TrimSpace(sort)
	if strings.HasPrefix(sort, "-") {
		if column, ok := sortColumns[sort[1:]]; ok {
			return column, true
		}
	} else if column, ok := sortColumns[sort]; ok {
		return column, false
	}
	return "created_date", true
}

// FoldYo lowercases s and folds ё into е, the normal form under which all
// text matching happens: е and ё are interchangeable at every position.
func FoldYo(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 'ё' {
			return 'е'
		}
		return r
	}, strings.ToLower(s))
}

// HasPrefixFold reports whether value starts with term, case-insensitively
// and treating е and ё as equal. It is the in-Go equivalent of the SQL
// predicate the repository issues, kept explicit instead of being built out
// of regexp strings.
func HasPrefixFold(value, term string) bool {
	return strings.HasPrefix(FoldYo(value), FoldYo(term))
}

// LikePattern renders term as an anchored-prefix LIKE pattern over folded
// text. LIKE metacharacters in the term are escaped with a backslash, so the
// repository must issue the pattern with ESCAPE '\'.
func LikePattern(term string) string {
	folded := FoldYo(term)
	var b strings.Builder
	b.Grow(len(folded) + 1)
	for _, r := range folded {
		if r == '\\' || r == '%' || r == '_' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}
