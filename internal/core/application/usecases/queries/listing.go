// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read straight from the tables written by the postgres adapters and
// return read models, never aggregates.
package queries

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	DefaultSort  = "-createdAt"
)

var ErrListOptionsIsNotConstructed = errors.New("ListOptions must be created via NewListOptions constructor")

// reserved query parameters are never treated as filters.
var reserved = []string{"page", "sort", "limit", "fields", "search"}

// filterKey matches "field" and "field[op]".
var filterKey = regexp.MustCompile(`^([A-Za-z]+)(?:\[(gte|gt|lte|lt)\])?$`)

// Kind tells how a filter value is parsed.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTime
	KindUUID
	KindBool
)

// Field maps a public field name to its column. A field without a column can only
// be projected.
type Field struct {
	Column string
	Kind   Kind
}

// Fields is the allow-list of a listing.
type Fields map[string]Field

// Op is a filter comparison.
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpGt  Op = ">"
	OpLte Op = "<="
	OpLt  Op = "<"
)

func parseOp(s string) Op {
	switch s {
	case "gte":
		return OpGte
	case "gt":
		return OpGt
	case "lte":
		return OpLte
	case "lt":
		return OpLt
	default:
		return OpEq
	}
}

type Filter struct {
	Field string
	Op    Op
	Value any
}

type SortKey struct {
	Field string
	Desc  bool
}

// ListOptions is a validated page request: filters, sort order, page window,
// free-text search and the projected fields.
type ListOptions struct {
	filters []Filter
	sort    []SortKey
	page    int
	limit   int
	search  string
	fields  []string
	allowed Fields

	guard guard.ConstructorGuard
}

// NewListOptions parses query parameters against the allow-list. Unknown filter,
// sort or projection fields are rejected.
//
// Example:
//
//	?rewardPrice[gte]=20&from=US&sort=-rewardPrice,createdAt&page=2&limit=10&fields=from,to
func NewListOptions(params url.Values, allowed Fields) (ListOptions, error) {
	opts := ListOptions{
		page:    DefaultPage,
		limit:   DefaultLimit,
		allowed: allowed,
		guard:   guard.NewConstructorGuard(),
	}

	var errList []error
	for key, values := range params {
		if slices.Contains(reserved, key) || len(values) == 0 {
			continue
		}
		for _, raw := range values {
			f, err := parseFilter(key, raw, allowed)
			if err != nil {
				errList = append(errList, err)
				continue
			}
			opts.filters = append(opts.filters, f)
		}
	}

	page, err := parsePositive("page", params.Get("page"), DefaultPage)
	errList = append(errList, err)
	opts.page = page

	limit, err := parsePositive("limit", params.Get("limit"), DefaultLimit)
	if err == nil && limit > MaxLimit {
		err = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	errList = append(errList, err)
	opts.limit = limit

	sortParam := params.Get("sort")
	if sortParam == "" {
		sortParam = DefaultSort
	}
	for _, part := range splitList(sortParam) {
		key := SortKey{Field: strings.TrimPrefix(part, "-"), Desc: strings.HasPrefix(part, "-")}
		if f, ok := allowed[key.Field]; !ok || f.Column == "" {
			errList = append(errList, unknownField("sort", key.Field))
			continue
		}
		opts.sort = append(opts.sort, key)
	}

	for _, name := range splitList(params.Get("fields")) {
		if _, ok := allowed[name]; !ok {
			errList = append(errList, unknownField("fields", name))
			continue
		}
		opts.fields = append(opts.fields, name)
	}

	opts.search = strings.TrimSpace(params.Get("search"))

	if err = errors.Join(errList...); err != nil {
		return ListOptions{}, err
	}

	// Map iteration order is random; keep filters deterministic.
	slices.SortFunc(opts.filters, func(a, b Filter) int {
		return strings.Compare(a.Field+string(a.Op), b.Field+string(b.Op))
	})
	return opts, nil
}

func (o ListOptions) Validate() error {
	return o.guard.Validate(ErrListOptionsIsNotConstructed)
}

func (o ListOptions) Filters() []Filter { return append([]Filter(nil), o.filters...) }
func (o ListOptions) Sort() []SortKey   { return append([]SortKey(nil), o.sort...) }
func (o ListOptions) Page() int         { return o.page }
func (o ListOptions) Limit() int        { return o.limit }
func (o ListOptions) Search() string    { return o.search }

// Fields returns the requested projection; empty means every field.
func (o ListOptions) Fields() []string { return append([]string(nil), o.fields...) }

func (o ListOptions) offset() int {
	return (o.page - 1) * o.limit
}

// where applies the filters.
func (o ListOptions) where(db *gorm.DB) *gorm.DB {
	for _, f := range o.filters {
		db = db.Where(fmt.Sprintf("%s %s ?", o.allowed[f.Field].Column, f.Op), f.Value)
	}
	return db
}

// window applies the sort order and the page bounds.
func (o ListOptions) window(db *gorm.DB) *gorm.DB {
	for _, s := range o.sort {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.allowed[s.Field].Column}, Desc: s.Desc})
	}
	return db.Offset(o.offset()).Limit(o.limit)
}

// searchPattern is an ILIKE pattern matching the search text anywhere.
func (o ListOptions) searchPattern() string {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(o.search)
	return "%" + escaped + "%"
}

func parseFilter(key, raw string, allowed Fields) (Filter, error) {
	m := filterKey.FindStringSubmatch(key)
	if m == nil {
		return Filter{}, unknownField("filter", key)
	}
	field, ok := allowed[m[1]]
	if !ok || field.Column == "" {
		return Filter{}, unknownField("filter", m[1])
	}
	op := parseOp(m[2])
	if op != OpEq && (field.Kind == KindString || field.Kind == KindUUID || field.Kind == KindBool) {
		return Filter{}, errs.NewValueIsInvalidErrorWithCause(key, errors.New("range filters need a number or a date"))
	}

	value, err := parseValue(m[1], raw, field.Kind)
	if err != nil {
		return Filter{}, err
	}
	return Filter{Field: m[1], Op: op, Value: value}, nil
}

func parseValue(name, raw string, kind Kind) (any, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case KindNumber:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not a number", raw))
		}
		return v, nil
	case KindTime:
		for _, layout := range []string{time.RFC3339, time.DateOnly} {
			if v, err := time.Parse(layout, raw); err == nil {
				return v.UTC(), nil
			}
		}
		return nil, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not a date", raw))
	case KindUUID:
		id, err := kernel.ParseID(name, raw)
		if err != nil {
			return nil, err
		}
		return id.Bytes(), nil
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not a boolean", raw))
		}
		return v, nil
	default:
		return raw, nil
	}
}

func parsePositive(name, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not a positive integer", raw))
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func unknownField(param, name string) error {
	return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%q is not an allowed field", name))
}
