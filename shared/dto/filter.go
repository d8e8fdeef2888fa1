package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq    = "eq"
	FilterOperatorNotEq = "not_eq"
	FilterOperatorIn    = "in"
	FilterIsNull        = "is_null"
	FilterIsNotNull     = "is_not_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Filter is a single named-parameter predicate. Table qualifies the column
// when the query joins; ArgName disambiguates repeated fields.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq not_eq in is_null is_not_null"`
	Table    string
}

var comparisons = map[string]string{
	FilterOperatorEq:    "=",
	FilterOperatorNotEq: "!=",
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) arg() string {
	if f.ArgName != "" {
		return f.ArgName
	}

	return f.Field
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	if op, ok := comparisons[f.Operator]; ok {
		args[f.arg()] = f.Value

		return fmt.Sprintf("%s %s :%s", f.column(), op, f.arg()), args
	}

	switch f.Operator {
	case FilterOperatorIn:
		return f.in(args)
	case FilterIsNull:
		return f.column() + " IS NULL", args
	case FilterIsNotNull:
		return f.column() + " IS NOT NULL", args
	}

	return "", args
}

// in binds one parameter per element; an empty list matches nothing.
func (f *Filter) in(args map[string]any) (string, map[string]any) {
	val := reflect.ValueOf(f.Value)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		args[f.arg()] = f.Value

		return fmt.Sprintf("%s = :%s", f.column(), f.arg()), args
	}

	if val.Len() == 0 {
		return "FALSE", args
	}

	placeholders := make([]string, 0, val.Len())

	for idx := range val.Len() {
		name := fmt.Sprintf("%s_%d", f.arg(), idx)
		args[name] = val.Index(idx).Interface()
		placeholders = append(placeholders, ":"+name)
	}

	return fmt.Sprintf("%s IN (%s)", f.column(), strings.Join(placeholders, ", ")), args
}

// FilterGroup joins Filters and nested FilterGroups with Operator, AND by default.
type FilterGroup struct {
	Filters  []any
	Operator string
}

type whereClauser interface {
	GetWhereClause() (string, map[string]any)
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var part whereClauser

		switch v := item.(type) {
		case Filter:
			part = &v
		case FilterGroup:
			part = &v
		default:
			continue
		}

		clause, clauseArgs := part.GetWhereClause()
		if clause == "" {
			continue
		}

		clauses = append(clauses, clause)
		maps.Copy(args, clauseArgs)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")", args
}
