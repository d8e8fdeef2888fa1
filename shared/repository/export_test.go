package repository

import "salon/shared/dto"

func (repo *Repository[T]) Columns() []string { return repo.columns }

func (repo *Repository[T]) SelectList(only ...string) string { return repo.selectList(only...) }

func (repo *Repository[T]) InsertQuery() string { return repo.insertQuery() }

func (repo *Repository[T]) OrderBy(params dto.QueryParams) string { return repo.orderBy(params) }

func Paginate(params dto.QueryParams, args map[string]any) string { return paginate(params, args) }

var (
	ErrRequiredFilter = errRequiredFilter
	ErrUnknownColumn  = errUnknownColumn
)
