package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/shared/constant"
	"salon/shared/dto"
	"salon/shared/logger"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
	errUnknownColumn  = errors.New("unknown column")
)

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// preparer is satisfied by both *sqlx.DB and *sqlx.Tx.
type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository builds named queries for one table from the db tags of T,
// including the tags of embedded structs.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columnsOf(reflect.TypeFor[T]()),
	}
}

func columnsOf(typ reflect.Type) []string {
	var columns []string

	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, columnsOf(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}

func (repo *Repository[T]) span(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

// fail logs and traces err and wraps it with the action and entity.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// named prepares query on db and hands the statement to run.
func (repo *Repository[T]) named(ctx context.Context, scope otel.Scope, db preparer, query string, run func(*sqlx.NamedStmt) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	return run(stmt)
}

func (repo *Repository[T]) where(filter dto.FilterGroup) (string, map[string]any) {
	clause, args := filter.GetWhereClause()
	if clause == "" {
		return "", map[string]any{}
	}

	return " WHERE " + clause, args
}

func (repo *Repository[T]) selectList(only ...string) string {
	if len(only) == 0 {
		return strings.Join(repo.columns, ", ")
	}

	picked := slices.DeleteFunc(slices.Clone(repo.columns), func(col string) bool {
		return !slices.Contains(only, col)
	})

	return strings.Join(picked, ", ")
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.columns))
	for i, col := range repo.columns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) exec(ctx context.Context, op string, db execer, query string, arg any) error {
	ctx, scope := repo.span(ctx, op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := db.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, op, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, "insert", repo.db.Write, repo.insertQuery(), model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, tx *sqlx.Tx, model T) error {
	return repo.exec(ctx, "insert", tx, repo.insertQuery(), model)
}

// InsertBulkTx writes every model with one multi-row insert.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, "bulk insert", tx, repo.insertQuery(), models)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (exist bool, err error) {
	ctx, scope := repo.span(ctx, "Exist")
	defer scope.End()

	where, args := repo.where(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s%s)", repo.table, where)

	err = repo.named(ctx, scope, repo.db.Read, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})
	if err != nil {
		return false, repo.fail(scope, "check existence", err)
	}

	return exist, nil
}

// Get returns the first matching row, or the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (model T, err error) {
	ctx, scope := repo.span(ctx, "Get")
	defer scope.End()

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s", repo.selectList(columns...), repo.table, where)

	err = repo.named(ctx, scope, repo.db.Read, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args)
	})

	switch {
	case errors.Is(err, sql.ErrNoRows):
		var zero T

		return zero, nil
	case err != nil:
		return model, repo.fail(scope, "get", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.list(ctx, repo.db.Read, params, filter, columns...)
}

// GetAllTx reads inside tx so rows locked or written by the same transaction are visible.
func (repo *Repository[T]) GetAllTx(ctx context.Context, tx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.list(ctx, tx, params, filter, columns...)
}

func (repo *Repository[T]) list(ctx context.Context, db preparer, params dto.QueryParams, filter dto.FilterGroup, columns ...string) (models []T, err error) {
	ctx, scope := repo.span(ctx, "GetAll")
	defer scope.End()

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s%s%s", repo.selectList(columns...), repo.table, where, repo.orderBy(params), paginate(params, args))

	err = repo.named(ctx, scope, db, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})
	if err != nil {
		return nil, repo.fail(scope, "list", err)
	}

	return models, nil
}

// paginate binds limit and offset into args and returns the clause.
func paginate(params dto.QueryParams, args map[string]any) string {
	if params.Limit <= 0 {
		return ""
	}

	args["limit"] = params.Limit
	if params.Page <= 1 {
		return " LIMIT :limit"
	}

	args["offset"] = (params.Page - 1) * params.Limit

	return " LIMIT :limit OFFSET :offset"
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (count int, err error) {
	ctx, scope := repo.span(ctx, "Count")
	defer scope.End()

	where, args := repo.where(filter)
	query := fmt.Sprintf("SELECT COUNT(%s) FROM %s%s", repo.primaryColumn, repo.table, where)

	err = repo.named(ctx, scope, repo.db.Read, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})
	if err != nil {
		return 0, repo.fail(scope, "count", err)
	}

	return count, nil
}

// Update sets the given columns on every matching row. An empty filter is
// rejected so a missing condition cannot rewrite the whole table.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	assignments := make([]string, 0, len(mod))

	for _, col := range slices.Sorted(maps.Keys(mod)) {
		if !slices.Contains(repo.columns, col) {
			return fmt.Errorf("failed to update (%s): %w: %s", repo.entity, errUnknownColumn, col)
		}

		assignments = append(assignments, col+" = :"+col)
	}

	where, args := repo.where(filter)
	if where == "" {
		return fmt.Errorf("failed to update (%s): %w", repo.entity, errRequiredFilter)
	}

	maps.Copy(args, mod)

	return repo.exec(ctx, "update", repo.db.Write, fmt.Sprintf("UPDATE %s SET %s%s", repo.table, strings.Join(assignments, ", "), where), args)
}

// orderBy accepts only columns of T, so a client supplied sort key never
// reaches the query text. Ties fall back to the primary key.
func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	if params.SortBy == "" || !slices.Contains(repo.columns, params.SortBy) {
		return ""
	}

	direction := dto.SortDirAsc
	if strings.EqualFold(params.SortDir, dto.SortDirDesc) {
		direction = dto.SortDirDesc
	}

	clause := fmt.Sprintf(" ORDER BY %s %s", params.SortBy, direction)
	if params.SortBy != repo.primaryColumn {
		clause += fmt.Sprintf(", %s %s", repo.primaryColumn, direction)
	}

	return clause
}
