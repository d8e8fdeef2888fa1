package shared

import (
	"context"
	"reflect"
	"salon/shared/constant"
	"salon/shared/dto"
	"salon/shared/timezone"
	"strings"
)

func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields maps the non-zero db-tagged fields of data to an update set
// stamped with the modification time and actor.
func TransformFields(data any, actor string) map[string]any {
	val := reflect.ValueOf(data)
	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	for i := range val.NumField() {
		column := val.Type().Field(i).Tag.Get("db")
		if column == "" || column == "-" || val.Field(i).IsZero() {
			continue
		}

		fields[column] = val.Field(i).Interface()
	}

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the prefix and parts with ":".
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// ActorFromContext returns the acting user or ActorSystem.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && actor != "" {
		return actor
	}

	return constant.ActorSystem
}
