package dto_test

import (
	"net/http"
	"net/url"
	"salon/shared/constant"
	"salon/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "appointment_date",
				"sort_dir": "asc",
			},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "appointment_date", SortDir: "ASC"},
		},
		{
			name:           "defaults when empty",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:           "invalid numbers fall back to defaults",
			queryParams:    map[string]string{"page": "-1", "limit": "many", "sort_by": "appointment_date"},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "appointment_date",
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:        "limit is capped",
			queryParams: map[string]string{"limit": "5000"},
			expected:    dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:        "sort key outside the allowed columns is dropped",
			queryParams: map[string]string{"sort_by": "id; DROP TABLE appointments", "sort_dir": "desc"},
			expected:    dto.QueryParams{SortDir: "DESC"},
		},
		{
			name:        "unknown sort direction is ignored",
			queryParams: map[string]string{"sort_dir": "sideways"},
			expected:    dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse("http://example.com/v1/appointments")
			require.NoError(t, err)

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}

			u.RawQuery = query.Encode()

			req, err := http.NewRequest(http.MethodGet, u.String(), nil)
			require.NoError(t, err)

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest, "appointment_date", "start_time")

			assert.Equal(t, tt.expected, *queryParams)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty group",
			group:     dto.FilterGroup{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name: "operator defaults to AND",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "master_id", Operator: dto.FilterOperatorEq, Value: "m-1"},
				dto.Filter{Field: "appointment_date", Operator: dto.FilterOperatorEq, Value: "2024-01-15"},
			}},
			wantWhere: "(master_id = :master_id AND appointment_date = :appointment_date)",
			wantArgs:  map[string]any{"master_id": "m-1", "appointment_date": "2024-01-15"},
		},
		{
			name: "in operator expands slice",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "confirmed"}, Table: "appointments"},
			}},
			wantWhere: "(appointments.status IN (:status_0, :status_1))",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name: "in operator with empty slice matches nothing",
			group: dto.FilterGroup{Filters: []any{
				dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []string{}},
			}},
			wantWhere: "(FALSE)",
			wantArgs:  map[string]any{},
		},
		{
			name: "nested or group",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "active", Operator: dto.FilterOperatorEq, Value: true},
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorOr,
						Filters: []any{
							dto.Filter{Field: "parent_id", Operator: dto.FilterIsNull},
							dto.Filter{Field: "parent_id", ArgName: "parent", Operator: dto.FilterOperatorEq, Value: "c-1"},
						},
					},
				},
			},
			wantWhere: "(active = :active AND (parent_id IS NULL OR parent_id = :parent))",
			wantArgs:  map[string]any{"active": true, "parent": "c-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
