package dto_test

import (
	"testing"

	"github.com/ComfortN/restaurent-cms/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name          string
		filter        dto.Filter
		expectedWhere string
		expectedArgs  map[string]any
	}{
		{
			name: "eq with table prefix",
			filter: dto.Filter{
				Field:    "status",
				Value:    "pending",
				Operator: dto.FilterOperatorEq,
				Table:    "reservations",
			},
			expectedWhere: "reservations.status = :status",
			expectedArgs:  map[string]any{"status": "pending"},
		},
		{
			name: "eq without table",
			filter: dto.Filter{
				Field:    "id",
				Value:    "some-id",
				Operator: dto.FilterOperatorEq,
			},
			expectedWhere: "id = :id",
			expectedArgs:  map[string]any{"id": "some-id"},
		},
		{
			name: "like wraps value in wildcards",
			filter: dto.Filter{
				Field:    "location",
				Value:    "cape town",
				Operator: dto.FilterOperatorLike,
				Table:    "restaurants",
			},
			expectedWhere: "LOWER(restaurants.location) LIKE LOWER(:location) ",
			expectedArgs:  map[string]any{"location": "%cape town%"},
		},
		{
			name: "not_in expands slice into named args",
			filter: dto.Filter{
				ArgName:  "excluded_status",
				Field:    "status",
				Value:    []string{"cancelled", "expired"},
				Operator: dto.FilterOperatorNotIn,
				Table:    "reservations",
			},
			expectedWhere: "reservations.status NOT IN (:excluded_status_0, :excluded_status_1) ",
			expectedArgs: map[string]any{
				"excluded_status_0": "cancelled",
				"excluded_status_1": "expired",
			},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "status",
				Value:    "pending",
				Operator: "bogus",
			},
			expectedWhere: "",
			expectedArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if where != tt.expectedWhere {
				t.Errorf("expected where clause %q, got %q", tt.expectedWhere, where)
			}

			if len(args) != len(tt.expectedArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.expectedArgs), len(args))
			}

			for key, expected := range tt.expectedArgs {
				if args[key] != expected {
					t.Errorf("expected arg %s to be %v, got %v", key, expected, args[key])
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "restaurant_id",
				Value:    "restaurant-id",
				Operator: dto.FilterOperatorEq,
				Table:    "reservations",
			},
			dto.Filter{
				Field:    "status",
				Value:    "confirmed",
				Operator: dto.FilterOperatorEq,
				Table:    "reservations",
			},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(reservations.restaurant_id = :restaurant_id AND reservations.status = :status)"
	if where != expected {
		t.Errorf("expected where clause %q, got %q", expected, where)
	}

	if args["restaurant_id"] != "restaurant-id" || args["status"] != "confirmed" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestFilterGroup_GetWhereClauseEmpty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()

	if where != "" {
		t.Errorf("expected empty where clause, got %q", where)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}
