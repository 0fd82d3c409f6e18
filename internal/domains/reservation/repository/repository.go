package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/ComfortN/restaurent-cms/infras/otel"
	"github.com/ComfortN/restaurent-cms/infras/postgres"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model"
	"github.com/ComfortN/restaurent-cms/shared/constant"
	gDto "github.com/ComfortN/restaurent-cms/shared/dto"
	"github.com/ComfortN/restaurent-cms/shared/logger"
	gRepo "github.com/ComfortN/restaurent-cms/shared/repository"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	InsertWithCapacity(ctx context.Context, res model.Reservation, capacity int) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	GetForDay(ctx context.Context, restaurantID string, dayStart, dayEnd time.Time) ([]model.Reservation, error)
	SumGuests(ctx context.Context, restaurantID string, dayStart, dayEnd time.Time, timeLabel string) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// slotFilter matches the seat-holding reservations of one
// (restaurant, day range, slot) bucket. Cancelled, rejected, and
// expired rows are excluded from capacity accounting.
func slotFilter(restaurantID string, dayStart, dayEnd time.Time, timeLabel string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldRestaurantID,
				Operator: gDto.FilterOperatorEq,
				Value:    restaurantID,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldDate,
				ArgName:  "day_start",
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    dayStart,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldDate,
				ArgName:  "day_end",
				Operator: gDto.FilterOperatorLess,
				Value:    dayEnd,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldTime,
				ArgName:  "slot_time",
				Operator: gDto.FilterOperatorEq,
				Value:    timeLabel,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotIn,
				Value:    model.TerminalStatuses,
			},
		},
	}
}

// dayFilter matches the seat-holding reservations of one restaurant
// across a full local day.
func dayFilter(restaurantID string, dayStart, dayEnd time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldRestaurantID,
				Operator: gDto.FilterOperatorEq,
				Value:    restaurantID,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldDate,
				ArgName:  "day_start",
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    dayStart,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldDate,
				ArgName:  "day_end",
				Operator: gDto.FilterOperatorLess,
				Value:    dayEnd,
			},
			gDto.Filter{
				Table:    model.TableName,
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotIn,
				Value:    model.TerminalStatuses,
			},
		},
	}
}

// GetForDay fetches every seat-holding reservation for the restaurant
// within the half-open day range.
func (repo *repositoryImpl) GetForDay(ctx context.Context, restaurantID string, dayStart, dayEnd time.Time) ([]model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetForDay")
	defer scope.End()

	params := gDto.QueryParams{
		SortBy:  model.FieldTime,
		SortDir: "ASC",
	}

	return repo.GetAll(ctx, params, dayFilter(restaurantID, dayStart, dayEnd))
}

// SumGuests totals the seats held against one slot bucket.
func (repo *repositoryImpl) SumGuests(ctx context.Context, restaurantID string, dayStart, dayEnd time.Time, timeLabel string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.SumGuests")
	defer scope.End()

	return repo.Sum(ctx, model.FieldGuests, slotFilter(restaurantID, dayStart, dayEnd, timeLabel))
}

// InsertWithCapacity persists the reservation only if the slot still
// has room for its guests. A transaction-scoped advisory lock keyed on
// (restaurant, date, time) serializes concurrent attempts for the same
// slot across every running instance, so the re-checked sum cannot go
// stale between the read and the insert. Attempts for other slots
// proceed in parallel.
func (repo *repositoryImpl) InsertWithCapacity(ctx context.Context, res model.Reservation, capacity int) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.InsertWithCapacity")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin reservation transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	lockKey := fmt.Sprintf("%s|%s|%s", res.RestaurantID, res.Date.Format(constant.CalendarDateFormat), res.Time)

	_, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", lockKey)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to acquire slot lock: %w", err)
	}

	dayStart := res.Date
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := repo.SumTx(ctx, tx, model.FieldGuests, slotFilter(res.RestaurantID, dayStart, dayEnd, res.Time))
	if err != nil {
		return fmt.Errorf("failed to sum booked guests: %w", err)
	}

	if booked+res.Guests > capacity {
		return model.ErrCapacityExceeded(capacity-booked, res.Guests) // nolint:wrapcheck
	}

	if err = repo.InsertTx(ctx, tx, res); err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	return nil
}
