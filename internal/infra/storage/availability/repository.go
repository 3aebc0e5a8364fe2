package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/psqlbuilder"
)

// Repository репозиторий правил доступности (окон работы)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListForWeekday возвращает активные правила заведения на день недели -
// и правила уровня заведения, и персональные правила сотрудников.
// Выбор правил для конкретного ресурса выполняет domain.ResolveOpenIntervals.
func (r *Repository) ListForWeekday(ctx context.Context, venueID int64, weekday int) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"venue_id",
		"staff_id",
		"weekday",
		"start_time",
		"end_time",
		"is_active",
	).
		From("availability_rules").
		Where(squirrel.Eq{
			"venue_id":  venueID,
			"weekday":   weekday,
			"is_active": true,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule

		err := rows.Scan(
			&rule.ID,
			&rule.VenueID,
			&rule.StaffID,
			&rule.Weekday,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForWeekday - scan row: %v", ErrScanRow, err)
		}

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForWeekday - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
