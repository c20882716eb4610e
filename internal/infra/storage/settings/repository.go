package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/meetlane/booking-service/pkg/dbmetrics"
	"github.com/meetlane/booking-service/pkg/psqlbuilder"
)

// Known setting keys.
const (
	KeyWeeklyTemplate       = "availability.weekly_template"
	KeyBookingRules         = "availability.booking_rules"
	KeyCalendarTokens       = "calendar.tokens"
	KeyCalendarNeedsReauth  = "calendar.needs_reconnect"
)

// Repository: типизированное хранилище ключ-значение для настроек провайдера
// (шаблон доступности, правила бронирования, токены календаря)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает значение по ключу, ErrKeyNotFound если ключа нет
func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	query, args, err := psqlbuilder.Select("value").
		From("settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get - execute query: %v", ErrExecQuery, err)
	}

	return value, nil
}

// Set записывает значение по ключу (upsert)
func (r *Repository) Set(ctx context.Context, key, value string) error {
	query, args, err := psqlbuilder.Insert("settings").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет ключ. Отсутствующий ключ не является ошибкой.
func (r *Repository) Delete(ctx context.Context, key string) error {
	query, args, err := psqlbuilder.Delete("settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
