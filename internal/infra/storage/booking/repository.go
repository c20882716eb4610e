package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/pkg/dbmetrics"
	"github.com/meetlane/booking-service/pkg/psqlbuilder"
)

const bookingColumns = `id, service_id, client_name, client_email, client_phone, client_notes,
	start_utc, duration_minutes, provider_timezone, status, external_event_id, service_name,
	created_at, updated_at`

// insertIfNoOverlapSQL: атомарная условная вставка: строка появляется только
// если нет подтверждённого бронирования с пересекающимся интервалом.
// Проверка и вставка выполняются одним оператором: двухфазный
// check-then-insert возвращает гонку.
//
// Предикат пересечения полуоткрытый, как и везде:
// existing.start < candidate.end AND existing.end > candidate.start
const insertIfNoOverlapSQL = `
INSERT INTO bookings
	(service_id, client_name, client_email, client_phone, client_notes,
	 start_utc, duration_minutes, provider_timezone, status, service_name)
SELECT $1, $2, $3, $4, $5, $6, $7, $8, 'confirmed', $9
WHERE NOT EXISTS (
	SELECT 1 FROM bookings
	WHERE status = 'confirmed'
	  AND start_utc < $10
	  AND start_utc + make_interval(mins => duration_minutes) > $6
)
RETURNING id, created_at, updated_at`

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertIfNoOverlap вставляет подтверждённое бронирование, только если его
// интервал [start_utc, start_utc+duration) не пересекается ни с одним
// существующим подтверждённым бронированием. Ноль строк: слот занят.
func (r *Repository) InsertIfNoOverlap(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	endUTC := b.EndUTC()

	var createdAt, updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, insertIfNoOverlapSQL,
		b.ServiceID,
		b.ClientName,
		b.ClientEmail,
		b.ClientPhone,
		b.ClientNotes,
		b.StartUTC,
		b.DurationMinutes,
		b.ProviderTimezone,
		b.ServiceName,
		endUTC,
	).Scan(&b.ID, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		// NOT EXISTS не пропустил вставку: слот заняли раньше нас
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: InsertIfNoOverlap - execute insert: %v", ErrExecQuery, err)
	}

	b.Status = domain.StatusConfirmed
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// FindConfirmedOverlapping возвращает подтверждённые бронирования,
// пересекающиеся с интервалом [startUTC, endUTC). Без кеширования:
// повторная проверка при бронировании должна видеть свежие данные.
func (r *Repository) FindConfirmedOverlapping(ctx context.Context, startUTC, endUTC time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"start_utc": endUTC}).
		Where(squirrel.Expr("start_utc + make_interval(mins => duration_minutes) > ?", startUTC)).
		OrderBy("start_utc ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListByDateRange возвращает бронирования, начинающиеся в [startUTC, endUTC),
// включая отменённые. Используется административной выборкой.
func (r *Repository) ListByDateRange(ctx context.Context, startUTC, endUTC time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.GtOrEq{"start_utc": startUTC}).
		Where(squirrel.Lt{"start_utc": endUTC}).
		OrderBy("start_utc ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SetExternalEventID сохраняет идентификатор события внешнего календаря
func (r *Repository) SetExternalEventID(ctx context.Context, id int64, eventID string) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("external_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetExternalEventID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetExternalEventID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetExternalEventID - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.ServiceID,
		&b.ClientName,
		&b.ClientEmail,
		&b.ClientPhone,
		&b.ClientNotes,
		&b.StartUTC,
		&b.DurationMinutes,
		&b.ProviderTimezone,
		&b.Status,
		&b.ExternalEventID,
		&b.ServiceName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.StartUTC = b.StartUTC.UTC()
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
