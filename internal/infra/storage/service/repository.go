package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/meetlane/booking-service/internal/domain"
	"github.com/meetlane/booking-service/pkg/dbmetrics"
	"github.com/meetlane/booking-service/pkg/psqlbuilder"
)

const serviceColumns = "id, name, slug, duration_minutes, description, is_active, created_at, updated_at"

// uniqueViolation: код ошибки Postgres для нарушения уникального индекса
const uniqueViolation = "23505"

// Repository репозиторий каталога услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает услугу. Занятый slug: ErrSlugTaken.
func (r *Repository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	query, args, err := psqlbuilder.Insert("services").
		Columns("name", "slug", "duration_minutes", "description", "is_active").
		Values(svc.Name, svc.Slug, svc.DurationMinutes, svc.Description, svc.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &createdAt, &updatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return svc, nil
}

// Update обновляет имя, длительность, описание и активность услуги
// Slug не меняется: он зафиксирован при создании
func (r *Repository) Update(ctx context.Context, svc *domain.Service) error {
	query, args, err := psqlbuilder.Update("services").
		Set("name", svc.Name).
		Set("duration_minutes", svc.DurationMinutes).
		Set("description", svc.Description).
		Set("is_active", svc.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": svc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// Deactivate снимает услугу с бронирования. Физическое удаление не
// поддерживается: исторические бронирования ссылаются на услугу.
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Update("services").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetBySlug получает услугу по slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug}, "GetBySlug")
}

// ListActive возвращает активные услуги в порядке создания
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Service, error) {
	return r.list(ctx, psqlbuilder.Select(serviceColumns).
		From("services").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC"), "ListActive")
}

// ListAll возвращает все услуги, включая деактивированные
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Service, error) {
	return r.list(ctx, psqlbuilder.Select(serviceColumns).
		From("services").
		OrderBy("id ASC"), "ListAll")
}

func (r *Repository) getOne(ctx context.Context, pred interface{}, op string) (*domain.Service, error) {
	query, args, err := psqlbuilder.Select(serviceColumns).
		From("services").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Slug,
		&svc.DurationMinutes,
		&svc.Description,
		&svc.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan service: %v", ErrScanRow, op, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

func (r *Repository) list(ctx context.Context, sb squirrel.SelectBuilder, op string) ([]*domain.Service, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Slug,
			&svc.DurationMinutes,
			&svc.Description,
			&svc.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		svc.CreatedAt = createdAt.Time
		svc.UpdatedAt = updatedAt.Time
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return services, nil
}
