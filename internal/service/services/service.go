package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/meetlane/booking-service/internal/domain"
	serviceRepo "github.com/meetlane/booking-service/internal/infra/storage/service"
)

// Registry: каталог услуг провайдера.
// Услуги никогда не удаляются физически, только деактивируются:
// исторические бронирования хранят ссылку на услугу.
type Registry struct {
	repo   ServiceRepository
	logger Logger
}

// NewRegistry создает новый экземпляр каталога услуг
func NewRegistry(repo ServiceRepository, logger Logger) *Registry {
	return &Registry{
		repo:   repo,
		logger: logger,
	}
}

// Get получает услугу по ID
func (r *Registry) Get(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return svc, nil
}

// GetBySlug получает услугу по slug
func (r *Registry) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	svc, err := r.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: GetBySlug - repository error: %v", ErrInternal, err)
	}
	return svc, nil
}

// ListActive возвращает активные услуги
func (r *Registry) ListActive(ctx context.Context) ([]*domain.Service, error) {
	list, err := r.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// ListAll возвращает все услуги, включая деактивированные
func (r *Registry) ListAll(ctx context.Context) ([]*domain.Service, error) {
	list, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// Create создает услугу; slug выводится из имени
func (r *Registry) Create(ctx context.Context, name string, durationMinutes int, description string) (*domain.Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if !domain.ValidDuration(durationMinutes) {
		return nil, ErrInvalidDuration
	}

	svc := &domain.Service{
		Name:            name,
		Slug:            Slugify(name),
		DurationMinutes: durationMinutes,
		Description:     description,
		IsActive:        true,
	}

	created, err := r.repo.Create(ctx, svc)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrSlugTaken) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	r.logger.Info("Create: service id=%d slug=%s created", created.ID, created.Slug)
	return created, nil
}

// Update обновляет имя, длительность, описание и активность услуги
func (r *Registry) Update(ctx context.Context, id int64, name string, durationMinutes int, description string, isActive bool) (*domain.Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if !domain.ValidDuration(durationMinutes) {
		return nil, ErrInvalidDuration
	}

	svc, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.Name = name
	svc.DurationMinutes = durationMinutes
	svc.Description = description
	svc.IsActive = isActive

	if err := r.repo.Update(ctx, svc); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	r.logger.Info("Update: service id=%d updated (active=%t)", id, isActive)
	return svc, nil
}

// Deactivate снимает услугу с бронирования
func (r *Registry) Deactivate(ctx context.Context, id int64) error {
	if err := r.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	r.logger.Info("Deactivate: service id=%d deactivated", id)
	return nil
}

// Slugify переводит имя услуги в URL-безопасный slug:
// строчные латинские буквы и цифры, остальное схлопывается в дефисы
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // подавляем ведущий дефис

	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII, unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
