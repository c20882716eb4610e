package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meetlane/booking-service/internal/domain"
	serviceRepo "github.com/meetlane/booking-service/internal/infra/storage/service"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeServiceRepo struct {
	ServiceRepository

	createFn    func(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	getFn       func(ctx context.Context, id int64) (*domain.Service, error)
	getBySlugFn func(ctx context.Context, slug string) (*domain.Service, error)
}

func (f *fakeServiceRepo) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	return f.createFn(ctx, svc)
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	return f.getFn(ctx, id)
}

func (f *fakeServiceRepo) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	return f.getBySlugFn(ctx, slug)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Deep Tissue Massage", "deep-tissue-massage"},
		{"  Hot Stone!  ", "hot-stone"},
		{"90' Session #5", "90-session-5"},
		{"UPPER case", "upper-case"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"Ångström Therapy", "ngstr-m-therapy"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.name), tc.name)
	}
}

func TestCreate_DerivesSlugAndActivates(t *testing.T) {
	repo := &fakeServiceRepo{
		createFn: func(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
			created := *svc
			created.ID = 3
			return &created, nil
		},
	}
	registry := NewRegistry(repo, nopLogger{})

	created, err := registry.Create(context.Background(), "  Deep Tissue Massage ", 60, "relaxing")
	require.NoError(t, err)
	require.Equal(t, "Deep Tissue Massage", created.Name)
	require.Equal(t, "deep-tissue-massage", created.Slug)
	require.True(t, created.IsActive)
}

func TestCreate_Validation(t *testing.T) {
	registry := NewRegistry(&fakeServiceRepo{}, nopLogger{})
	ctx := context.Background()

	_, err := registry.Create(ctx, "   ", 60, "")
	require.ErrorIs(t, err, ErrInvalidName)

	// Вне диапазона и не кратно шагу 15 минут
	for _, d := range []int{0, 10, 250, 44} {
		_, err = registry.Create(ctx, "Massage", d, "")
		require.ErrorIs(t, err, ErrInvalidDuration, d)
	}
}

func TestCreate_SlugConflict(t *testing.T) {
	repo := &fakeServiceRepo{
		createFn: func(context.Context, *domain.Service) (*domain.Service, error) {
			return nil, serviceRepo.ErrSlugTaken
		},
	}
	registry := NewRegistry(repo, nopLogger{})

	_, err := registry.Create(context.Background(), "Massage", 60, "")
	require.ErrorIs(t, err, ErrSlugTaken)
}

func TestGetBySlug(t *testing.T) {
	repo := &fakeServiceRepo{
		getBySlugFn: func(_ context.Context, slug string) (*domain.Service, error) {
			if slug != "deep-tissue-massage" {
				return nil, serviceRepo.ErrServiceNotFound
			}
			return &domain.Service{ID: 3, Slug: slug, Name: "Deep Tissue Massage"}, nil
		},
	}
	registry := NewRegistry(repo, nopLogger{})

	svc, err := registry.GetBySlug(context.Background(), "deep-tissue-massage")
	require.NoError(t, err)
	require.Equal(t, int64(3), svc.ID)

	_, err = registry.GetBySlug(context.Background(), "missing")
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGet_MapsNotFound(t *testing.T) {
	repo := &fakeServiceRepo{
		getFn: func(context.Context, int64) (*domain.Service, error) {
			return nil, serviceRepo.ErrServiceNotFound
		},
	}
	registry := NewRegistry(repo, nopLogger{})

	_, err := registry.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrServiceNotFound)
}
