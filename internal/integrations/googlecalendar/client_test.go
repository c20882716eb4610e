package googlecalendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/meetlane/booking-service/internal/domain"
	settingsRepo "github.com/meetlane/booking-service/internal/infra/storage/settings"
	"github.com/meetlane/booking-service/pkg/interval"
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              7,
		ServiceName:     "Consultation",
		ClientName:      "Jane Roe",
		ClientEmail:     "jane@example.com",
		StartUTC:        time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memSettings struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemSettings() *memSettings {
	return &memSettings{data: make(map[string]string)}
}

func (m *memSettings) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", settingsRepo.ErrKeyNotFound
	}
	return v, nil
}

func (m *memSettings) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memSettings) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memSettings) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// apiCounter считает вызовы тестового сервера по операциям
type apiCounter struct {
	mu       sync.Mutex
	freebusy int
	token    int
	inserts  int
	deletes  int
}

func (c *apiCounter) bump(field *int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*field++
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *memSettings, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	settings := newMemSettings()
	client := New(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AppSecret:    "test-app-secret",
		Endpoint:     srv.URL,
		Location:     time.UTC,
	}, settings, nopLogger{}, nil)
	client.sleep = func(time.Duration) {}

	return client, settings, srv
}

func freebusyResponse(t *testing.T, w http.ResponseWriter, periods [][2]string) {
	t.Helper()

	busy := make([]map[string]string, 0, len(periods))
	for _, p := range periods {
		busy = append(busy, map[string]string{"start": p[0], "end": p[1]})
	}

	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
		"calendars": map[string]interface{}{
			"primary": map[string]interface{}{"busy": busy},
		},
	}))
}

func apiError(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{"code": code, "message": http.StatusText(code)},
	})
}

func connect(t *testing.T, c *Client, tok *oauth2.Token) {
	t.Helper()
	require.NoError(t, c.SaveTokens(context.Background(), tok))
}

func TestGetBusy_NotConnectedDegradesToEmpty(t *testing.T) {
	counter := &apiCounter{}
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		counter.bump(&counter.freebusy)
	})

	got := client.GetBusy(context.Background(), "2026-03-10")
	require.Empty(t, got)
	require.Zero(t, counter.freebusy)
}

func TestGetBusy_FetchesAndCaches(t *testing.T) {
	counter := &apiCounter{}
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		counter.bump(&counter.freebusy)
		freebusyResponse(t, w, [][2]string{{"2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"}})
	})
	connect(t, client, &oauth2.Token{AccessToken: "at"})

	want := []interval.Interval{{
		Start: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}}

	got := client.GetBusy(context.Background(), "2026-03-10")
	require.Len(t, got, 1)
	require.True(t, got[0].Start.Equal(want[0].Start))
	require.True(t, got[0].End.Equal(want[0].End))

	// Повторный запрос той же даты идёт из кэша
	client.GetBusy(context.Background(), "2026-03-10")
	require.Equal(t, 1, counter.freebusy)
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	counter := &apiCounter{}
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		counter.bump(&counter.freebusy)
		freebusyResponse(t, w, nil)
	})
	connect(t, client, &oauth2.Token{AccessToken: "at"})

	client.GetBusy(context.Background(), "2026-03-10")
	client.Invalidate("2026-03-10")
	client.GetBusy(context.Background(), "2026-03-10")

	require.Equal(t, 2, counter.freebusy)
}

func TestGetBusyFresh_BypassesCache(t *testing.T) {
	counter := &apiCounter{}
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		counter.bump(&counter.freebusy)
		freebusyResponse(t, w, nil)
	})
	connect(t, client, &oauth2.Token{AccessToken: "at"})

	client.GetBusy(context.Background(), "2026-03-10")
	client.GetBusyFresh(context.Background(), "2026-03-10")

	require.Equal(t, 2, counter.freebusy)
}

func TestGetBusy_APIFailureDegradesToEmpty(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusInternalServerError)
	})
	connect(t, client, &oauth2.Token{AccessToken: "at"})

	got := client.GetBusy(context.Background(), "2026-03-10")
	require.Empty(t, got)
}

func TestGetBusy_RetriesOnceAfterTransportError(t *testing.T) {
	counter := &apiCounter{}
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		counter.bump(&counter.freebusy)
		if counter.freebusy == 1 {
			// Обрываем соединение, имитируя транспортный сбой
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		freebusyResponse(t, w, [][2]string{{"2026-03-10T09:00:00Z", "2026-03-10T10:00:00Z"}})
	})
	connect(t, client, &oauth2.Token{AccessToken: "at"})

	got := client.GetBusy(context.Background(), "2026-03-10")
	require.Len(t, got, 1)
	require.Equal(t, 2, counter.freebusy)
}

func TestGetBusy_CanceledContextDoesNotRetry(t *testing.T) {
	counter := &apiCounter{}
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		counter.bump(&counter.freebusy)
	})

	slept := 0
	client.sleep = func(time.Duration) { slept++ }
	connect(t, client, &oauth2.Token{AccessToken: "at"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := client.GetBusy(ctx, "2026-03-10")
	require.Empty(t, got)
	require.Zero(t, slept)
	require.Zero(t, counter.freebusy)
}

func TestIsRetryable(t *testing.T) {
	require.False(t, isRetryable(context.Canceled))
	require.False(t, isRetryable(fmt.Errorf("freebusy: %w", context.DeadlineExceeded)))
	require.False(t, isRetryable(&googleapi.Error{Code: 403}))
	require.True(t, isRetryable(&googleapi.Error{Code: 401}))
	require.True(t, isRetryable(errors.New("connection reset by peer")))
}

func TestLoadToken_DecryptFailureSetsReconnectFlag(t *testing.T) {
	counter := &apiCounter{}
	client, settings, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		counter.bump(&counter.freebusy)
	})

	require.NoError(t, settings.Set(context.Background(), settingsRepo.KeyCalendarTokens, "not-a-sealed-token"))

	got := client.GetBusy(context.Background(), "2026-03-10")
	require.Empty(t, got)
	require.Zero(t, counter.freebusy)
	require.True(t, settings.has(settingsRepo.KeyCalendarNeedsReauth))
}

func TestLoadToken_ProactiveRefreshWhenExpired(t *testing.T) {
	counter := &apiCounter{}
	var authHeader string

	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/token"):
			counter.bump(&counter.token)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token":  "refreshed-at",
				"token_type":    "Bearer",
				"refresh_token": "rt",
				"expires_in":    3600,
			})
		default:
			counter.bump(&counter.freebusy)
			authHeader = r.Header.Get("Authorization")
			freebusyResponse(t, w, nil)
		}
	})

	connect(t, client, &oauth2.Token{
		AccessToken:  "stale-at",
		RefreshToken: "rt",
		Expiry:       time.Now().Add(-time.Hour),
	})

	client.GetBusy(context.Background(), "2026-03-10")

	require.Equal(t, 1, counter.token)
	require.Equal(t, 1, counter.freebusy)
	require.Equal(t, "Bearer refreshed-at", authHeader)
}

func TestSaveTokens_ClearsReconnectFlag(t *testing.T) {
	client, settings, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	require.NoError(t, settings.Set(context.Background(), settingsRepo.KeyCalendarNeedsReauth, "true"))
	connect(t, client, &oauth2.Token{AccessToken: "at"})

	require.False(t, settings.has(settingsRepo.KeyCalendarNeedsReauth))
	require.True(t, client.IsConnected(context.Background()))
}

func TestPushEvent_CreatesEventAndInvalidatesDateCache(t *testing.T) {
	counter := &apiCounter{}
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.Contains(r.URL.Path, "/events"):
			counter.bump(&counter.inserts)
			var event struct {
				Summary string `json:"summary"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
			require.Equal(t, "Consultation: Jane Roe", event.Summary)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"id": "evt-42"})
		default:
			counter.bump(&counter.freebusy)
			freebusyResponse(t, w, nil)
		}
	})
	connect(t, client, &oauth2.Token{AccessToken: "at"})

	// Прогреваем кэш даты, на которую придётся событие
	client.GetBusy(context.Background(), "2026-03-10")
	require.Equal(t, 1, counter.freebusy)

	eventID, ok := client.PushEvent(context.Background(), testBooking())
	require.True(t, ok)
	require.Equal(t, "evt-42", eventID)
	require.Equal(t, 1, counter.inserts)

	// Событие изменило занятость даты, кэш сброшен
	client.GetBusy(context.Background(), "2026-03-10")
	require.Equal(t, 2, counter.freebusy)
}

func TestPushEvent_NotConnectedReportsFailure(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, ok := client.PushEvent(context.Background(), testBooking())
	require.False(t, ok)
}

func TestDeleteEvent_GoneCountsAsSuccess(t *testing.T) {
	counter := &apiCounter{}
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		counter.bump(&counter.deletes)
		apiError(w, http.StatusNotFound)
	})
	connect(t, client, &oauth2.Token{AccessToken: "at"})

	require.True(t, client.DeleteEvent(context.Background(), "evt-42"))
	require.Equal(t, 1, counter.deletes)
}

func TestDeleteEvent_ServerErrorReportsFailure(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusInternalServerError)
	})
	connect(t, client, &oauth2.Token{AccessToken: "at"})

	require.False(t, client.DeleteEvent(context.Background(), "evt-42"))
}
