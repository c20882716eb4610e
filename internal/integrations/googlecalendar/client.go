package googlecalendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/meetlane/booking-service/internal/domain"
	settingsRepo "github.com/meetlane/booking-service/internal/infra/storage/settings"
	"github.com/meetlane/booking-service/pkg/interval"
	"github.com/meetlane/booking-service/pkg/types"
)

const (
	// tokenExpirySkew: запас до истечения access-токена, после которого он
	// обновляется проактивно
	tokenExpirySkew = 60 * time.Second

	// retryDelay: пауза перед единственным повтором вызова API
	retryDelay = time.Second

	defaultCalendarID = "primary"
)

// Config конфигурация клиента Google Calendar
type Config struct {
	ClientID     string
	ClientSecret string
	CalendarID   string
	// AppSecret: секрет приложения, из которого выводится ключ шифрования токенов
	AppSecret string
	// Endpoint переопределяет адрес API (для тестов)
	Endpoint string
	// Location: часовой пояс провайдера для границ дня freebusy-запроса
	Location *time.Location
}

// Client: адаптер внешнего календаря. Все сбои деградируют: занятость
// становится пустой, запись события не выполняется, бронирование при этом
// никогда не блокируется.
type Client struct {
	cfg      Config
	key      []byte
	oauthCfg *oauth2.Config
	settings SettingsRepository
	cache    *busyCache
	logger   Logger
	metrics  Metrics

	now   func() time.Time
	sleep func(time.Duration)
}

// New создает новый клиент календаря
func New(cfg Config, settings SettingsRepository, logger Logger, m Metrics) *Client {
	if cfg.CalendarID == "" {
		cfg.CalendarID = defaultCalendarID
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	endpoint := google.Endpoint
	if cfg.Endpoint != "" {
		endpoint = oauth2.Endpoint{
			AuthURL:  strings.TrimRight(cfg.Endpoint, "/") + "/auth",
			TokenURL: strings.TrimRight(cfg.Endpoint, "/") + "/token",
		}
	}

	return &Client{
		cfg: cfg,
		key: deriveKey(cfg.AppSecret),
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint:     endpoint,
		},
		settings: settings,
		cache:    newBusyCache(cacheTTL),
		logger:   logger,
		metrics:  m,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// IsConnected сообщает, есть ли у адаптера пригодные токены
func (c *Client) IsConnected(ctx context.Context) bool {
	_, err := c.loadToken(ctx)
	return err == nil
}

// SaveTokens шифрует и сохраняет токены, снимая флаг переподключения
func (c *Client) SaveTokens(ctx context.Context, tok *oauth2.Token) error {
	plain, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("googlecalendar: SaveTokens - encode token: %w", err)
	}

	sealed, err := encrypt(c.key, plain)
	if err != nil {
		return fmt.Errorf("googlecalendar: SaveTokens - encrypt token: %w", err)
	}

	if err := c.settings.Set(ctx, settingsRepo.KeyCalendarTokens, sealed); err != nil {
		return fmt.Errorf("googlecalendar: SaveTokens - settings write: %w", err)
	}

	if err := c.settings.Delete(ctx, settingsRepo.KeyCalendarNeedsReauth); err != nil {
		c.logger.Warn("SaveTokens: failed to clear reconnect flag: %v", err)
	}

	return nil
}

// GetBusy возвращает занятые интервалы на дату, отдавая кэш при попадании.
// Любой сбой деградирует в пустой список.
func (c *Client) GetBusy(ctx context.Context, date string) []interval.Interval {
	if intervals, ok := c.cache.get(date); ok {
		return intervals
	}

	intervals, err := c.fetchBusy(ctx, date)
	if err != nil {
		if !errors.Is(err, ErrNotConnected) {
			c.logger.Warn("GetBusy: degraded to empty for %s: %v", date, err)
		}
		c.observe("freebusy", "degraded")
		return nil
	}

	c.cache.put(date, intervals)
	c.observe("freebusy", "ok")
	return intervals
}

// GetBusyFresh сбрасывает кэш даты и запрашивает занятость заново
func (c *Client) GetBusyFresh(ctx context.Context, date string) []interval.Interval {
	c.cache.invalidate(date)
	return c.GetBusy(ctx, date)
}

// Invalidate сбрасывает кэш занятости на дату
func (c *Client) Invalidate(date string) {
	c.cache.invalidate(date)
}

// PushEvent создает событие календаря для бронирования.
// Возвращает id события и признак успеха; сбой не является ошибкой бронирования.
func (c *Client) PushEvent(ctx context.Context, booking *domain.Booking) (string, bool) {
	tok, err := c.loadToken(ctx)
	if err != nil {
		c.logger.Debug("PushEvent: calendar unavailable: %v", err)
		c.observe("insert_event", "degraded")
		return "", false
	}

	event := &calendar.Event{
		Summary:     fmt.Sprintf("%s: %s", booking.ServiceName, booking.ClientName),
		Description: eventDescription(booking),
		Start:       &calendar.EventDateTime{DateTime: booking.StartUTC.UTC().Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: booking.EndUTC().UTC().Format(time.RFC3339)},
	}

	var created *calendar.Event
	err = c.callWithRetry(ctx, "insert_event", tok, func(srv *calendar.Service) error {
		res, callErr := srv.Events.Insert(c.cfg.CalendarID, event).Context(ctx).Do()
		if callErr != nil {
			return callErr
		}
		created = res
		return nil
	})
	if err != nil {
		c.logger.Warn("PushEvent: booking %d not pushed: %v", booking.ID, err)
		c.observe("insert_event", "degraded")
		return "", false
	}

	c.cache.invalidate(booking.StartUTC.In(c.cfg.Location).Format(types.DateFormat))
	c.observe("insert_event", "ok")
	return created.Id, true
}

// DeleteEvent удаляет событие календаря. 404 и 410 считаются успехом:
// событие уже отсутствует.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) bool {
	tok, err := c.loadToken(ctx)
	if err != nil {
		c.logger.Debug("DeleteEvent: calendar unavailable: %v", err)
		c.observe("delete_event", "degraded")
		return false
	}

	err = c.callWithRetry(ctx, "delete_event", tok, func(srv *calendar.Service) error {
		delErr := srv.Events.Delete(c.cfg.CalendarID, eventID).Context(ctx).Do()
		if isGone(delErr) {
			return nil
		}
		return delErr
	})
	if err != nil {
		c.logger.Warn("DeleteEvent: event %s not deleted: %v", eventID, err)
		c.observe("delete_event", "degraded")
		return false
	}

	c.observe("delete_event", "ok")
	return true
}

// fetchBusy выполняет freebusy-запрос за один день в часовом поясе провайдера
func (c *Client) fetchBusy(ctx context.Context, date string) ([]interval.Interval, error) {
	tok, err := c.loadToken(ctx)
	if err != nil {
		return nil, err
	}

	day, err := types.ParseDate(date, c.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: fetchBusy - bad date %q: %v", ErrAPICall, date, err)
	}

	var resp *calendar.FreeBusyResponse
	err = c.callWithRetry(ctx, "freebusy", tok, func(srv *calendar.Service) error {
		res, callErr := srv.Freebusy.Query(&calendar.FreeBusyRequest{
			TimeMin: day.Format(time.RFC3339),
			TimeMax: day.AddDate(0, 0, 1).Format(time.RFC3339),
			Items:   []*calendar.FreeBusyRequestItem{{Id: c.cfg.CalendarID}},
		}).Context(ctx).Do()
		if callErr != nil {
			return callErr
		}
		resp = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	cal, ok := resp.Calendars[c.cfg.CalendarID]
	if !ok {
		return nil, nil
	}

	intervals := make([]interval.Interval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, startErr := time.Parse(time.RFC3339, period.Start)
		end, endErr := time.Parse(time.RFC3339, period.End)
		if startErr != nil || endErr != nil {
			c.logger.Warn("fetchBusy: skipping unparsable busy period %q/%q", period.Start, period.End)
			continue
		}
		intervals = append(intervals, interval.Interval{
			Start: start.In(c.cfg.Location),
			End:   end.In(c.cfg.Location),
		})
	}

	return intervals, nil
}

// loadToken читает, расшифровывает и при необходимости обновляет токены.
// Сбой расшифровки и сбой обновления взводят липкий флаг переподключения.
func (c *Client) loadToken(ctx context.Context) (*oauth2.Token, error) {
	raw, err := c.settings.Get(ctx, settingsRepo.KeyCalendarTokens)
	if errors.Is(err, settingsRepo.ErrKeyNotFound) {
		return nil, ErrNotConnected
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loadToken - settings read: %v", ErrNotConnected, err)
	}

	plain, err := decrypt(c.key, raw)
	if err != nil {
		c.markReconnectNeeded(ctx)
		return nil, fmt.Errorf("%w: %v", ErrTokenDecrypt, err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(plain, &tok); err != nil {
		c.markReconnectNeeded(ctx)
		return nil, fmt.Errorf("%w: loadToken - decode token: %v", ErrTokenDecrypt, err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		c.markReconnectNeeded(ctx)
		return nil, ErrNotConnected
	}

	if !tok.Expiry.IsZero() && c.now().After(tok.Expiry.Add(-tokenExpirySkew)) {
		refreshed, refreshErr := c.refreshToken(ctx, &tok)
		if refreshErr != nil {
			c.markReconnectNeeded(ctx)
			return nil, refreshErr
		}
		tok = *refreshed
	}

	return &tok, nil
}

// refreshToken обновляет access-токен через oauth2 token source и
// сохраняет обновленную пару, если она изменилась
func (c *Client) refreshToken(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	refreshed, err := c.oauthCfg.TokenSource(ctx, tok).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenRefresh, err)
	}

	if refreshed.AccessToken != tok.AccessToken {
		if saveErr := c.SaveTokens(ctx, refreshed); saveErr != nil {
			c.logger.Warn("refreshToken: failed to persist refreshed token: %v", saveErr)
		}
	}

	return refreshed, nil
}

// markReconnectNeeded взводит липкий флаг "нужно переподключение"
func (c *Client) markReconnectNeeded(ctx context.Context) {
	if err := c.settings.Set(ctx, settingsRepo.KeyCalendarNeedsReauth, "true"); err != nil {
		c.logger.Error("markReconnectNeeded: failed to set reconnect flag: %v", err)
	}
}

// callWithRetry выполняет вызов API c одним повтором после паузы.
// Повтор только при транспортной ошибке или 401; перед повтором после 401
// токен обновляется принудительно.
func (c *Client) callWithRetry(ctx context.Context, op string, tok *oauth2.Token, fn func(srv *calendar.Service) error) error {
	err := c.call(ctx, tok, fn)
	if err == nil {
		return nil
	}
	if !isRetryable(err) {
		return fmt.Errorf("%w: %s: %v", ErrAPICall, op, err)
	}

	if isUnauthorized(err) {
		refreshed, refreshErr := c.refreshToken(ctx, tok)
		if refreshErr != nil {
			c.markReconnectNeeded(ctx)
			return refreshErr
		}
		*tok = *refreshed
	}

	c.sleep(retryDelay)

	if err := c.call(ctx, tok, fn); err != nil {
		return fmt.Errorf("%w: %s (after retry): %v", ErrAPICall, op, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, tok *oauth2.Token, fn func(srv *calendar.Service) error) error {
	opts := []option.ClientOption{
		option.WithHTTPClient(oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))),
	}
	if c.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.cfg.Endpoint))
	}

	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return err
	}
	return fn(srv)
}

func (c *Client) observe(operation, outcome string) {
	if c.metrics != nil {
		c.metrics.CalendarCall(operation, outcome)
	}
}

// isUnauthorized сообщает, является ли ошибка ответом 401
func isUnauthorized(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 401
}

// isRetryable: транспортные ошибки и 401; остальные коды повтор не получают.
// Отменённый или истёкший контекст не повторяем: повтор обречён, а пауза
// перед ним только задержит вызывающего.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 401
	}
	return true
}

// isGone: событие уже отсутствует на стороне календаря
func isGone(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && (apiErr.Code == 404 || apiErr.Code == 410)
}

func eventDescription(booking *domain.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Client: %s <%s>\n", booking.ClientName, booking.ClientEmail)
	if booking.ClientPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", booking.ClientPhone)
	}
	if booking.ClientNotes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", booking.ClientNotes)
	}
	return b.String()
}
