package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

const (
	defaultMaxRetries = 3
	defaultRetryBase  = 100 * time.Millisecond
)

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
}

// Client клиент сервиса уведомлений клиентов барбершопа
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
	retryBase  time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: defaultMaxRetries,
		retryBase:  defaultRetryBase,
		log:        log,
	}
}

// Name имя получателя событий для логов и метрик
func (c *Client) Name() string {
	return "notification_service"
}

// Send отправляет событие. Сетевые ошибки и 5xx повторяются с экспоненциальной задержкой
func (c *Client) Send(ctx context.Context, event domain.AppointmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to encode event: %v", ErrInternal, err)
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return c.post(ctx, payload)
	})
	if err != nil {
		return err
	}

	c.log.Info("NotificationService: event %s for appointment=%d delivered", event.Type, event.AppointmentID)
	return nil
}

func (c *Client) post(ctx context.Context, payload []byte) error {
	url := fmt.Sprintf("%s/internal/notifications/appointments", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return retry.RetryableError(fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(resp.Body)
		return retry.RetryableError(fmt.Errorf("%w: unexpected status code %d: %s",
			ErrInvalidResponse, resp.StatusCode, string(body)))
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status code %d: %s", ErrRejected, resp.StatusCode, string(body))
	}
}
