package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ApartmentBooking/pkg/metrics"
)

const (
	metricsTarget     = "payment_gateway"
	defaultRPS        = 10
	defaultMaxRetries = 2
	retryBackoff      = 100 * time.Millisecond
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент API платёжного шлюза
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	limiter    *rate.Limiter
	group      singleflight.Group
	maxRetries int
	metrics    *metrics.Metrics
	service    string
	log        Logger
}

// Options параметры клиента
type Options struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
	RPS       int
	Metrics   *metrics.Metrics // nil - без метрик
	Service   string
}

// NewClient создает новый экземпляр клиента шлюза
func NewClient(opts Options, log Logger) *Client {
	rps := opts.RPS
	if rps <= 0 {
		rps = defaultRPS
	}

	return &Client{
		baseURL:   opts.BaseURL,
		keyID:     opts.KeyID,
		keySecret: opts.KeySecret,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
		maxRetries: defaultMaxRetries,
		metrics:    opts.Metrics,
		service:    opts.Service,
		log:        log,
	}
}

// VerifySignature проверяет подпись колбэка ключом шлюза
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.keySecret, orderID, paymentID, signature)
}

// FetchPayment получает платёж из шлюза.
// Одновременные запросы одного платежа объединяются в один HTTP вызов.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	v, err, shared := c.group.Do(paymentID, func() (interface{}, error) {
		return c.fetchWithRetry(ctx, paymentID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Info("PaymentGateway: shared lookup for payment_id=%s", paymentID)
	}

	// Копия, чтобы вызывающие не делили один указатель
	p := *v.(*Payment)
	return &p, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, paymentID string) (*Payment, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrInternal, ctx.Err())
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		payment, retryable, err := c.fetch(ctx, paymentID)
		if err == nil {
			return payment, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		c.log.Warn("PaymentGateway: attempt %d for payment_id=%s failed: %v", attempt+1, paymentID, err)
	}
	return nil, lastErr
}

// fetch выполняет один запрос; retryable=true для ошибок транспорта и 5xx
func (c *Client) fetch(ctx context.Context, paymentID string) (*Payment, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, fmt.Errorf("%w: rate limiter: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, url.PathEscape(paymentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveExternal(c.service, metricsTarget, 0, time.Since(start))
		return nil, true, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveExternal(c.service, metricsTarget, resp.StatusCode, time.Since(start))

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, ErrPaymentNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, false, ErrUnauthorized
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	default:
		var errResp ErrorResponse
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(body, &errResp)
		return nil, false, fmt.Errorf("%w: unexpected status code %d: %s",
			ErrInvalidResponse, resp.StatusCode, errResp.Error.Description)
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, false, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if payment.ID == "" {
		return nil, false, fmt.Errorf("%w: payment id is empty", ErrInvalidResponse)
	}

	return &payment, false, nil
}
