package masterdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса справочников (поставщики, типы каучука)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочников
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// GetSupplier получает поставщика по ID
func (c *Client) GetSupplier(ctx context.Context, supplierID string) (*Supplier, error) {
	endpoint := fmt.Sprintf("%s/internal/suppliers/%s", c.baseURL, url.PathEscape(supplierID))

	var supplier Supplier
	if err := c.get(ctx, endpoint, ErrSupplierNotFound, &supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

// GetRubberType получает тип каучука по коду
func (c *Client) GetRubberType(ctx context.Context, code string) (*RubberType, error) {
	endpoint := fmt.Sprintf("%s/internal/rubber-types/%s", c.baseURL, url.PathEscape(code))

	var rubberType RubberType
	if err := c.get(ctx, endpoint, ErrRubberTypeNotFound, &rubberType); err != nil {
		return nil, err
	}
	return &rubberType, nil
}

// GetSupplierWithGracefulDegradation получает поставщика с graceful degradation
// При недоступности справочника возвращает ErrServiceDegraded: бронирование создается
// по данным из запроса, без сверки со справочником
func (c *Client) GetSupplierWithGracefulDegradation(ctx context.Context, supplierID string) (*Supplier, error) {
	supplier, err := c.GetSupplier(ctx, supplierID)
	if err != nil {
		if errors.Is(err, ErrSupplierNotFound) {
			c.log.Info("Supplier id=%s not found in masterdata", supplierID)
			return nil, err
		}

		c.log.Error("Masterdata unavailable, applying graceful degradation for supplier id=%s: %v", supplierID, err)
		return nil, fmt.Errorf("%w: supplier_id=%s, error=%v", ErrServiceDegraded, supplierID, err)
	}

	return supplier, nil
}

// GetRubberTypeWithGracefulDegradation получает тип каучука с graceful degradation
func (c *Client) GetRubberTypeWithGracefulDegradation(ctx context.Context, code string) (*RubberType, error) {
	rubberType, err := c.GetRubberType(ctx, code)
	if err != nil {
		if errors.Is(err, ErrRubberTypeNotFound) {
			c.log.Info("Rubber type code=%s not found in masterdata", code)
			return nil, err
		}

		c.log.Error("Masterdata unavailable, applying graceful degradation for rubber type code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: rubber_type=%s, error=%v", ErrServiceDegraded, code, err)
	}

	return rubberType, nil
}

func (c *Client) get(ctx context.Context, endpoint string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
