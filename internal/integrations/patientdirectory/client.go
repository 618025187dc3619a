package patientdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с Patient Directory.
// Сервис расписания никогда не изменяет данные пациентов - только чтение.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Patient Directory
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetByID получает пациента по ID
func (c *Client) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return c.get(ctx, fmt.Sprintf("%s/internal/patients/%d", c.baseURL, id))
}

// GetByPhone ищет пациента по номеру телефона.
// Используется как fallback при создании записи без явного ID пациента.
func (c *Client) GetByPhone(ctx context.Context, phone string) (*Patient, error) {
	return c.get(ctx, fmt.Sprintf("%s/internal/patients/by-phone?phone=%s", c.baseURL, url.QueryEscape(phone)))
}

func (c *Client) get(ctx context.Context, requestURL string) (*Patient, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid patient lookup parameters", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPatientNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var patient Patient
	if err := json.NewDecoder(resp.Body).Decode(&patient); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &patient, nil
}
