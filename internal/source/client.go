package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/TemirB/order-print-agent/internal/config"
	"github.com/TemirB/order-print-agent/internal/domain"

	"go.uber.org/zap"
)

const (
	listPath   = "/admin_order_histories"
	detailPath = "/admin_order_details"
)

// Client talks to the store backend's frontend API. Every response carries
// an application-level numeric status; anything but 200 is a rejection even
// when the HTTP layer succeeded.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *zap.Logger
}

func NewClient(cfg config.Source, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.AuthToken,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type wireOrder struct {
	OrderID              int64    `json:"order_id"`
	CustomerName         string   `json:"customer_name"`
	CustomerPhone        string   `json:"customer_phone"`
	TotalPrice           float64  `json:"total_price"`
	OrderTotal           *float64 `json:"order_total"`
	DateAdded            int64    `json:"date_added"`
	OrderPlacedTimestamp *int64   `json:"order_placed_timestamp"`
	ShipDate             *int64   `json:"ship_date"`
}

// The backend exposes totals and timestamps under two generations of field
// names; the newer ones win when both are present.
func (w wireOrder) toDomain() domain.Order {
	o := domain.Order{
		ID:            w.OrderID,
		CustomerName:  w.CustomerName,
		CustomerPhone: w.CustomerPhone,
		TotalPrice:    w.TotalPrice,
		DateAdded:     w.DateAdded,
		ShipDate:      w.ShipDate,
	}
	if w.OrderTotal != nil {
		o.TotalPrice = *w.OrderTotal
	}
	if w.OrderPlacedTimestamp != nil {
		o.DateAdded = *w.OrderPlacedTimestamp
	}
	return o
}

type listEnvelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Orders  []wireOrder `json:"orders"`
}

type detailEnvelope struct {
	Status       int                 `json:"status"`
	Message      string              `json:"message"`
	Order        *domain.OrderDetail `json:"order"`
	OrderDetails *domain.OrderDetail `json:"order_details"`
}

func (c *Client) List(ctx context.Context, status string, from, to int64) ([]domain.Order, error) {
	q := url.Values{}
	q.Set("status", status)
	q.Set("date_from", strconv.FormatInt(from, 10))
	if to > 0 {
		q.Set("date_to", strconv.FormatInt(to, 10))
	}

	var env listEnvelope
	if err := c.get(ctx, listPath, q, &env); err != nil {
		return nil, err
	}
	if env.Status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrSourceRejected, env.Status, env.Message)
	}

	orders := make([]domain.Order, 0, len(env.Orders))
	for _, w := range env.Orders {
		orders = append(orders, w.toDomain())
	}
	return orders, nil
}

func (c *Client) Detail(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	q := url.Values{}
	q.Set("order_id", strconv.FormatInt(id, 10))

	var env detailEnvelope
	if err := c.get(ctx, detailPath, q, &env); err != nil {
		return nil, err
	}
	if env.Status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrSourceRejected, env.Status, env.Message)
	}

	detail := env.Order
	if detail == nil {
		detail = env.OrderDetails
	}
	if detail == nil {
		// A 200 envelope with no body is how the backend answers an
		// unknown order id.
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
	}
	if detail.OrderID == 0 {
		detail.OrderID = id
	}
	return detail, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("auth_token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("source returned non-200",
			zap.String("path", path),
			zap.Int("http_status", resp.StatusCode),
		)
		return fmt.Errorf("%w: http %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: bad body: %v", domain.ErrSourceUnavailable, err)
	}
	return nil
}
