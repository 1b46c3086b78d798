package printer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/TemirB/order-print-agent/internal/config"
	"github.com/TemirB/order-print-agent/internal/domain"

	"go.uber.org/zap"
)

// Bridge delivers an order to the print bridge, a small HTTP sidecar that
// owns invoice rendering and the physical device. The caller bounds every
// attempt with a context deadline; the bridge holds no timeout of its own.
type Bridge struct {
	url    string
	device string
	httpc  *http.Client
	logger *zap.Logger
}

func NewBridge(cfg config.Printer, logger *zap.Logger) *Bridge {
	return &Bridge{
		url:    cfg.URL,
		device: cfg.DeviceName,
		httpc:  &http.Client{},
		logger: logger,
	}
}

type printRequest struct {
	Silent          bool                `json:"silent"`
	PrintBackground bool                `json:"print_background"`
	DeviceName      string              `json:"device_name,omitempty"`
	Order           *domain.OrderDetail `json:"order"`
}

func (b *Bridge) Dispatch(ctx context.Context, detail *domain.OrderDetail, opts domain.DispatchOptions) error {
	device := opts.DeviceName
	if device == "" {
		device = b.device
	}

	body, err := json.Marshal(printRequest{
		Silent:          opts.Silent,
		PrintBackground: opts.Background,
		DeviceName:      device,
		Order:           detail,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDispatchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDispatchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.ErrDispatchTimeout
		}
		return fmt.Errorf("%w: %v", domain.ErrDispatchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		b.logger.Warn("print bridge refused job",
			zap.Int64("order_id", detail.OrderID),
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("reason", reason),
		)
		return fmt.Errorf("%w: bridge status %d", domain.ErrDispatchFailed, resp.StatusCode)
	}
	return nil
}
