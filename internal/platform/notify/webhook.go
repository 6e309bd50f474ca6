package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"quikstox/internal/feature/stock/domain/entity"
	"quikstox/internal/feature/stock/usecase"
)

// WebhookNotifier POSTs lookup events as JSON.
type WebhookNotifier struct {
	url   string
	rc    *resty.Client
	stamp stamp
}

var _ usecase.Notifier = (*WebhookNotifier)(nil)

func NewWebhookNotifier(url string, client *http.Client) *WebhookNotifier {
	rc := resty.NewWithClient(client).SetHeader("Content-Type", "application/json")
	return &WebhookNotifier{url: url, rc: rc, stamp: defaultStamp()}
}

// Notify sends ev; any non-2xx answer is an error.
func (n *WebhookNotifier) Notify(ctx context.Context, ev entity.LookupEvent) error {
	resp, err := n.rc.R().
		SetContext(ctx).
		SetBody(n.stamp.message(ev)).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook http %d", resp.StatusCode())
	}
	return nil
}
