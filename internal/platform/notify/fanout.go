package notify

import (
	"context"
	"errors"

	"quikstox/internal/feature/stock/domain/entity"
	"quikstox/internal/feature/stock/usecase"
)

// Fanout delivers each event to every notifier in order.
type Fanout []usecase.Notifier

var _ usecase.Notifier = Fanout(nil)

// Notify calls every notifier even when an earlier one fails and joins the errors.
func (f Fanout) Notify(ctx context.Context, ev entity.LookupEvent) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
