package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/maisonvela/storefront-backend/pkg/logger"
)

// LoggingPlacer accepts every order and mints a local reference. It stands in
// for the platform's order API until that integration lands.
type LoggingPlacer struct {
	logg *logger.Logger
}

func NewLoggingPlacer(logg *logger.Logger) *LoggingPlacer {
	return &LoggingPlacer{logg: logg}
}

func (p *LoggingPlacer) PlaceOrder(ctx context.Context, order Order) (string, error) {
	ref := fmt.Sprintf("ord_%s", uuid.NewString())
	if p.logg != nil {
		ctx = p.logg.WithFields(ctx, map[string]any{
			"order_ref":   ref,
			"session_id":  order.SessionID,
			"total_items": order.TotalItems,
			"total_price": order.TotalPrice,
		})
		p.logg.Info(ctx, "order accepted")
	}
	return ref, nil
}
