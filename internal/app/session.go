package app

import (
	"context"
	"fmt"
	"time"
)

type sessionKey string

const (
	SessionKeyGuest = sessionKey("guest")
)

func (s sessionKey) String() string {
	return string(s)
}

const (
	sessionOrdersTTL = 30 * 24 * time.Hour
	sessionOrdersMax = 50
)

func sessionOrdersKey(sessionID string) string {
	return fmt.Sprintf("session_orders:%s", sessionID)
}

// recordSessionOrder indexes an order id under the current session so
// GET /order can list it back. The index is capped and expires; the ledger
// itself stays the source of truth.
func (app *Application) recordSessionOrder(ctx context.Context, sessionID, orderID string) error {
	if app.redis == nil {
		return nil
	}

	key := sessionOrdersKey(sessionID)

	pipe := app.redis.TxPipeline()
	pipe.LPush(ctx, key, orderID)
	pipe.LTrim(ctx, key, 0, sessionOrdersMax-1)
	pipe.Expire(ctx, key, sessionOrdersTTL)

	_, err := pipe.Exec(ctx)

	return err
}

func (app *Application) sessionOrderIds(ctx context.Context, sessionID string) ([]string, error) {
	if app.redis == nil {
		return nil, nil
	}

	return app.redis.LRange(ctx, sessionOrdersKey(sessionID), 0, -1).Result()
}
