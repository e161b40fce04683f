package httpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/shop-backend/internal/logging"
	authmw "github.com/avolkov/shop-backend/internal/middleware/auth"
	"github.com/avolkov/shop-backend/internal/mykafka"
)

func GetID(c echo.Context) (uint, error) {
	id, ok := c.Get(authmw.ContextUserID).(uint)
	if !ok || id == 0 {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}

func IsAdmin(c echo.Context) bool {
	isAdmin, _ := c.Get(authmw.ContextIsAdmin).(bool)
	return isAdmin
}

// publish emits a domain event after a successful mutation. Failures are
// logged, never propagated: the request already succeeded.
func publish(c echo.Context, p *mykafka.Producer, topic string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
