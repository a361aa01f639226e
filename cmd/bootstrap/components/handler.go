package components

import (
	"availability-engine/internal/handler"
	"availability-engine/internal/handler/api"
	"availability-engine/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewHoldHandler,
		api.NewBookingRequestHandler,
		api.NewSlotHandler,
		api.NewAvailabilityHandler,
		api.NewHealthHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Hold           *api.HoldHandler
	BookingRequest *api.BookingRequestHandler
	Slot           *api.SlotHandler
	Availability   *api.AvailabilityHandler
	Health         *api.HealthHandler
}

func newHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Hold:           p.Hold,
		BookingRequest: p.BookingRequest,
		Slot:           p.Slot,
		Availability:   p.Availability,
		Health:         p.Health,
	}
}
