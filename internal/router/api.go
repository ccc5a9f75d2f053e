package router

import (
	"net/http"

	"github.com/deppfellow/frontdesk/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerProviderRoutes(g *echo.Group, h *handler.ProviderHandler) {
	g.POST("", handler.Handle(h.Handler, h.RegisterProvider, http.StatusCreated, &handler.CreateProviderRequest{}))
	g.GET("", handler.Handle(h.Handler, h.ListProviders, http.StatusOK, &handler.ListProvidersRequest{}))
	g.GET("/:id", handler.Handle(h.Handler, h.GetProvider, http.StatusOK, &handler.ProviderIDRequest{}))
	g.PATCH("/:id", handler.Handle(h.Handler, h.UpdateProvider, http.StatusOK, &handler.UpdateProviderRequest{}))
	g.DELETE("/:id", handler.HandleNoContent(h.Handler, h.DeleteProvider, http.StatusNoContent, &handler.ProviderIDRequest{}))
}

func registerBookingRoutes(g *echo.Group, h *handler.BookingHandler) {
	g.POST("", handler.Handle(h.Handler, h.CreateBooking, http.StatusCreated, &handler.CreateBookingRequest{}))
	g.GET("", handler.Handle(h.Handler, h.ListBookings, http.StatusOK, &handler.ListBookingsRequest{}))
	g.GET("/:id", handler.Handle(h.Handler, h.GetBooking, http.StatusOK, &handler.BookingIDRequest{}))
	g.PATCH("/:id", handler.Handle(h.Handler, h.UpdateBooking, http.StatusOK, &handler.UpdateBookingRequest{}))
	g.POST("/:id/cancel", handler.Handle(h.Handler, h.CancelBooking, http.StatusOK, &handler.BookingIDRequest{}))
	g.DELETE("/:id", handler.HandleNoContent(h.Handler, h.DeleteBooking, http.StatusNoContent, &handler.BookingIDRequest{}))
}
