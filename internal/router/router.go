// Package router wires the HTTP surface: health and login are open, every
// data route runs behind the session guard.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/aerogestion/aerogate/internal/handler"
	"github.com/aerogestion/aerogate/internal/middleware"
	"github.com/aerogestion/aerogate/internal/session"
)

// Handlers groups everything the route table needs.
type Handlers struct {
	Auth         *handler.AuthHandler
	Planes       *handler.PlaneHandler
	Airports     *handler.AirportHandler
	Flights      *handler.FlightHandler
	Stopovers    *handler.StopoverHandler
	Passengers   *handler.PassengerHandler
	Reservations *handler.ReservationHandler
}

// Register mounts every route on e.
func Register(e *echo.Echo, h Handlers, sess *session.Session, jwtSecret string, log *logrus.Logger) {
	e.Use(middleware.RequestLogger(log))

	e.GET("/healthz", handler.Health)
	e.POST("/v1/auth/login", h.Auth.Login)
	e.POST("/v1/auth/logout", h.Auth.Logout)

	g := e.Group("/v1")
	g.Use(middleware.RequireSession(sess, jwtSecret))

	g.GET("/me", h.Auth.Me)

	g.GET("/aviones", h.Planes.List)
	g.POST("/aviones", h.Planes.Create)
	g.PUT("/aviones/:id", h.Planes.Update)
	g.DELETE("/aviones/:id", h.Planes.Delete)

	g.GET("/aeropuertos", h.Airports.List)
	g.POST("/aeropuertos", h.Airports.Create)
	g.PUT("/aeropuertos/:id", h.Airports.Update)
	g.DELETE("/aeropuertos/:id", h.Airports.Delete)

	g.GET("/aeropuertos/:id/terminales", h.Airports.ListTerminals)
	g.POST("/aeropuertos/:id/terminales", h.Airports.CreateTerminal)
	g.PUT("/aeropuertos/:id/terminales/:tid", h.Airports.UpdateTerminal)
	g.DELETE("/aeropuertos/:id/terminales/:tid", h.Airports.DeleteTerminal)

	g.GET("/aeropuertos/:id/pistas", h.Airports.ListRunways)
	g.POST("/aeropuertos/:id/pistas", h.Airports.CreateRunway)
	g.PUT("/aeropuertos/:id/pistas/:rid", h.Airports.UpdateRunway)
	g.DELETE("/aeropuertos/:id/pistas/:rid", h.Airports.DeleteRunway)

	g.GET("/vuelos", h.Flights.List)
	g.POST("/vuelos", h.Flights.Create)
	g.PUT("/vuelos/:id", h.Flights.Update)
	g.DELETE("/vuelos/:id", h.Flights.Delete)

	g.GET("/escalas", h.Stopovers.List)
	g.POST("/escalas", h.Stopovers.Create)
	g.PUT("/escalas/:id", h.Stopovers.Update)
	g.DELETE("/escalas/:id", h.Stopovers.Delete)

	g.GET("/pasajeros", h.Passengers.List)
	g.POST("/pasajeros", h.Passengers.Create)
	g.PUT("/pasajeros/:id", h.Passengers.Update)
	g.DELETE("/pasajeros/:id", h.Passengers.Delete)

	g.GET("/reservas", h.Reservations.List)
	g.GET("/reservas/pasajero/:id", h.Reservations.ByPassenger)
	g.POST("/reservas", h.Reservations.Create)
	g.PUT("/reservas/:id", h.Reservations.Update)
	g.DELETE("/reservas/:id", h.Reservations.Delete)
}
