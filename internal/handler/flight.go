package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/aerogestion/aerogate/internal/model"
	"github.com/aerogestion/aerogate/internal/snapshot"
	"github.com/aerogestion/aerogate/internal/store"
	"github.com/aerogestion/aerogate/internal/submit"
)

// FlightHandler serves the flight routes.
type FlightHandler struct {
	Orch  *submit.Orchestrator
	Snap  *snapshot.Store
	Store *store.Flights
	Log   *logrus.Logger
}

// List handles GET /v1/vuelos.
func (h *FlightHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	list, err := h.Store.List(ctx)
	if err != nil {
		h.Log.WithError(err).Warn("flight list fetch failed, serving snapshot")
		return c.JSON(http.StatusOK, h.Snap.Flights())
	}
	h.Snap.SetFlights(ctx, list)
	return c.JSON(http.StatusOK, list)
}

// Create handles POST /v1/vuelos.
func (h *FlightHandler) Create(c echo.Context) error {
	var d model.FlightDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitFlight(c.Request().Context(), d, false, 0)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// Update handles PUT /v1/vuelos/:id.
func (h *FlightHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var d model.FlightDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitFlight(c.Request().Context(), d, true, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /v1/vuelos/:id.
func (h *FlightHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Orch.DeleteFlight(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
