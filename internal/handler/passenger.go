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

// PassengerHandler serves the passenger routes.
type PassengerHandler struct {
	Orch  *submit.Orchestrator
	Snap  *snapshot.Store
	Store *store.Passengers
	Log   *logrus.Logger
}

// List handles GET /v1/pasajeros.
func (h *PassengerHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	list, err := h.Store.List(ctx)
	if err != nil {
		h.Log.WithError(err).Warn("passenger list fetch failed, serving snapshot")
		return c.JSON(http.StatusOK, h.Snap.Passengers())
	}
	h.Snap.SetPassengers(ctx, list)
	return c.JSON(http.StatusOK, list)
}

// Create handles POST /v1/pasajeros.
func (h *PassengerHandler) Create(c echo.Context) error {
	var d model.PassengerDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitPassenger(c.Request().Context(), d, false, 0)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// Update handles PUT /v1/pasajeros/:id.
func (h *PassengerHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var d model.PassengerDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitPassenger(c.Request().Context(), d, true, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /v1/pasajeros/:id.
func (h *PassengerHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Orch.DeletePassenger(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
