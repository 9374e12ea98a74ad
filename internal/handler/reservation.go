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

// ReservationHandler serves the reservation routes.
type ReservationHandler struct {
	Orch  *submit.Orchestrator
	Snap  *snapshot.Store
	Store *store.Reservations
	Log   *logrus.Logger
}

// List handles GET /v1/reservas.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	list, err := h.Store.List(ctx)
	if err != nil {
		h.Log.WithError(err).Warn("reservation list fetch failed, serving snapshot")
		return c.JSON(http.StatusOK, h.Snap.Reservations())
	}
	h.Snap.SetReservations(ctx, list)
	return c.JSON(http.StatusOK, list)
}

// ByPassenger handles GET /v1/reservas/pasajero/:id.
func (h *ReservationHandler) ByPassenger(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	list, err := h.Store.ByPassenger(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Create handles POST /v1/reservas. An empty confirmation code is assigned
// during normalization before dispatch.
func (h *ReservationHandler) Create(c echo.Context) error {
	var d model.ReservationDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitReservation(c.Request().Context(), d, false, 0)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// Update handles PUT /v1/reservas/:id.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var d model.ReservationDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitReservation(c.Request().Context(), d, true, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /v1/reservas/:id.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Orch.DeleteReservation(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
