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

// PlaneHandler serves the fleet routes.
type PlaneHandler struct {
	Orch  *submit.Orchestrator
	Snap  *snapshot.Store
	Store *store.Planes
	Log   *logrus.Logger
}

// List handles GET /v1/aviones. A fresh fetch replaces the snapshot slot;
// when the fleet service is down the last snapshot is served instead.
func (h *PlaneHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	list, err := h.Store.List(ctx)
	if err != nil {
		h.Log.WithError(err).Warn("plane list fetch failed, serving snapshot")
		return c.JSON(http.StatusOK, h.Snap.Planes())
	}
	h.Snap.SetPlanes(ctx, list)
	return c.JSON(http.StatusOK, list)
}

// Create handles POST /v1/aviones.
func (h *PlaneHandler) Create(c echo.Context) error {
	var d model.PlaneDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitPlane(c.Request().Context(), d, false, 0)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// Update handles PUT /v1/aviones/:id.
func (h *PlaneHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var d model.PlaneDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitPlane(c.Request().Context(), d, true, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /v1/aviones/:id.
func (h *PlaneHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Orch.DeletePlane(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
