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

// AirportHandler serves the airport routes plus the nested terminal and
// runway collections.
type AirportHandler struct {
	Orch  *submit.Orchestrator
	Snap  *snapshot.Store
	Store *store.Airports
	Log   *logrus.Logger
}

// List handles GET /v1/aeropuertos.
func (h *AirportHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	list, err := h.Store.List(ctx)
	if err != nil {
		h.Log.WithError(err).Warn("airport list fetch failed, serving snapshot")
		return c.JSON(http.StatusOK, h.Snap.Airports())
	}
	h.Snap.SetAirports(ctx, list)
	return c.JSON(http.StatusOK, list)
}

// Create handles POST /v1/aeropuertos.
func (h *AirportHandler) Create(c echo.Context) error {
	var d model.AirportDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitAirport(c.Request().Context(), d, false, 0)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// Update handles PUT /v1/aeropuertos/:id.
func (h *AirportHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var d model.AirportDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitAirport(c.Request().Context(), d, true, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /v1/aeropuertos/:id.
func (h *AirportHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Orch.DeleteAirport(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTerminals handles GET /v1/aeropuertos/:id/terminales. Selecting an
// airport refreshes its terminal slot; a failed fetch serves an empty list
// rather than failing the page, and the slot keeps its previous content.
func (h *AirportHandler) ListTerminals(c echo.Context) error {
	airportID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	list, err := h.Store.Terminals(ctx, airportID)
	if err != nil {
		h.Log.WithError(err).WithField("aeropuerto_id", airportID).Warn("terminal fetch failed")
		return c.JSON(http.StatusOK, []model.Terminal{})
	}
	h.Snap.SetTerminals(ctx, airportID, list)
	return c.JSON(http.StatusOK, list)
}

// CreateTerminal handles POST /v1/aeropuertos/:id/terminales.
func (h *AirportHandler) CreateTerminal(c echo.Context) error {
	airportID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var d model.TerminalDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitTerminal(c.Request().Context(), airportID, d, false, 0)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// UpdateTerminal handles PUT /v1/aeropuertos/:id/terminales/:tid.
func (h *AirportHandler) UpdateTerminal(c echo.Context) error {
	airportID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tid, err := pathID(c, "tid")
	if err != nil {
		return err
	}
	var d model.TerminalDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitTerminal(c.Request().Context(), airportID, d, true, tid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteTerminal handles DELETE /v1/aeropuertos/:id/terminales/:tid.
func (h *AirportHandler) DeleteTerminal(c echo.Context) error {
	airportID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tid, err := pathID(c, "tid")
	if err != nil {
		return err
	}
	if err := h.Orch.DeleteTerminal(c.Request().Context(), airportID, tid); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRunways handles GET /v1/aeropuertos/:id/pistas.
func (h *AirportHandler) ListRunways(c echo.Context) error {
	airportID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	list, err := h.Store.Runways(ctx, airportID)
	if err != nil {
		h.Log.WithError(err).WithField("aeropuerto_id", airportID).Warn("runway fetch failed")
		return c.JSON(http.StatusOK, []model.Runway{})
	}
	h.Snap.SetRunways(ctx, airportID, list)
	return c.JSON(http.StatusOK, list)
}

// CreateRunway handles POST /v1/aeropuertos/:id/pistas.
func (h *AirportHandler) CreateRunway(c echo.Context) error {
	airportID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var d model.RunwayDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitRunway(c.Request().Context(), airportID, d, false, 0)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// UpdateRunway handles PUT /v1/aeropuertos/:id/pistas/:rid.
func (h *AirportHandler) UpdateRunway(c echo.Context) error {
	airportID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rid, err := pathID(c, "rid")
	if err != nil {
		return err
	}
	var d model.RunwayDraft
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	saved, err := h.Orch.SubmitRunway(c.Request().Context(), airportID, d, true, rid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteRunway handles DELETE /v1/aeropuertos/:id/pistas/:rid.
func (h *AirportHandler) DeleteRunway(c echo.Context) error {
	airportID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rid, err := pathID(c, "rid")
	if err != nil {
		return err
	}
	if err := h.Orch.DeleteRunway(c.Request().Context(), airportID, rid); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
