package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aerogestion/aerogate/internal/model"
)

// Airports is the client of the airport service, including the nested
// terminal and runway collections.
type Airports struct {
	c *Client
}

func NewAirports(c *Client) *Airports { return &Airports{c: c} }

func (a *Airports) List(ctx context.Context) ([]model.Airport, error) {
	var out []model.Airport
	if err := a.c.do(ctx, http.MethodGet, "/api/v1/aeropuertos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Airports) Create(ctx context.Context, in model.Airport) (model.Airport, error) {
	var out model.Airport
	if err := a.c.do(ctx, http.MethodPost, "/api/v1/aeropuertos", in, &out); err != nil {
		return model.Airport{}, err
	}
	return out, nil
}

func (a *Airports) Update(ctx context.Context, id int, in model.Airport) (model.Airport, error) {
	var out model.Airport
	if err := a.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/aeropuertos/%d", id), in, &out); err != nil {
		return model.Airport{}, err
	}
	return out, nil
}

func (a *Airports) Delete(ctx context.Context, id int) error {
	return a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/aeropuertos/%d", id), nil, nil)
}

func (a *Airports) Terminals(ctx context.Context, airportID int) ([]model.Terminal, error) {
	var out []model.Terminal
	path := fmt.Sprintf("/api/v1/aeropuertos/%d/terminales", airportID)
	if err := a.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Airports) CreateTerminal(ctx context.Context, airportID int, in model.Terminal) (model.Terminal, error) {
	var out model.Terminal
	path := fmt.Sprintf("/api/v1/aeropuertos/%d/terminales", airportID)
	if err := a.c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return model.Terminal{}, err
	}
	return out, nil
}

func (a *Airports) UpdateTerminal(ctx context.Context, airportID, id int, in model.Terminal) (model.Terminal, error) {
	var out model.Terminal
	path := fmt.Sprintf("/api/v1/aeropuertos/%d/terminales/%d", airportID, id)
	if err := a.c.do(ctx, http.MethodPut, path, in, &out); err != nil {
		return model.Terminal{}, err
	}
	return out, nil
}

func (a *Airports) DeleteTerminal(ctx context.Context, airportID, id int) error {
	return a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/aeropuertos/%d/terminales/%d", airportID, id), nil, nil)
}

func (a *Airports) Runways(ctx context.Context, airportID int) ([]model.Runway, error) {
	var out []model.Runway
	path := fmt.Sprintf("/api/v1/aeropuertos/%d/pistas", airportID)
	if err := a.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Airports) CreateRunway(ctx context.Context, airportID int, in model.Runway) (model.Runway, error) {
	var out model.Runway
	path := fmt.Sprintf("/api/v1/aeropuertos/%d/pistas", airportID)
	if err := a.c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return model.Runway{}, err
	}
	return out, nil
}

func (a *Airports) UpdateRunway(ctx context.Context, airportID, id int, in model.Runway) (model.Runway, error) {
	var out model.Runway
	path := fmt.Sprintf("/api/v1/aeropuertos/%d/pistas/%d", airportID, id)
	if err := a.c.do(ctx, http.MethodPut, path, in, &out); err != nil {
		return model.Runway{}, err
	}
	return out, nil
}

func (a *Airports) DeleteRunway(ctx context.Context, airportID, id int) error {
	return a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/aeropuertos/%d/pistas/%d", airportID, id), nil, nil)
}
