package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aerogestion/aerogate/internal/model"
)

// Flights is the client of the flight service.
type Flights struct {
	c *Client
}

func NewFlights(c *Client) *Flights { return &Flights{c: c} }

func (f *Flights) List(ctx context.Context) ([]model.Flight, error) {
	var out []model.Flight
	if err := f.c.do(ctx, http.MethodGet, "/api/v1/vuelos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Flights) Create(ctx context.Context, in model.Flight) (model.Flight, error) {
	var out model.Flight
	if err := f.c.do(ctx, http.MethodPost, "/api/v1/vuelos", in, &out); err != nil {
		return model.Flight{}, err
	}
	return out, nil
}

func (f *Flights) Update(ctx context.Context, id int, in model.Flight) (model.Flight, error) {
	var out model.Flight
	if err := f.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/vuelos/%d", id), in, &out); err != nil {
		return model.Flight{}, err
	}
	return out, nil
}

func (f *Flights) Delete(ctx context.Context, id int) error {
	return f.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/vuelos/%d", id), nil, nil)
}
