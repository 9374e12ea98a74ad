package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aerogestion/aerogate/internal/model"
)

// Passengers is the client of the passenger service.
type Passengers struct {
	c *Client
}

func NewPassengers(c *Client) *Passengers { return &Passengers{c: c} }

func (p *Passengers) List(ctx context.Context) ([]model.Passenger, error) {
	var out []model.Passenger
	if err := p.c.do(ctx, http.MethodGet, "/api/v1/pasajeros", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Passengers) Create(ctx context.Context, in model.Passenger) (model.Passenger, error) {
	var out model.Passenger
	if err := p.c.do(ctx, http.MethodPost, "/api/v1/pasajeros", in, &out); err != nil {
		return model.Passenger{}, err
	}
	return out, nil
}

func (p *Passengers) Update(ctx context.Context, id int, in model.Passenger) (model.Passenger, error) {
	var out model.Passenger
	if err := p.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/pasajeros/%d", id), in, &out); err != nil {
		return model.Passenger{}, err
	}
	return out, nil
}

func (p *Passengers) Delete(ctx context.Context, id int) error {
	return p.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/pasajeros/%d", id), nil, nil)
}
