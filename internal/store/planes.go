package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aerogestion/aerogate/internal/model"
)

// Planes is the client of the fleet service.
type Planes struct {
	c *Client
}

func NewPlanes(c *Client) *Planes { return &Planes{c: c} }

func (p *Planes) List(ctx context.Context) ([]model.Plane, error) {
	var out []model.Plane
	if err := p.c.do(ctx, http.MethodGet, "/api/v1/aviones", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Planes) Create(ctx context.Context, in model.Plane) (model.Plane, error) {
	var out model.Plane
	if err := p.c.do(ctx, http.MethodPost, "/api/v1/aviones", in, &out); err != nil {
		return model.Plane{}, err
	}
	return out, nil
}

func (p *Planes) Update(ctx context.Context, id int, in model.Plane) (model.Plane, error) {
	var out model.Plane
	if err := p.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/aviones/%d", id), in, &out); err != nil {
		return model.Plane{}, err
	}
	return out, nil
}

func (p *Planes) Delete(ctx context.Context, id int) error {
	return p.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/aviones/%d", id), nil, nil)
}
