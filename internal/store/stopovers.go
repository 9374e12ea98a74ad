package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aerogestion/aerogate/internal/model"
)

// Stopovers is the client of the stopover service.
type Stopovers struct {
	c *Client
}

func NewStopovers(c *Client) *Stopovers { return &Stopovers{c: c} }

func (s *Stopovers) List(ctx context.Context) ([]model.Stopover, error) {
	var out []model.Stopover
	if err := s.c.do(ctx, http.MethodGet, "/api/v1/escalas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Stopovers) Create(ctx context.Context, in model.Stopover) (model.Stopover, error) {
	var out model.Stopover
	if err := s.c.do(ctx, http.MethodPost, "/api/v1/escalas", in, &out); err != nil {
		return model.Stopover{}, err
	}
	return out, nil
}

func (s *Stopovers) Update(ctx context.Context, id int, in model.Stopover) (model.Stopover, error) {
	var out model.Stopover
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/escalas/%d", id), in, &out); err != nil {
		return model.Stopover{}, err
	}
	return out, nil
}

func (s *Stopovers) Delete(ctx context.Context, id int) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/escalas/%d", id), nil, nil)
}
