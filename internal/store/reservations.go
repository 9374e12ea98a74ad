package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aerogestion/aerogate/internal/model"
)

// Reservations is the client of the reservation service.
type Reservations struct {
	c *Client
}

func NewReservations(c *Client) *Reservations { return &Reservations{c: c} }

func (r *Reservations) List(ctx context.Context) ([]model.Reservation, error) {
	var out []model.Reservation
	if err := r.c.do(ctx, http.MethodGet, "/api/v1/reservas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByPassenger lists the reservations belonging to one passenger.
func (r *Reservations) ByPassenger(ctx context.Context, passengerID int) ([]model.Reservation, error) {
	var out []model.Reservation
	path := fmt.Sprintf("/api/v1/reservas/pasajero/%d", passengerID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Reservations) Create(ctx context.Context, in model.Reservation) (model.Reservation, error) {
	var out model.Reservation
	if err := r.c.do(ctx, http.MethodPost, "/api/v1/reservas", in, &out); err != nil {
		return model.Reservation{}, err
	}
	return out, nil
}

func (r *Reservations) Update(ctx context.Context, id int, in model.Reservation) (model.Reservation, error) {
	var out model.Reservation
	if err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/reservas/%d", id), in, &out); err != nil {
		return model.Reservation{}, err
	}
	return out, nil
}

func (r *Reservations) Delete(ctx context.Context, id int) error {
	return r.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/reservas/%d", id), nil, nil)
}
