package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/aerogestion/aerogate/internal/config"
	"github.com/aerogestion/aerogate/internal/handler"
	"github.com/aerogestion/aerogate/internal/logger"
	"github.com/aerogestion/aerogate/internal/queue"
	"github.com/aerogestion/aerogate/internal/router"
	"github.com/aerogestion/aerogate/internal/session"
	"github.com/aerogestion/aerogate/internal/snapshot"
	"github.com/aerogestion/aerogate/internal/store"
	"github.com/aerogestion/aerogate/internal/submit"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Setup(cfg.LogFile, cfg.LogLevel)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, snapshots are memory-only")
	}
	snap := snapshot.New(rdb, cfg.SnapshotTTL, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	snap.Warm(ctx)
	cancel()

	sess := session.New(store.NewAuth(store.NewClient(cfg.PassengerServiceURL, cfg.HTTPTimeout, nil, log)), log)

	clients := submit.Clients{
		Planes:       store.NewPlanes(store.NewClient(cfg.PlaneServiceURL, cfg.HTTPTimeout, sess, log)),
		Airports:     store.NewAirports(store.NewClient(cfg.AirportServiceURL, cfg.HTTPTimeout, sess, log)),
		Flights:      store.NewFlights(store.NewClient(cfg.FlightServiceURL, cfg.HTTPTimeout, sess, log)),
		Stopovers:    store.NewStopovers(store.NewClient(cfg.StopoverServiceURL, cfg.HTTPTimeout, sess, log)),
		Passengers:   store.NewPassengers(store.NewClient(cfg.PassengerServiceURL, cfg.HTTPTimeout, sess, log)),
		Reservations: store.NewReservations(store.NewClient(cfg.ReservationServiceURL, cfg.HTTPTimeout, sess, log)),
	}

	pub := queue.NewPublisher(cfg.AMQPURL, log)
	defer pub.Close()
	go queue.StartAuditConsumer(cfg.AMQPURL, cfg.AuditFile, log)

	orch := submit.New(snap, clients, sess, pub, log)

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(sess),
		Planes:       &handler.PlaneHandler{Orch: orch, Snap: snap, Store: clients.Planes, Log: log},
		Airports:     &handler.AirportHandler{Orch: orch, Snap: snap, Store: clients.Airports, Log: log},
		Flights:      &handler.FlightHandler{Orch: orch, Snap: snap, Store: clients.Flights, Log: log},
		Stopovers:    &handler.StopoverHandler{Orch: orch, Snap: snap, Store: clients.Stopovers, Log: log},
		Passengers:   &handler.PassengerHandler{Orch: orch, Snap: snap, Store: clients.Passengers, Log: log},
		Reservations: &handler.ReservationHandler{Orch: orch, Snap: snap, Store: clients.Reservations, Log: log},
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, sess, cfg.JWTSecret, log)

	addr := ":" + cfg.Port
	log.WithField("env", cfg.Env).Infof("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
