package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kenawards/reg-membership-service/internal/config"
	"github.com/kenawards/reg-membership-service/internal/interaction"
	"github.com/kenawards/reg-membership-service/internal/restapi/middleware"
	v1health "github.com/kenawards/reg-membership-service/internal/restapi/v1/health"
	v1members "github.com/kenawards/reg-membership-service/internal/restapi/v1/members"
	v1payments "github.com/kenawards/reg-membership-service/internal/restapi/v1/payments"
	v1registrations "github.com/kenawards/reg-membership-service/internal/restapi/v1/registrations"
)

func NewServer(ctx context.Context, conf *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", conf.BaseAddress, conf.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(conf.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(conf.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(conf.IdleTimeout) * time.Second,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
}

func CreateRouter(i interaction.Interactor, conf *config.Application) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestIdMiddleware())
	router.Use(middleware.LogRequestIdMiddleware())
	router.Use(middleware.CorsHeadersMiddleware(conf.Security.Cors))

	v1health.Create(router)

	router.Route("/api", func(r chi.Router) {
		v1registrations.Create(r, i)
		v1payments.Create(r, i, &conf.Security)
		v1members.Create(r, i, &conf.Security)
	})

	return router
}
