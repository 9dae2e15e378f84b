package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/whatis/internal/handlers"
	"github.com/GregMSThompson/whatis/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(lm.LoggerMiddleware)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)

	wh := handlers.NewWhatisHandlers(deps)

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", wh.WhatisRoutes())
	return r
}
