package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"radiochild/repwizard"
)

type Handler struct {
	env    *repwizard.Env
	logger *zap.SugaredLogger
}

func NewHandler(env *repwizard.Env, logger *zap.SugaredLogger) *Handler {
	return &Handler{env: env, logger: logger}
}

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok", nil) })

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Get("/catalog", handler.getCatalog)
		r.Get("/operators/{type}", handler.getOperators)
		r.Post("/wizard/detect", handler.detectStep)
		r.Get("/wizard/{step}", handler.viewStep)
		r.Post("/wizard/{step}", handler.submitStep)
	})
	return r
}
