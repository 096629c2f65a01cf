package router

import (
	"net/http"

	"country-service/internal/domain"
	hrest "country-service/internal/handler/rest"
	mw "country-service/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	Field       domain.Field
	CORSEnabled bool
	// RateLimit wraps the lookup route when set.
	RateLimit func(http.Handler) http.Handler
	Logger    *zap.Logger
}

func SetupRoutes(r chi.Router, h *hrest.CountryHandler, opts Options) chi.Router {
	// ---- Global Middleware ----
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.Metrics)

	if opts.CORSEnabled {
		r.Use(mw.CORS())
	}

	// return 200 for health check
	r.Get("/", h.HandleHealth)
	r.Head("/", h.HandleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(lr chi.Router) {
		if opts.RateLimit != nil {
			lr.Use(opts.RateLimit)
		}
		mountLookup(lr, h, opts.Field)
	})

	return r
}

func mountLookup(r chi.Router, h *hrest.CountryHandler, field domain.Field) {
	var handler http.HandlerFunc
	switch {
	case field == domain.FieldList:
		r.Get(field.Route(), h.HandleListCountries)
		return
	case field == domain.FieldName:
		handler = h.HandleGetCountry
	case field.Scalar():
		handler = h.HandleGetField(field)
	default:
		return
	}

	r.Get(field.Route()+"/{name}", handler)
	if legacy := field.LegacyRoute(); legacy != "" {
		r.Get(legacy+"/{name}", handler)
	}
}
