package hrest

import (
	"errors"
	"net/http"
	"net/url"

	"country-service/internal/domain"
	"country-service/internal/usecase"
	"country-service/pkg/response"
	xerrors "country-service/pkg/xerrors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CountryHandler holds usecases and dependencies
type CountryHandler struct {
	uc     *usecase.CountryUsecase
	logger *zap.Logger
}

// NewCountryHandler initializes a new handler
func NewCountryHandler(uc *usecase.CountryUsecase, logger *zap.Logger) *CountryHandler {
	return &CountryHandler{
		uc:     uc,
		logger: logger,
	}
}

type countryList struct {
	Countries []domain.Country `json:"countries"`
}

// HandleHealth answers liveness probes regardless of the dataset.
func (h *CountryHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response.Empty(w, http.StatusOK)
}

// HandleGetField serves one scalar field of a country as plain text.
func (h *CountryHandler) HandleGetField(field domain.Field) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := countryName(r)

		value, err := h.uc.GetField(r.Context(), name, field)
		if err != nil {
			h.writeError(w, err, zap.String("country", name), zap.String("field", string(field)))
			return
		}
		response.Text(w, http.StatusOK, value)
	}
}

func (h *CountryHandler) HandleGetCountry(w http.ResponseWriter, r *http.Request) {
	name := countryName(r)

	country, err := h.uc.GetCountry(r.Context(), name)
	if err != nil {
		h.writeError(w, err, zap.String("country", name))
		return
	}
	response.JSON(w, http.StatusOK, country)
}

func (h *CountryHandler) HandleListCountries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	countries, err := h.uc.ListCountries(r.Context(), q.Get("gt"), q.Get("lt"))
	if err != nil {
		h.writeError(w, err, zap.String("gt", q.Get("gt")), zap.String("lt", q.Get("lt")))
		return
	}
	response.JSON(w, http.StatusOK, countryList{Countries: countries})
}

func (h *CountryHandler) writeError(w http.ResponseWriter, err error, fields ...zap.Field) {
	var paramErr *xerrors.ParamError
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		response.Error(w, http.StatusNotFound, "country not found")
	case errors.As(err, &paramErr):
		response.Error(w, http.StatusBadRequest, paramErr.Error())
	case errors.Is(err, xerrors.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "invalid request")
	default:
		h.logger.Error("country lookup failed", append(fields, zap.Error(err))...)
		response.Error(w, http.StatusInternalServerError, "failed to fetch country")
	}
}

// countryName returns the decoded {name} segment. chi matches on RawPath when
// it is set, and the param is still escaped in that case only.
func countryName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
