package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/catalog"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// classify maps an evaluation error to its HTTP status and a short kind.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, calc.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, calc.ErrInvalidCombination):
		return http.StatusBadRequest, "invalid_combination"
	case errors.Is(err, calc.ErrInvalidVariant):
		return http.StatusBadRequest, "invalid_variant"
	case errors.Is(err, catalog.ErrOutOfRange):
		return http.StatusBadRequest, "out_of_range"
	case errors.Is(err, catalog.ErrBadArgument):
		return http.StatusBadRequest, "bad_argument"
	case errors.Is(err, calc.ErrDomain):
		return http.StatusUnprocessableEntity, "domain"
	}
	return http.StatusInternalServerError, "internal"
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	_ = writeJSON(w, status, errorBody{Error: msg, Kind: kind})
}
