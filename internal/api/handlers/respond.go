package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/wonny/finlens/internal/contracts"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) int {
	var missing *contracts.MissingFieldError
	var upstream *contracts.UpstreamFetchError
	var narrative *contracts.NarrativeGenerationError

	switch {
	case errors.Is(err, contracts.ErrMissingSymbol), errors.Is(err, contracts.ErrMissingCredential):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrNoData), errors.As(err, &missing):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstream), errors.As(err, &narrative):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns the text shown to the user for err
func userMessage(err error) string {
	if contracts.IsUserFacing(err) {
		return err.Error()
	}
	return "Unexpected error, please try again"
}
