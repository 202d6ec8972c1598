package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"product-catalog-service/pkg/e"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor traduce los errores del servicio a códigos HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, e.ErrValidation),
		errors.Is(err, e.ErrInvalidField),
		errors.Is(err, e.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError escribe el error como JSON; los 5xx se registran y no exponen detalles
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(status, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// badRequest responde 400 para errores de binding o de parámetros
func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
