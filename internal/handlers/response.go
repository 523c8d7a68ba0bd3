package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/lumenlearn/content-backend/internal/apperr"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
  Locale  string `json:"locale,omitempty"`
  Field   string `json:"field,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

// RespondAppError maps the error taxonomy onto HTTP statuses: validation is
// the author's to fix (422, with the offending locale/field), configuration
// is fatal (500), persistence is retryable (502).
func RespondAppError(c *gin.Context, err error) {
  var ve *apperr.ValidationError
  if errors.As(err, &ve) {
    c.JSON(http.StatusUnprocessableEntity, ErrorEnvelope{
      Error: APIError{
        Message: ve.Error(),
        Code:    "validation_failed",
        Locale:  ve.Locale,
        Field:   ve.Field,
      },
    })
    return
  }
  var ce *apperr.ConfigurationError
  if errors.As(err, &ce) {
    RespondError(c, http.StatusInternalServerError, "configuration_error", err)
    return
  }
  var pe *apperr.PersistenceError
  if errors.As(err, &pe) {
    RespondError(c, http.StatusBadGateway, "persistence_failed", err)
    return
  }
  RespondError(c, http.StatusBadRequest, "bad_request", err)
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
