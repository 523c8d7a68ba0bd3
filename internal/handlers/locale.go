package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/lumenlearn/content-backend/internal/locales"
)

type LocaleHandler struct {
  registry *locales.Registry
}

func NewLocaleHandler(registry *locales.Registry) *LocaleHandler {
  return &LocaleHandler{registry: registry}
}

// GET /api/locales
func (h *LocaleHandler) List(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{
    "locales": h.registry.List(),
    "default": h.registry.Default().Code,
  })
}
