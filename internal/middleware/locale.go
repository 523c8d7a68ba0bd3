package middleware

import (
  "github.com/gin-gonic/gin"

  "github.com/lumenlearn/content-backend/internal/locales"
  "github.com/lumenlearn/content-backend/internal/logger"
)

const LocaleKey = "requested_locale"

type LocaleMiddleware struct {
  log      *logger.Logger
  registry *locales.Registry
}

func NewLocaleMiddleware(log *logger.Logger, registry *locales.Registry) *LocaleMiddleware {
  return &LocaleMiddleware{log: log.With("middleware", "LocaleMiddleware"), registry: registry}
}

// ResolveLocale stores the negotiated locale code on the request context.
// An explicit ?locale= beats Accept-Language; both fall back to the default.
func (m *LocaleMiddleware) ResolveLocale() gin.HandlerFunc {
  return func(c *gin.Context) {
    if q := c.Query("locale"); q != "" && m.registry.Has(q) {
      c.Set(LocaleKey, q)
      c.Next()
      return
    }
    matched := m.registry.Match(c.GetHeader("Accept-Language"))
    c.Set(LocaleKey, matched.Code)
    c.Next()
  }
}

// RequestedLocale reads the locale stashed by ResolveLocale.
func RequestedLocale(c *gin.Context, registry *locales.Registry) string {
  if v, ok := c.Get(LocaleKey); ok {
    if code, ok := v.(string); ok && code != "" {
      return code
    }
  }
  return registry.Default().Code
}
