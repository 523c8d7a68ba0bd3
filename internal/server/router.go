package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/lumenlearn/content-backend/internal/handlers"
  "github.com/lumenlearn/content-backend/internal/middleware"
)

type RouterConfig struct {
  LocaleMiddleware  *middleware.LocaleMiddleware
  LocaleHandler     *handlers.LocaleHandler
  EditorHandler     *handlers.EditorHandler
  LessonViewHandler *handlers.LessonViewHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "Accept-Language"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  api.Use(cfg.LocaleMiddleware.ResolveLocale())
  {
    // Locales
    api.GET("/locales", cfg.LocaleHandler.List)
    // Authoring
    api.POST("/modules/:id/lessons", cfg.EditorHandler.CreateLesson)
    api.GET("/lessons/:id/editor", cfg.EditorHandler.OpenEditor)
    api.PUT("/lessons/:id", cfg.EditorHandler.SaveLesson)
    // Rendering
    api.GET("/lessons/:id", cfg.LessonViewHandler.GetLesson)
    api.GET("/modules/:id/lessons", cfg.LessonViewHandler.ListLessonsForModule)
  }

  return router
}
