package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/lumenlearn/content-backend/internal/logger"
  "github.com/lumenlearn/content-backend/internal/utils"
  "github.com/lumenlearn/content-backend/internal/locales"
  "github.com/lumenlearn/content-backend/internal/db"
  "github.com/lumenlearn/content-backend/internal/cache"
  "github.com/lumenlearn/content-backend/internal/repos"
  "github.com/lumenlearn/content-backend/internal/services"
  "github.com/lumenlearn/content-backend/internal/handlers"
  "github.com/lumenlearn/content-backend/internal/middleware"
  "github.com/lumenlearn/content-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Locale registry. Fatal when empty: no editing session can open without
  // at least one locale.
  localesFile := utils.GetEnv("LOCALES_FILE", "", log)
  registry, err := locales.Load(localesFile, log)
  if err != nil {
    log.Error("Locale registry init failed", "error", err)
    os.Exit(1)
  }

  // Postgres (or SQLite in dev)
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Database init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  courseModuleRepo := repos.NewCourseModuleRepo(thePG, log)
  lessonRepo := repos.NewLessonRepo(thePG, log)
  lessonLocalizationRepo := repos.NewLessonLocalizationRepo(thePG, log)

  // Render cache (optional)
  var renderCache *cache.RenderCache
  redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
  if redisAddr != "" {
    cacheTTL := utils.GetEnvAsInt("RENDER_CACHE_TTL_SECONDS", 300, log)
    renderCache, err = cache.NewRenderCache(log, registry, redisAddr, time.Duration(cacheTTL)*time.Second)
    if err != nil {
      log.Warn("Render cache init failed, serving uncached", "error", err)
      renderCache = nil
    }
  }

  // Services
  log.Info("Setting up Services from main...")
  editorService := services.NewEditorService(thePG, log, registry, courseModuleRepo, lessonRepo, lessonLocalizationRepo)
  publisherService := services.NewPublisherService(thePG, log, lessonRepo, lessonLocalizationRepo, renderCache)
  renderService := services.NewRenderService(thePG, log, registry, lessonRepo, lessonLocalizationRepo, renderCache)

  if renderCache != nil {
    if err := renderService.WarmCache(context.Background()); err != nil {
      log.Warn("Cache warm-up failed", "error", err)
    }
  }

  // Handlers
  log.Info("Setting up handlers from main...")
  localeHandler := handlers.NewLocaleHandler(registry)
  editorHandler := handlers.NewEditorHandler(editorService, publisherService)
  lessonViewHandler := handlers.NewLessonViewHandler(renderService, registry)

  // Middleware
  log.Info("Setting up middleware from main...")
  localeMiddleware := middleware.NewLocaleMiddleware(log, registry)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    LocaleMiddleware:  localeMiddleware,
    LocaleHandler:     localeHandler,
    EditorHandler:     editorHandler,
    LessonViewHandler: lessonViewHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
