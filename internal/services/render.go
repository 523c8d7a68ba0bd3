package services

import (
  "context"
  "encoding/json"
  "fmt"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/lumenlearn/content-backend/internal/apperr"
  "github.com/lumenlearn/content-backend/internal/cache"
  "github.com/lumenlearn/content-backend/internal/locales"
  "github.com/lumenlearn/content-backend/internal/logger"
  "github.com/lumenlearn/content-backend/internal/repos"
  "github.com/lumenlearn/content-backend/internal/types"
)

// RenderService serves the learner-facing view of a lesson: fallback
// resolution over the published localizations, with a Redis cache in front.
type RenderService interface {
  Render(ctx context.Context, lessonID uuid.UUID, requestedLocale string) (*types.RenderedLesson, error)
  RenderModule(ctx context.Context, moduleID uuid.UUID, requestedLocale string) ([]*types.RenderedLesson, error)
  WarmCache(ctx context.Context) error
}

type renderService struct {
  db          *gorm.DB
  log         *logger.Logger
  registry    *locales.Registry
  lessonRepo  repos.LessonRepo
  locRepo     repos.LessonLocalizationRepo
  renderCache *cache.RenderCache
}

func NewRenderService(
  db *gorm.DB,
  baseLog *logger.Logger,
  registry *locales.Registry,
  lessonRepo repos.LessonRepo,
  locRepo repos.LessonLocalizationRepo,
  renderCache *cache.RenderCache,
) RenderService {
  return &renderService{
    db:          db,
    log:         baseLog.With("service", "RenderService"),
    registry:    registry,
    lessonRepo:  lessonRepo,
    locRepo:     locRepo,
    renderCache: renderCache,
  }
}

// Render returns nil when no localization of the lesson is published; the
// caller decides how to present "not available".
func (s *renderService) Render(ctx context.Context, lessonID uuid.UUID, requestedLocale string) (*types.RenderedLesson, error) {
  if lessonID == uuid.Nil {
    return nil, fmt.Errorf("missing lesson id")
  }
  if requestedLocale == "" || !s.registry.Has(requestedLocale) {
    requestedLocale = s.registry.Default().Code
  }

  if hit, ok := s.renderCache.Get(ctx, lessonID, requestedLocale); ok {
    return hit, nil
  }

  lessons, err := s.lessonRepo.GetByIDs(ctx, nil, []uuid.UUID{lessonID})
  if err != nil {
    return nil, &apperr.PersistenceError{Op: "load lesson", Err: err}
  }
  if len(lessons) == 0 || lessons[0] == nil {
    return nil, fmt.Errorf("lesson not found")
  }
  lesson := lessons[0]

  localizations, err := s.locRepo.GetByLessonIDs(ctx, nil, []uuid.UUID{lessonID})
  if err != nil {
    return nil, &apperr.PersistenceError{Op: "load localizations", Err: err}
  }

  chosen := ResolveLocalization(s.registry, localizations, requestedLocale)
  if chosen == nil {
    return nil, nil
  }

  rendered := &types.RenderedLesson{
    LessonID:        lesson.ID,
    RequestedLocale: requestedLocale,
    Locale:          chosen.Locale,
    Kind:            lesson.Kind,
    Title:           chosen.Title,
    Tags:            decodeTags(chosen.Tags),
    ThumbnailURL:    chosen.ThumbnailURL,
    Body:            chosen.Body,
    XP:              lesson.XP,
    DurationMinutes: lesson.DurationMinutes,
    PublishedAt:     chosen.PublishedAt,
  }
  s.renderCache.Set(ctx, rendered)
  return rendered, nil
}

// RenderModule resolves every lesson of a module for an admin list preview.
// Lessons with nothing published are skipped rather than erroring.
func (s *renderService) RenderModule(ctx context.Context, moduleID uuid.UUID, requestedLocale string) ([]*types.RenderedLesson, error) {
  if moduleID == uuid.Nil {
    return nil, fmt.Errorf("missing module id")
  }
  if requestedLocale == "" || !s.registry.Has(requestedLocale) {
    requestedLocale = s.registry.Default().Code
  }

  lessons, err := s.lessonRepo.GetByModuleIDs(ctx, nil, []uuid.UUID{moduleID})
  if err != nil {
    return nil, &apperr.PersistenceError{Op: "load lessons", Err: err}
  }
  lessonIDs := make([]uuid.UUID, 0, len(lessons))
  for _, lesson := range lessons {
    lessonIDs = append(lessonIDs, lesson.ID)
  }
  localizations, err := s.locRepo.GetByLessonIDs(ctx, nil, lessonIDs)
  if err != nil {
    return nil, &apperr.PersistenceError{Op: "load localizations", Err: err}
  }
  byLesson := make(map[uuid.UUID][]*types.LessonLocalization, len(lessons))
  for _, loc := range localizations {
    byLesson[loc.LessonID] = append(byLesson[loc.LessonID], loc)
  }

  out := make([]*types.RenderedLesson, 0, len(lessons))
  for _, lesson := range lessons {
    chosen := ResolveLocalization(s.registry, byLesson[lesson.ID], requestedLocale)
    if chosen == nil {
      continue
    }
    out = append(out, &types.RenderedLesson{
      LessonID:        lesson.ID,
      RequestedLocale: requestedLocale,
      Locale:          chosen.Locale,
      Kind:            lesson.Kind,
      Title:           chosen.Title,
      Tags:            decodeTags(chosen.Tags),
      ThumbnailURL:    chosen.ThumbnailURL,
      Body:            chosen.Body,
      XP:              lesson.XP,
      DurationMinutes: lesson.DurationMinutes,
      PublishedAt:     chosen.PublishedAt,
    })
  }
  return out, nil
}

// WarmCache pre-renders every published lesson in every configured locale so
// first learner hits after a restart come from Redis.
func (s *renderService) WarmCache(ctx context.Context) error {
  lessons, err := s.lessonRepo.GetPublished(ctx, nil)
  if err != nil {
    return &apperr.PersistenceError{Op: "load published lessons", Err: err}
  }

  g, gctx := errgroup.WithContext(ctx)
  g.SetLimit(8)
  for _, lesson := range lessons {
    for _, l := range s.registry.List() {
      lessonID := lesson.ID
      code := l.Code
      g.Go(func() error {
        if _, err := s.Render(gctx, lessonID, code); err != nil {
          s.log.Warn("Cache warm render failed", "lesson_id", lessonID, "locale", code, "error", err)
        }
        return nil
      })
    }
  }
  if err := g.Wait(); err != nil {
    return err
  }
  s.log.Info("Render cache warmed", "lessons", len(lessons), "locales", len(s.registry.List()))
  return nil
}

func decodeTags(raw []byte) []string {
  if len(raw) == 0 {
    return nil
  }
  var tags []string
  if err := json.Unmarshal(raw, &tags); err != nil {
    return nil
  }
  return tags
}
