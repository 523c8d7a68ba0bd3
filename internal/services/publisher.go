package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/lumenlearn/content-backend/internal/apperr"
  "github.com/lumenlearn/content-backend/internal/cache"
  "github.com/lumenlearn/content-backend/internal/content"
  "github.com/lumenlearn/content-backend/internal/draft"
  "github.com/lumenlearn/content-backend/internal/logger"
  "github.com/lumenlearn/content-backend/internal/repos"
  "github.com/lumenlearn/content-backend/internal/types"
)

// PublisherService reconciles a draft session against the persisted lesson
// row and its localization rows. Validation runs before any write; the base
// update and the localization upserts share one transaction, so a save either
// lands completely or not at all.
type PublisherService interface {
  Save(ctx context.Context, lessonID uuid.UUID, session *draft.Session, structural draft.StructuralFields) (*types.Lesson, []*types.LessonLocalization, error)
}

type publisherService struct {
  db          *gorm.DB
  log         *logger.Logger
  lessonRepo  repos.LessonRepo
  locRepo     repos.LessonLocalizationRepo
  renderCache *cache.RenderCache
}

func NewPublisherService(
  db *gorm.DB,
  baseLog *logger.Logger,
  lessonRepo repos.LessonRepo,
  locRepo repos.LessonLocalizationRepo,
  renderCache *cache.RenderCache,
) PublisherService {
  return &publisherService{
    db:          db,
    log:         baseLog.With("service", "PublisherService"),
    lessonRepo:  lessonRepo,
    locRepo:     locRepo,
    renderCache: renderCache,
  }
}

func (s *publisherService) Save(ctx context.Context, lessonID uuid.UUID, session *draft.Session, structural draft.StructuralFields) (*types.Lesson, []*types.LessonLocalization, error) {
  if session == nil {
    return nil, nil, fmt.Errorf("missing draft session")
  }
  if lessonID == uuid.Nil {
    return nil, nil, fmt.Errorf("missing lesson id")
  }

  kind := session.Kind()
  registry := session.Registry()

  // Step 1: validate every populated locale before touching storage. The
  // locale's own publish flag is the publish-intent signal.
  encodedBodies := make(map[string]datatypes.JSON)
  populated := make(map[string]bool)
  aggregatePublished := false
  for _, code := range session.Locales() {
    d := session.Draft(code)
    if d == nil {
      continue
    }
    hasTitle := strings.TrimSpace(d.Title) != ""
    if d.Published && !hasTitle {
      return nil, nil, &apperr.ValidationError{Locale: code, Field: "title", Reason: "a published locale needs a title"}
    }
    if d.Published {
      aggregatePublished = true
    }
    if !hasTitle && strings.TrimSpace(d.BodyText) == "" {
      continue
    }
    encoded, err := content.Encode(kind, code, d.BodyText, d.Published)
    if err != nil {
      return nil, nil, err
    }
    encodedBodies[code] = encoded
    populated[code] = true
  }

  // Step 3: canonical fields come from the default locale, falling back to
  // the first titled locale so an untranslated default never blocks a save.
  canonicalCode := registry.Default().Code
  if !populated[canonicalCode] || strings.TrimSpace(session.Draft(canonicalCode).Title) == "" {
    for _, code := range session.Locales() {
      if populated[code] && strings.TrimSpace(session.Draft(code).Title) != "" {
        canonicalCode = code
        break
      }
    }
  }
  canonical := session.Draft(canonicalCode)
  canonicalBody, ok := encodedBodies[canonicalCode]
  if !ok {
    empty, err := content.Encode(kind, canonicalCode, "", false)
    if err != nil {
      // Only an unrecognized kind fails here, which means the stored row
      // is corrupt. Surface it instead of writing a placeholder.
      return nil, nil, err
    }
    canonicalBody = empty
  }

  // Steps 4-5 in one transaction: base row plus localization rows.
  err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, err := s.lessonRepo.GetByIDs(ctx, tx, []uuid.UUID{lessonID})
    if err != nil {
      return &apperr.PersistenceError{Op: "load lesson", Err: err}
    }
    if len(existing) == 0 || existing[0] == nil {
      return fmt.Errorf("lesson not found")
    }

    updates := map[string]interface{}{
      "title":            canonical.Title,
      "slug":             session.Slug,
      "thumbnail_url":    canonical.ThumbnailURL,
      "body":             canonicalBody,
      "tags":             encodeTags(canonical.Tags),
      "published":        aggregatePublished,
      "index":            structural.Index,
      "xp":               structural.XP,
      "duration_minutes": structural.DurationMinutes,
      "updated_at":       time.Now(),
    }
    if err := s.lessonRepo.UpdateFields(ctx, tx, lessonID, updates); err != nil {
      return &apperr.PersistenceError{Op: "update lesson", Err: err}
    }

    rows := make([]*types.LessonLocalization, 0, len(encodedBodies))
    for _, code := range session.Locales() {
      if !populated[code] {
        continue
      }
      d := session.Draft(code)
      rows = append(rows, &types.LessonLocalization{
        LessonID:     lessonID,
        Locale:       code,
        Title:        d.Title,
        Tags:         encodeTags(d.Tags),
        ThumbnailURL: d.ThumbnailURL,
        Body:         encodedBodies[code],
        Published:    d.Published,
        PublishedAt:  d.PublishedAt,
      })
    }
    if err := s.locRepo.UpsertMany(ctx, tx, rows); err != nil {
      return &apperr.PersistenceError{Op: "upsert localizations", Err: err}
    }
    return nil
  })
  if err != nil {
    s.log.Warn("Save failed", "lesson_id", lessonID, "error", err)
    return nil, nil, err
  }

  s.renderCache.InvalidateLesson(ctx, lessonID)

  // Step 6: return the refreshed lesson with localizations attached.
  lessons, err := s.lessonRepo.GetByIDs(ctx, nil, []uuid.UUID{lessonID})
  if err != nil || len(lessons) == 0 {
    return nil, nil, &apperr.PersistenceError{Op: "reload lesson", Err: err}
  }
  localizations, err := s.locRepo.GetByLessonIDs(ctx, nil, []uuid.UUID{lessonID})
  if err != nil {
    return nil, nil, &apperr.PersistenceError{Op: "reload localizations", Err: err}
  }
  return lessons[0], localizations, nil
}

func encodeTags(tags []string) datatypes.JSON {
  if len(tags) == 0 {
    return datatypes.JSON([]byte("[]"))
  }
  raw, err := json.Marshal(tags)
  if err != nil {
    return datatypes.JSON([]byte("[]"))
  }
  return datatypes.JSON(raw)
}
