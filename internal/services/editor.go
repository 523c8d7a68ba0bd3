package services

import (
  "context"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/lumenlearn/content-backend/internal/apperr"
  "github.com/lumenlearn/content-backend/internal/content"
  "github.com/lumenlearn/content-backend/internal/draft"
  "github.com/lumenlearn/content-backend/internal/locales"
  "github.com/lumenlearn/content-backend/internal/logger"
  "github.com/lumenlearn/content-backend/internal/repos"
  "github.com/lumenlearn/content-backend/internal/slug"
  "github.com/lumenlearn/content-backend/internal/types"
)

// EditorService opens draft sessions and creates lessons together with their
// initial localization rows.
type EditorService interface {
  Open(ctx context.Context, lessonID uuid.UUID) (*draft.Session, *types.Lesson, error)
  Create(ctx context.Context, moduleID uuid.UUID, kind, title string, index int) (*types.Lesson, error)
}

type editorService struct {
  db         *gorm.DB
  log        *logger.Logger
  registry   *locales.Registry
  moduleRepo repos.CourseModuleRepo
  lessonRepo repos.LessonRepo
  locRepo    repos.LessonLocalizationRepo
}

func NewEditorService(
  db *gorm.DB,
  baseLog *logger.Logger,
  registry *locales.Registry,
  moduleRepo repos.CourseModuleRepo,
  lessonRepo repos.LessonRepo,
  locRepo repos.LessonLocalizationRepo,
) EditorService {
  return &editorService{
    db:         db,
    log:        baseLog.With("service", "EditorService"),
    registry:   registry,
    moduleRepo: moduleRepo,
    lessonRepo: lessonRepo,
    locRepo:    locRepo,
  }
}

// Open seeds a session with one draft per configured locale so the author
// always gets a tab for every language, translated or not.
func (s *editorService) Open(ctx context.Context, lessonID uuid.UUID) (*draft.Session, *types.Lesson, error) {
  if s.registry == nil {
    return nil, nil, apperr.ErrNoLocales
  }
  if lessonID == uuid.Nil {
    return nil, nil, fmt.Errorf("missing lesson id")
  }

  lessons, err := s.lessonRepo.GetByIDs(ctx, nil, []uuid.UUID{lessonID})
  if err != nil {
    return nil, nil, &apperr.PersistenceError{Op: "load lesson", Err: err}
  }
  if len(lessons) == 0 || lessons[0] == nil {
    return nil, nil, fmt.Errorf("lesson not found")
  }
  lesson := lessons[0]

  localizations, err := s.locRepo.GetByLessonIDs(ctx, nil, []uuid.UUID{lessonID})
  if err != nil {
    return nil, nil, &apperr.PersistenceError{Op: "load localizations", Err: err}
  }

  session := draft.NewSession(s.registry, lesson.Kind, lesson.Slug, localizations)
  return session, lesson, nil
}

// Create inserts the lesson plus one localization row per configured locale,
// empty except for the locale the author started in (the default).
func (s *editorService) Create(ctx context.Context, moduleID uuid.UUID, kind, title string, index int) (*types.Lesson, error) {
  if s.registry == nil {
    return nil, apperr.ErrNoLocales
  }
  if moduleID == uuid.Nil {
    return nil, fmt.Errorf("missing module id")
  }
  switch kind {
  case types.LessonKindText, types.LessonKindVideo, types.LessonKindQuiz:
  default:
    return nil, &apperr.ValidationError{Locale: "", Field: "kind", Reason: fmt.Sprintf("unknown lesson kind %q", kind)}
  }
  title = strings.TrimSpace(title)

  modules, err := s.moduleRepo.GetByIDs(ctx, nil, []uuid.UUID{moduleID})
  if err != nil {
    return nil, &apperr.PersistenceError{Op: "load module", Err: err}
  }
  if len(modules) == 0 || modules[0] == nil {
    return nil, fmt.Errorf("module not found")
  }

  emptyBody, _ := content.Encode(kind, s.registry.Default().Code, "", false)
  lesson := &types.Lesson{
    ModuleID: moduleID,
    Index:    index,
    Kind:     kind,
    Title:    title,
    Slug:     slug.Derive(title),
    Body:     emptyBody,
    Tags:     []byte("[]"),
  }

  err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := s.lessonRepo.Create(ctx, tx, []*types.Lesson{lesson}); err != nil {
      return &apperr.PersistenceError{Op: "create lesson", Err: err}
    }
    rows := make([]*types.LessonLocalization, 0, len(s.registry.List()))
    for _, l := range s.registry.List() {
      row := &types.LessonLocalization{
        LessonID: lesson.ID,
        Locale:   l.Code,
        Body:     emptyBody,
        Tags:     []byte("[]"),
      }
      if l.IsDefault {
        row.Title = title
      }
      rows = append(rows, row)
    }
    if err := s.locRepo.UpsertMany(ctx, tx, rows); err != nil {
      return &apperr.PersistenceError{Op: "create localizations", Err: err}
    }
    return nil
  })
  if err != nil {
    s.log.Warn("Create failed", "module_id", moduleID, "error", err)
    return nil, err
  }
  return lesson, nil
}
