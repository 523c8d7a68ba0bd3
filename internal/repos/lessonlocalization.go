package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/lumenlearn/content-backend/internal/logger"
  "github.com/lumenlearn/content-backend/internal/types"
)

type LessonLocalizationRepo interface {
  GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.LessonLocalization, error)
  UpsertMany(ctx context.Context, tx *gorm.DB, rows []*types.LessonLocalization) error
  FullDeleteByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error
}

type lessonLocalizationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLessonLocalizationRepo(db *gorm.DB, baseLog *logger.Logger) LessonLocalizationRepo {
  repoLog := baseLog.With("repo", "LessonLocalizationRepo")
  return &lessonLocalizationRepo{db: db, log: repoLog}
}

func (r *lessonLocalizationRepo) GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.LessonLocalization, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.LessonLocalization
  if len(lessonIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("lesson_id IN ?", lessonIDs).
    Order("lesson_id, locale ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// UpsertMany writes localization rows keyed by (lesson_id, locale), updating
// the content columns on conflict.
func (r *lessonLocalizationRepo) UpsertMany(ctx context.Context, tx *gorm.DB, rows []*types.LessonLocalization) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "lesson_id"}, {Name: "locale"}},
      DoUpdates: clause.AssignmentColumns([]string{
        "title", "tags", "thumbnail_url", "body", "published", "published_at", "updated_at",
      }),
    }).
    Create(&rows).Error; err != nil {
    return err
  }
  return nil
}

func (r *lessonLocalizationRepo) FullDeleteByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(lessonIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("lesson_id IN ?", lessonIDs).
    Delete(&types.LessonLocalization{}).Error; err != nil {
    return err
  }
  return nil
}
