package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/lumenlearn/content-backend/internal/logger"
  "github.com/lumenlearn/content-backend/internal/types"
)

type CourseModuleRepo interface {
  GetByIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.CourseModule, error)
}

type courseModuleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseModuleRepo(db *gorm.DB, baseLog *logger.Logger) CourseModuleRepo {
  repoLog := baseLog.With("repo", "CourseModuleRepo")
  return &courseModuleRepo{db: db, log: repoLog}
}

func (r *courseModuleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.CourseModule, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CourseModule
  if len(moduleIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", moduleIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
