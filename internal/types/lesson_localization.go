package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LessonLocalization is the per-locale variant of a lesson. One row per
// (lesson, locale), enforced by the composite unique index.
type LessonLocalization struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID uuid.UUID `gorm:"type:uuid;not null;index:idx_lesson_locale,unique,priority:1" json:"lesson_id"`
	Lesson   *Lesson   `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`

	Locale string `gorm:"column:locale;not null;index:idx_lesson_locale,unique,priority:2" json:"locale"`

	Title        string         `gorm:"column:title;not null" json:"title"`
	Tags         datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	ThumbnailURL string         `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Body         datatypes.JSON `gorm:"column:body;type:jsonb" json:"body"`

	Published bool `gorm:"column:published;not null;default:false" json:"published"`
	// PublishedAt is stamped the first time Published transitions true,
	// preserved across republishes, cleared when unpublished.
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LessonLocalization) TableName() string { return "lesson_localization" }

func (l *LessonLocalization) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
