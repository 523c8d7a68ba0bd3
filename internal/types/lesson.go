package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson content kinds. Closed set; Kind is immutable after creation in
// practice since changing it invalidates existing localized bodies.
const (
	LessonKindText  = "text"
	LessonKindVideo = "video"
	LessonKindQuiz  = "quiz"
)

// Lesson is the structural record shared by all localizations. The canonical
// Title/Slug/ThumbnailURL/Body/Tags columns are a denormalized copy of the
// default-locale localization, maintained by the publisher on save so that
// non-localization-aware consumers have a single row to read.
type Lesson struct {
	ID       uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID uuid.UUID     `gorm:"type:uuid;not null;index" json:"module_id"`
	Module   *CourseModule `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`

	Index int    `gorm:"column:index;not null" json:"index"`
	Kind  string `gorm:"column:kind;not null" json:"kind"` // text|video|quiz

	Title        string         `gorm:"column:title;not null" json:"title"`
	Slug         string         `gorm:"column:slug;not null;index" json:"slug"`
	ThumbnailURL string         `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	Body         datatypes.JSON `gorm:"column:body;type:jsonb" json:"body"`
	Tags         datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`

	// Published is true when at least one localization is published.
	// Derived, never set directly.
	Published bool `gorm:"column:published;not null;default:false" json:"published"`

	XP              int `gorm:"column:xp;not null;default:0" json:"xp"`
	DurationMinutes int `gorm:"column:duration_minutes;not null;default:0" json:"duration_minutes"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Lesson) TableName() string { return "lesson" }

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
