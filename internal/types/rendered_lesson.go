package types

// Pure JSON contract for the learner-facing lesson view. Not a DB model.

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RenderedLesson struct {
	LessonID        uuid.UUID      `json:"lesson_id"`
	RequestedLocale string         `json:"requested_locale"`
	Locale          string         `json:"locale"` // locale actually served
	Kind            string         `json:"kind"`
	Title           string         `json:"title"`
	Tags            []string       `json:"tags,omitempty"`
	ThumbnailURL    string         `json:"thumbnail_url,omitempty"`
	Body            datatypes.JSON `json:"body"`
	XP              int            `json:"xp"`
	DurationMinutes int            `json:"duration_minutes"`
	PublishedAt     *time.Time     `json:"published_at,omitempty"`
}
