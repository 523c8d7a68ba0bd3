package draft

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumenlearn/content-backend/internal/content"
	"github.com/lumenlearn/content-backend/internal/locales"
	"github.com/lumenlearn/content-backend/internal/slug"
	"github.com/lumenlearn/content-backend/internal/types"
)

// Draft is the editable, editor-native form of one locale's localization.
type Draft struct {
	Title        string     `json:"title"`
	Tags         []string   `json:"tags"`
	ThumbnailURL string     `json:"thumbnail_url"`
	BodyText     string     `json:"body_text"`
	Published    bool       `json:"published"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

// StructuralFields are the locale-independent lesson fields carried through a
// save untouched by the localization logic.
type StructuralFields struct {
	Index           int    `json:"index"`
	Kind            string `json:"kind"`
	XP              int    `json:"xp"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Session holds every locale's draft for one lesson at once, so switching
// the active tab never discards another locale's edits. Single-owner,
// single-goroutine state confined to one editing session; no locking.
type Session struct {
	registry *locales.Registry
	kind     string
	drafts   map[string]*Draft
	active   string

	Slug     string
	SlugMode slug.EditMode

	now func() time.Time
}

// NewSession seeds one draft per configured locale: persisted localizations
// are decoded into editor-native shape, missing ones become explicit empty
// drafts so every locale shows up as an editable tab.
func NewSession(registry *locales.Registry, kind, slugVal string, persisted []*types.LessonLocalization) *Session {
	byLocale := make(map[string]*types.LessonLocalization, len(persisted))
	for _, loc := range persisted {
		if loc != nil {
			byLocale[loc.Locale] = loc
		}
	}

	drafts := make(map[string]*Draft, len(registry.List()))
	for _, l := range registry.List() {
		row, ok := byLocale[l.Code]
		if !ok {
			drafts[l.Code] = &Draft{}
			continue
		}
		drafts[l.Code] = &Draft{
			Title:        row.Title,
			Tags:         decodeTags(row.Tags),
			ThumbnailURL: row.ThumbnailURL,
			BodyText:     content.EditorText(content.Decode(kind, row.Body)),
			Published:    row.Published,
			PublishedAt:  row.PublishedAt,
		}
	}

	return &Session{
		registry: registry,
		kind:     kind,
		drafts:   drafts,
		active:   registry.Default().Code,
		Slug:     slugVal,
		SlugMode: slug.Auto,
		now:      time.Now,
	}
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

func (s *Session) Registry() *locales.Registry { return s.registry }
func (s *Session) Kind() string                { return s.kind }
func (s *Session) ActiveLocale() string        { return s.active }

// SwitchLocale changes the active tab. All other drafts stay in memory.
func (s *Session) SwitchLocale(code string) error {
	if _, ok := s.drafts[code]; !ok {
		return fmt.Errorf("locale %q is not configured", code)
	}
	s.active = code
	return nil
}

// Draft returns the draft for a locale, or nil when the locale is unknown.
func (s *Session) Draft(code string) *Draft {
	return s.drafts[code]
}

func (s *Session) current() *Draft { return s.drafts[s.active] }

// SetTitle replaces the active locale's title. While the slug is still in
// auto mode, editing the default locale's title re-derives it.
func (s *Session) SetTitle(title string) {
	s.current().Title = title
	if s.SlugMode == slug.Auto && s.active == s.registry.Default().Code {
		s.Slug = slug.Derive(title)
	}
}

// SetSlug records a manual slug edit and permanently disables auto
// derivation for this session.
func (s *Session) SetSlug(value string) {
	s.Slug = value
	s.SlugMode = slug.Manual
}

func (s *Session) SetTags(tags []string) {
	s.current().Tags = tags
}

func (s *Session) SetThumbnail(url string) {
	s.current().ThumbnailURL = url
}

func (s *Session) SetBodyText(text string) {
	s.current().BodyText = text
}

// SetPublished toggles the active locale's publish flag. The first
// false->true transition stamps PublishedAt only when it was never set;
// unpublishing clears it.
func (s *Session) SetPublished(published bool) {
	d := s.current()
	if published {
		if !d.Published && d.PublishedAt == nil {
			t := s.now()
			d.PublishedAt = &t
		}
		d.Published = true
		return
	}
	d.Published = false
	d.PublishedAt = nil
}

// SetClock overrides the publish timestamp source. Test hook.
func (s *Session) SetClock(now func() time.Time) { s.now = now }

// ApplyDraft wholesale-replaces one locale's draft, applying the publish
// stamp rule against the previously seeded state. Used when the editor
// submits all locales in one request.
func (s *Session) ApplyDraft(code string, incoming Draft) error {
	current, ok := s.drafts[code]
	if !ok {
		return fmt.Errorf("locale %q is not configured", code)
	}
	next := incoming
	switch {
	case next.Published && current.PublishedAt != nil:
		next.PublishedAt = current.PublishedAt
	case next.Published:
		t := s.now()
		next.PublishedAt = &t
	default:
		next.PublishedAt = nil
	}
	*current = next
	return nil
}

// Locales returns the locale codes in registry order.
func (s *Session) Locales() []string {
	list := s.registry.List()
	out := make([]string, 0, len(list))
	for _, l := range list {
		out = append(out, l.Code)
	}
	return out
}
