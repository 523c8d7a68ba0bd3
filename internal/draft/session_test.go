package draft

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lumenlearn/content-backend/internal/locales"
	"github.com/lumenlearn/content-backend/internal/slug"
	"github.com/lumenlearn/content-backend/internal/types"
)

func testRegistry(t *testing.T) *locales.Registry {
	t.Helper()
	r, err := locales.NewRegistry([]locales.Locale{
		{Code: "en", Label: "English", IsDefault: true},
		{Code: "pt", Label: "Português"},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestNewSessionSeedsEveryLocale(t *testing.T) {
	registry := testRegistry(t)
	lessonID := uuid.New()
	persisted := []*types.LessonLocalization{
		{
			LessonID:  lessonID,
			Locale:    "en",
			Title:     "Intro",
			Body:      []byte(`{"markup":"hello"}`),
			Published: true,
		},
	}

	s := NewSession(registry, types.LessonKindText, "intro", persisted)

	en := s.Draft("en")
	if en == nil || en.Title != "Intro" || en.BodyText != "hello" || !en.Published {
		t.Fatalf("en draft not seeded from persisted row: %+v", en)
	}
	pt := s.Draft("pt")
	if pt == nil {
		t.Fatal("pt should get an explicit empty draft, not be absent")
	}
	if pt.Title != "" || pt.Published {
		t.Fatalf("pt draft should be empty and unpublished: %+v", pt)
	}
	if s.ActiveLocale() != "en" {
		t.Fatalf("session should open on the default locale, got %q", s.ActiveLocale())
	}
}

func TestSeedingDecodesCorruptBodyToEmpty(t *testing.T) {
	registry := testRegistry(t)
	persisted := []*types.LessonLocalization{
		{Locale: "en", Title: "Broken", Body: []byte("{{{not json")},
	}

	s := NewSession(registry, types.LessonKindQuiz, "", persisted)
	if got := s.Draft("en").BodyText; got != "[]" {
		t.Fatalf("corrupt quiz body should seed as empty array text, got %q", got)
	}
}

func TestSwitchLocaleKeepsDrafts(t *testing.T) {
	registry := testRegistry(t)
	s := NewSession(registry, types.LessonKindText, "", nil)

	s.SetTitle("Intro")
	s.SetBodyText("hello")
	if err := s.SwitchLocale("pt"); err != nil {
		t.Fatalf("SwitchLocale: %v", err)
	}
	s.SetTitle("Introdução")

	if s.Draft("en").Title != "Intro" || s.Draft("en").BodyText != "hello" {
		t.Fatalf("switching locales discarded the en draft: %+v", s.Draft("en"))
	}
	if s.Draft("pt").Title != "Introdução" {
		t.Fatalf("active edit went to the wrong draft: %+v", s.Draft("pt"))
	}

	if err := s.SwitchLocale("de"); err == nil {
		t.Fatal("switching to an unconfigured locale should fail")
	}
}

func TestPublishStampRule(t *testing.T) {
	registry := testRegistry(t)
	s := NewSession(registry, types.LessonKindText, "", nil)

	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := t0
	s.SetClock(func() time.Time { return clock })

	s.SetTitle("Intro")
	s.SetPublished(true)
	d := s.Draft("en")
	if d.PublishedAt == nil || !d.PublishedAt.Equal(t0) {
		t.Fatalf("first publish should stamp PublishedAt=t0, got %v", d.PublishedAt)
	}

	// Re-toggling while already published keeps the original stamp.
	clock = t0.Add(time.Hour)
	s.SetPublished(true)
	if !d.PublishedAt.Equal(t0) {
		t.Fatalf("republish must preserve original PublishedAt, got %v", d.PublishedAt)
	}

	// Unpublishing clears; the next publish stamps fresh.
	s.SetPublished(false)
	if d.PublishedAt != nil {
		t.Fatalf("unpublish should clear PublishedAt, got %v", d.PublishedAt)
	}
	clock = t0.Add(2 * time.Hour)
	s.SetPublished(true)
	if d.PublishedAt == nil || !d.PublishedAt.Equal(t0.Add(2*time.Hour)) {
		t.Fatalf("publish after unpublish should restamp, got %v", d.PublishedAt)
	}
}

func TestSlugAutoDerivation(t *testing.T) {
	registry := testRegistry(t)
	s := NewSession(registry, types.LessonKindText, "", nil)

	s.SetTitle("Intro")
	if s.Slug != "intro" {
		t.Fatalf("slug should derive from default-locale title, got %q", s.Slug)
	}
	s.SetTitle("Introduction")
	if s.Slug != "introduction" {
		t.Fatalf("slug should re-derive on title edit, got %q", s.Slug)
	}

	// Non-default locale titles never touch the slug.
	if err := s.SwitchLocale("pt"); err != nil {
		t.Fatalf("SwitchLocale: %v", err)
	}
	s.SetTitle("Introdução")
	if s.Slug != "introduction" {
		t.Fatalf("pt title edit changed the slug to %q", s.Slug)
	}

	// Manual edit is one-way: later title edits leave the slug alone.
	s.SetSlug("intro-custom")
	if s.SlugMode != slug.Manual {
		t.Fatal("manual slug edit should flip SlugMode to Manual")
	}
	if err := s.SwitchLocale("en"); err != nil {
		t.Fatalf("SwitchLocale: %v", err)
	}
	s.SetTitle("A Whole New Title")
	if s.Slug != "intro-custom" {
		t.Fatalf("slug should stay manual, got %q", s.Slug)
	}
}

func TestApplyDraftPreservesPublishedAt(t *testing.T) {
	registry := testRegistry(t)
	orig := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	persisted := []*types.LessonLocalization{
		{Locale: "en", Title: "Intro", Body: []byte(`{"markup":"hello"}`), Published: true, PublishedAt: &orig},
	}
	s := NewSession(registry, types.LessonKindText, "intro", persisted)
	s.SetClock(func() time.Time { return orig.Add(48 * time.Hour) })

	if err := s.ApplyDraft("en", Draft{Title: "Introduction", BodyText: "hello again", Published: true}); err != nil {
		t.Fatalf("ApplyDraft: %v", err)
	}
	if got := s.Draft("en").PublishedAt; got == nil || !got.Equal(orig) {
		t.Fatalf("ApplyDraft must preserve the original PublishedAt, got %v", got)
	}

	if err := s.ApplyDraft("en", Draft{Title: "Introduction", Published: false}); err != nil {
		t.Fatalf("ApplyDraft: %v", err)
	}
	if got := s.Draft("en").PublishedAt; got != nil {
		t.Fatalf("unpublishing through ApplyDraft should clear PublishedAt, got %v", got)
	}

	if err := s.ApplyDraft("de", Draft{}); err == nil {
		t.Fatal("ApplyDraft for an unconfigured locale should fail")
	}
}
