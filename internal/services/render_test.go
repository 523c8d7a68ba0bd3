package services

import (
  "context"
  "testing"

  "github.com/lumenlearn/content-backend/internal/draft"
  "github.com/lumenlearn/content-backend/internal/types"
)

func TestRenderFallsBackToDefaultLocale(t *testing.T) {
  f := newPublisherFixture(t)
  lesson := f.createLesson(t, types.LessonKindText, "Intro")

  session := f.openSession(t, lesson.ID)
  session.SetTitle("Intro")
  session.SetBodyText("hello")
  session.SetPublished(true)
  if _, _, err := f.publisher.Save(context.Background(), lesson.ID, session, draft.StructuralFields{}); err != nil {
    t.Fatalf("save: %v", err)
  }

  render := NewRenderService(f.db, testLogger(t), f.registry, f.lessonRepo, f.locRepo, nil)

  // pt has nothing published; the en localization is served instead.
  got, err := render.Render(context.Background(), lesson.ID, "pt")
  if err != nil {
    t.Fatalf("render: %v", err)
  }
  if got == nil {
    t.Fatal("expected a rendered lesson")
  }
  if got.Locale != "en" || got.RequestedLocale != "pt" {
    t.Fatalf("served locale %q for request %q, want en for pt", got.Locale, got.RequestedLocale)
  }
  if got.Title != "Intro" {
    t.Fatalf("title = %q, want Intro", got.Title)
  }

  // Requesting the published locale directly serves it.
  got, err = render.Render(context.Background(), lesson.ID, "en")
  if err != nil {
    t.Fatalf("render: %v", err)
  }
  if got == nil || got.Locale != "en" {
    t.Fatalf("expected en localization, got %+v", got)
  }
}

func TestRenderNothingPublished(t *testing.T) {
  f := newPublisherFixture(t)
  lesson := f.createLesson(t, types.LessonKindText, "Intro")

  render := NewRenderService(f.db, testLogger(t), f.registry, f.lessonRepo, f.locRepo, nil)
  got, err := render.Render(context.Background(), lesson.ID, "en")
  if err != nil {
    t.Fatalf("render: %v", err)
  }
  if got != nil {
    t.Fatalf("nothing is published, expected nil render, got %+v", got)
  }
}

func TestRenderModuleSkipsUnpublishedLessons(t *testing.T) {
  f := newPublisherFixture(t)
  published := f.createLesson(t, types.LessonKindText, "Visible")
  f.createLesson(t, types.LessonKindText, "Hidden")

  session := f.openSession(t, published.ID)
  session.SetTitle("Visible")
  session.SetBodyText("shown to learners")
  session.SetPublished(true)
  if _, _, err := f.publisher.Save(context.Background(), published.ID, session, draft.StructuralFields{}); err != nil {
    t.Fatalf("save: %v", err)
  }

  render := NewRenderService(f.db, testLogger(t), f.registry, f.lessonRepo, f.locRepo, nil)
  got, err := render.RenderModule(context.Background(), f.moduleID, "en")
  if err != nil {
    t.Fatalf("render module: %v", err)
  }
  if len(got) != 1 {
    t.Fatalf("expected 1 rendered lesson, got %d", len(got))
  }
  if got[0].LessonID != published.ID {
    t.Fatalf("wrong lesson rendered: %v", got[0].LessonID)
  }
}
