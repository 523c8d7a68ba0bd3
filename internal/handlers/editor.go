package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/lumenlearn/content-backend/internal/draft"
  "github.com/lumenlearn/content-backend/internal/services"
  "github.com/lumenlearn/content-backend/internal/slug"
)

type EditorHandler struct {
  editorSvc    services.EditorService
  publisherSvc services.PublisherService
}

func NewEditorHandler(editorSvc services.EditorService, publisherSvc services.PublisherService) *EditorHandler {
  return &EditorHandler{editorSvc: editorSvc, publisherSvc: publisherSvc}
}

type createLessonRequest struct {
  Kind  string `json:"kind" binding:"required"`
  Title string `json:"title"`
  Index int    `json:"index"`
}

// POST /api/modules/:id/lessons
func (h *EditorHandler) CreateLesson(c *gin.Context) {
  moduleID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_module_id", err)
    return
  }
  var req createLessonRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  lesson, err := h.editorSvc.Create(c.Request.Context(), moduleID, req.Kind, req.Title, req.Index)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"lesson": lesson})
}

// GET /api/lessons/:id/editor
func (h *EditorHandler) OpenEditor(c *gin.Context) {
  lessonID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
    return
  }

  session, lesson, err := h.editorSvc.Open(c.Request.Context(), lessonID)
  if err != nil {
    RespondAppError(c, err)
    return
  }

  drafts := make(map[string]*draft.Draft, len(session.Locales()))
  for _, code := range session.Locales() {
    drafts[code] = session.Draft(code)
  }
  RespondOK(c, gin.H{
    "lesson":        lesson,
    "slug":          session.Slug,
    "active_locale": session.ActiveLocale(),
    "locales":       session.Registry().List(),
    "drafts":        drafts,
  })
}

type saveLessonRequest struct {
  Slug       string                 `json:"slug"`
  SlugEdited bool                   `json:"slug_edited"`
  Structural draft.StructuralFields `json:"structural"`
  Drafts     map[string]draft.Draft `json:"drafts" binding:"required"`
}

// PUT /api/lessons/:id
//
// The editor submits every locale's draft in one request. The session is
// re-seeded from persisted state first so publish timestamps survive the
// round trip, then the submitted drafts replace the seeded ones.
func (h *EditorHandler) SaveLesson(c *gin.Context) {
  lessonID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
    return
  }
  var req saveLessonRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  session, _, err := h.editorSvc.Open(c.Request.Context(), lessonID)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  for code, d := range req.Drafts {
    if err := session.ApplyDraft(code, d); err != nil {
      RespondError(c, http.StatusBadRequest, "unknown_locale", err)
      return
    }
  }
  if req.SlugEdited {
    session.SetSlug(req.Slug)
  } else {
    defaultDraft := session.Draft(session.Registry().Default().Code)
    session.Slug = slug.Derive(defaultDraft.Title)
  }

  lesson, localizations, err := h.publisherSvc.Save(c.Request.Context(), lessonID, session, req.Structural)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"lesson": lesson, "localizations": localizations})
}
