package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/lumenlearn/content-backend/internal/locales"
  "github.com/lumenlearn/content-backend/internal/middleware"
  "github.com/lumenlearn/content-backend/internal/services"
)

type LessonViewHandler struct {
  renderSvc services.RenderService
  registry  *locales.Registry
}

func NewLessonViewHandler(renderSvc services.RenderService, registry *locales.Registry) *LessonViewHandler {
  return &LessonViewHandler{renderSvc: renderSvc, registry: registry}
}

// GET /api/lessons/:id
func (h *LessonViewHandler) GetLesson(c *gin.Context) {
  lessonID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_lesson_id", err)
    return
  }

  locale := middleware.RequestedLocale(c, h.registry)
  rendered, err := h.renderSvc.Render(c.Request.Context(), lessonID, locale)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  if rendered == nil {
    c.JSON(http.StatusNotFound, gin.H{"error": "lesson not available in any language"})
    return
  }
  RespondOK(c, gin.H{"lesson": rendered})
}

// GET /api/modules/:id/lessons
func (h *LessonViewHandler) ListLessonsForModule(c *gin.Context) {
  moduleID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_module_id", err)
    return
  }

  locale := middleware.RequestedLocale(c, h.registry)
  rendered, err := h.renderSvc.RenderModule(c.Request.Context(), moduleID, locale)
  if err != nil {
    RespondAppError(c, err)
    return
  }
  RespondOK(c, gin.H{"lessons": rendered})
}
