package content

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"gorm.io/datatypes"

	"github.com/lumenlearn/content-backend/internal/apperr"
	"github.com/lumenlearn/content-backend/internal/types"
)

// Encode turns the author-edited text for a locale into the stored body.
// publishIntent applies the stricter rules a published locale must satisfy;
// locale is only used to identify the offender in validation errors.
func Encode(kind, locale, editorText string, publishIntent bool) (datatypes.JSON, error) {
	switch kind {
	case types.LessonKindText:
		if publishIntent && strings.TrimSpace(editorText) == "" {
			return nil, &apperr.ValidationError{Locale: locale, Field: "body", Reason: "text content is empty"}
		}
		raw, err := json.Marshal(TextBody{Markup: editorText})
		if err != nil {
			return nil, err
		}
		return datatypes.JSON(raw), nil

	case types.LessonKindVideo:
		trimmed := strings.TrimSpace(editorText)
		if publishIntent {
			u, err := url.Parse(trimmed)
			if err != nil || !u.IsAbs() || u.Host == "" {
				return nil, &apperr.ValidationError{Locale: locale, Field: "body", Reason: fmt.Sprintf("%q is not an absolute video URL", trimmed)}
			}
		}
		raw, err := json.Marshal(VideoBody{URL: trimmed})
		if err != nil {
			return nil, err
		}
		return datatypes.JSON(raw), nil

	case types.LessonKindQuiz:
		text := strings.TrimSpace(editorText)
		if text == "" {
			text = "[]"
		}
		var questions []QuizQuestion
		if err := json.Unmarshal([]byte(text), &questions); err != nil {
			return nil, &apperr.ValidationError{Locale: locale, Field: "body", Reason: fmt.Sprintf("quiz JSON does not parse: %v", err)}
		}
		if publishIntent && len(questions) == 0 {
			return nil, &apperr.ValidationError{Locale: locale, Field: "body", Reason: "quiz has no questions"}
		}
		raw, err := json.Marshal(QuizBody{Questions: questions})
		if err != nil {
			return nil, err
		}
		return datatypes.JSON(raw), nil

	default:
		return nil, &apperr.ValidationError{Locale: locale, Field: "kind", Reason: fmt.Sprintf("unknown lesson kind %q", kind)}
	}
}

// Decode is total: absent or malformed stored bodies come back as the kind's
// empty body so the editor always opens, even over partially corrupt legacy
// rows. Correctness is enforced on encode, not decode.
func Decode(kind string, raw datatypes.JSON) Body {
	if len(raw) == 0 {
		return EmptyBody(kind)
	}
	switch kind {
	case types.LessonKindText:
		var b TextBody
		if err := json.Unmarshal(raw, &b); err != nil {
			return EmptyBody(kind)
		}
		return b
	case types.LessonKindVideo:
		var b VideoBody
		if err := json.Unmarshal(raw, &b); err != nil {
			return EmptyBody(kind)
		}
		return b
	case types.LessonKindQuiz:
		var b QuizBody
		if err := json.Unmarshal(raw, &b); err != nil || b.Questions == nil {
			return EmptyBody(kind)
		}
		return b
	default:
		return EmptyBody(kind)
	}
}

// EditorText renders a body back into the author-edited text shape used by
// the draft store: raw markup for text, the URL for video, indented JSON for
// quiz questions.
func EditorText(body Body) string {
	switch b := body.(type) {
	case TextBody:
		return b.Markup
	case VideoBody:
		return b.URL
	case QuizBody:
		if len(b.Questions) == 0 {
			return "[]"
		}
		raw, err := json.MarshalIndent(b.Questions, "", "  ")
		if err != nil {
			return "[]"
		}
		return string(raw)
	default:
		return ""
	}
}

// HasContent reports whether a body carries anything an author typed, used
// to tell a genuinely empty locale from a populated one.
func HasContent(body Body) bool {
	switch b := body.(type) {
	case TextBody:
		return strings.TrimSpace(b.Markup) != ""
	case VideoBody:
		return strings.TrimSpace(b.URL) != ""
	case QuizBody:
		return len(b.Questions) > 0
	default:
		return false
	}
}
