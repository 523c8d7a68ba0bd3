package content

import (
	"github.com/lumenlearn/content-backend/internal/types"
)

// Body is the decoded, kind-specific content of a lesson localization.
// One variant per lesson kind; adding a kind means adding a variant and
// extending the codec switches, nothing else.
type Body interface {
	Kind() string
}

// TextBody holds free-form text/markup.
type TextBody struct {
	Markup string `json:"markup"`
}

func (TextBody) Kind() string { return types.LessonKindText }

// VideoBody holds a single absolute URL.
type VideoBody struct {
	URL string `json:"url"`
}

func (VideoBody) Kind() string { return types.LessonKindVideo }

// QuizQuestion is the wire shape of one quiz entry.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// QuizBody holds an ordered question list.
type QuizBody struct {
	Questions []QuizQuestion `json:"questions"`
}

func (QuizBody) Kind() string { return types.LessonKindQuiz }

// EmptyBody returns the zero-value body for a kind. Unknown kinds fall back
// to text so decode stays total even over bad legacy rows.
func EmptyBody(kind string) Body {
	switch kind {
	case types.LessonKindVideo:
		return VideoBody{}
	case types.LessonKindQuiz:
		return QuizBody{Questions: []QuizQuestion{}}
	default:
		return TextBody{}
	}
}
