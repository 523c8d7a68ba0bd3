package content

import (
	"errors"
	"testing"

	"github.com/lumenlearn/content-backend/internal/apperr"
	"github.com/lumenlearn/content-backend/internal/types"
)

func TestEncodeValidation(t *testing.T) {
	cases := []struct {
		name          string
		kind          string
		text          string
		publishIntent bool
		wantErr       bool
	}{
		{
			name: "text_draft_empty_ok",
			kind: types.LessonKindText,
			text: "",
		},
		{
			name:          "text_publish_empty_fails",
			kind:          types.LessonKindText,
			text:          "   ",
			publishIntent: true,
			wantErr:       true,
		},
		{
			name:          "text_publish_nonempty_ok",
			kind:          types.LessonKindText,
			text:          "# hello",
			publishIntent: true,
		},
		{
			name:          "video_publish_relative_url_fails",
			kind:          types.LessonKindVideo,
			text:          "/videos/intro.mp4",
			publishIntent: true,
			wantErr:       true,
		},
		{
			name:          "video_publish_absolute_url_ok",
			kind:          types.LessonKindVideo,
			text:          "https://cdn.example.com/intro.mp4",
			publishIntent: true,
		},
		{
			name: "video_draft_garbage_ok",
			kind: types.LessonKindVideo,
			text: "not a url",
		},
		{
			name: "quiz_draft_empty_array_ok",
			kind: types.LessonKindQuiz,
			text: "[]",
		},
		{
			name:          "quiz_publish_empty_array_fails",
			kind:          types.LessonKindQuiz,
			text:          "[]",
			publishIntent: true,
			wantErr:       true,
		},
		{
			name:    "quiz_unparseable_fails_even_as_draft",
			kind:    types.LessonKindQuiz,
			text:    "{not json",
			wantErr: true,
		},
		{
			name:          "quiz_publish_with_question_ok",
			kind:          types.LessonKindQuiz,
			text:          `[{"question":"2+2?","options":["3","4"],"correct_answer":"4"}]`,
			publishIntent: true,
		},
		{
			name:    "unknown_kind_fails",
			kind:    "diagram",
			text:    "x",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.kind, "en", tc.text, tc.publishIntent)
			if tc.wantErr && err == nil {
				t.Fatalf("Encode(%s, %q) expected error, got none", tc.kind, tc.text)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("Encode(%s, %q) unexpected error: %v", tc.kind, tc.text, err)
			}
			if tc.wantErr {
				var ve *apperr.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected ValidationError, got %T: %v", err, err)
				}
				if ve.Locale != "en" {
					t.Fatalf("ValidationError locale = %q, want en", ve.Locale)
				}
			}
		})
	}
}

func TestDecodeIsTotal(t *testing.T) {
	cases := []struct {
		name string
		kind string
		raw  []byte
	}{
		{name: "nil_raw", kind: types.LessonKindText, raw: nil},
		{name: "empty_raw", kind: types.LessonKindVideo, raw: []byte{}},
		{name: "garbage_text", kind: types.LessonKindText, raw: []byte("{{{{")},
		{name: "garbage_quiz", kind: types.LessonKindQuiz, raw: []byte(`"not an object"`)},
		{name: "wrong_shape_video", kind: types.LessonKindVideo, raw: []byte(`[1,2,3]`)},
		{name: "unknown_kind", kind: "diagram", raw: []byte(`{"x":1}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := Decode(tc.kind, tc.raw)
			if body == nil {
				t.Fatalf("Decode(%s) returned nil body", tc.kind)
			}
			if HasContent(body) {
				t.Fatalf("Decode(%s) of bad input should yield an empty body", tc.kind)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		kind string
		text string
	}{
		{name: "text", kind: types.LessonKindText, text: "# Welcome\n\nSome *markdown*."},
		{name: "video", kind: types.LessonKindVideo, text: "https://cdn.example.com/v/1.mp4"},
		{name: "quiz", kind: types.LessonKindQuiz, text: `[{"question":"capital of France?","options":["Paris","Lyon"],"correct_answer":"Paris"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := Encode(tc.kind, "en", tc.text, true)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			decoded := Decode(tc.kind, raw)
			raw2, err := Encode(tc.kind, "en", EditorText(decoded), true)
			if err != nil {
				t.Fatalf("re-Encode: %v", err)
			}
			if string(raw) != string(raw2) {
				t.Fatalf("round trip changed stored body:\n%s\nvs\n%s", raw, raw2)
			}
		})
	}
}

func TestEditorTextEmptyQuiz(t *testing.T) {
	if got := EditorText(QuizBody{}); got != "[]" {
		t.Fatalf("EditorText(empty quiz)=%q, want []", got)
	}
}
