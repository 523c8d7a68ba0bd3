package locales

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/lumenlearn/content-backend/internal/apperr"
	"github.com/lumenlearn/content-backend/internal/logger"
)

// Locale is a supported authoring/rendering language. Exactly one locale in a
// registry is the default.
type Locale struct {
	Code      string `yaml:"code" json:"code"`
	Label     string `yaml:"label" json:"label"`
	IsDefault bool   `yaml:"default" json:"is_default"`
}

// Registry is an immutable snapshot of the configured locales, built once at
// startup. Editing sessions hold on to one snapshot for their whole lifetime
// so a mid-edit config change cannot make locale tabs drift.
type Registry struct {
	locales []Locale
	def     Locale
	matcher language.Matcher
}

type registryFile struct {
	Locales []Locale `yaml:"locales"`
}

// DefaultLocales is used when no LOCALES_FILE is configured.
var DefaultLocales = []Locale{
	{Code: "en", Label: "English", IsDefault: true},
	{Code: "pt", Label: "Português"},
	{Code: "es", Label: "Español"},
}

func NewRegistry(locs []Locale) (*Registry, error) {
	if len(locs) == 0 {
		return nil, apperr.ErrNoLocales
	}

	snapshot := make([]Locale, len(locs))
	copy(snapshot, locs)

	defIdx := -1
	for i, l := range snapshot {
		if l.Code == "" {
			return nil, &apperr.ConfigurationError{Reason: fmt.Sprintf("locale %d has no code", i)}
		}
		if _, err := language.Parse(l.Code); err != nil {
			return nil, &apperr.ConfigurationError{Reason: fmt.Sprintf("invalid locale code %q: %v", l.Code, err)}
		}
		for _, prev := range snapshot[:i] {
			if prev.Code == l.Code {
				return nil, &apperr.ConfigurationError{Reason: fmt.Sprintf("duplicate locale code %q", l.Code)}
			}
		}
		if l.IsDefault {
			if defIdx >= 0 {
				return nil, &apperr.ConfigurationError{Reason: fmt.Sprintf("multiple default locales: %q and %q", snapshot[defIdx].Code, l.Code)}
			}
			defIdx = i
		}
	}
	// No explicit default: promote the first configured locale.
	if defIdx < 0 {
		snapshot[0].IsDefault = true
		defIdx = 0
	}

	tags := make([]language.Tag, 0, len(snapshot))
	for _, l := range snapshot {
		tags = append(tags, language.Make(l.Code))
	}

	return &Registry{
		locales: snapshot,
		def:     snapshot[defIdx],
		matcher: language.NewMatcher(tags),
	}, nil
}

// Load builds a registry from the YAML file at path, or from DefaultLocales
// when path is empty.
func Load(path string, log *logger.Logger) (*Registry, error) {
	if path == "" {
		if log != nil {
			log.Debug("No locales file configured, using built-in defaults")
		}
		return NewRegistry(DefaultLocales)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &apperr.ConfigurationError{Reason: fmt.Sprintf("reading locales file %q: %v", path, err)}
	}
	var f registryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, &apperr.ConfigurationError{Reason: fmt.Sprintf("parsing locales file %q: %v", path, err)}
	}
	if log != nil {
		log.Info("Loaded locales file", "path", path, "count", len(f.Locales))
	}
	return NewRegistry(f.Locales)
}

// List returns the locales in configured order.
func (r *Registry) List() []Locale {
	out := make([]Locale, len(r.locales))
	copy(out, r.locales)
	return out
}

func (r *Registry) Default() Locale { return r.def }

// Has reports whether code is a configured locale.
func (r *Registry) Has(code string) bool {
	for _, l := range r.locales {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Match negotiates the closest configured locale for an Accept-Language
// header value, falling back to the default locale.
func (r *Registry) Match(acceptLanguage string) Locale {
	if acceptLanguage == "" {
		return r.def
	}
	wanted, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(wanted) == 0 {
		return r.def
	}
	_, idx, conf := r.matcher.Match(wanted...)
	if conf == language.No || idx < 0 || idx >= len(r.locales) {
		return r.def
	}
	return r.locales[idx]
}
