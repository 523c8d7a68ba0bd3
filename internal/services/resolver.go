package services

import (
  "github.com/lumenlearn/content-backend/internal/locales"
  "github.com/lumenlearn/content-backend/internal/types"
)

// ResolveLocalization picks which localization to serve for a requested
// locale. First match wins:
//   1. the requested locale, if published
//   2. the default locale, if published
//   3. any published locale, in registry order
//   4. nil when nothing is published (caller shows "not available")
// Unpublished content is never served, and the requester's language beats the
// default when both are published. Pure function of its inputs.
func ResolveLocalization(registry *locales.Registry, localizations []*types.LessonLocalization, requestedLocale string) *types.LessonLocalization {
  published := make(map[string]*types.LessonLocalization, len(localizations))
  for _, loc := range localizations {
    if loc != nil && loc.Published {
      published[loc.Locale] = loc
    }
  }
  if len(published) == 0 {
    return nil
  }

  if loc, ok := published[requestedLocale]; ok {
    return loc
  }
  if loc, ok := published[registry.Default().Code]; ok {
    return loc
  }
  for _, l := range registry.List() {
    if loc, ok := published[l.Code]; ok {
      return loc
    }
  }
  return nil
}
