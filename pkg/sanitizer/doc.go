// Package sanitizer turns free-form user text into strings that are safe to
// embed in a URL query string and in the search index's query syntax.
//
// The query-safe alphabet is ASCII letters, ASCII digits and the space
// character. QueryText replaces every other character with spaces, one space
// per UTF-16 code unit, so the output has the same length as the input when
// measured the way a browser measures form values:
//
//	sanitizer.QueryText("Black Lotus!")            // "Black Lotus "
//	sanitizer.QueryText("Jace, the Mind Sculptor") // "Jace  the Mind Sculptor"
//	sanitizer.QueryText("Æther Vial")              // " ther Vial"
//
// Non-ASCII letters are not folded to their closest ASCII equivalent; they
// become spaces like any other disallowed character. Callers who want folding
// opt in with WithTransliteration, which runs the text through go-unidecode
// before filtering. The result is still query-safe but no longer length
// preserving.
//
// # Logging sanitizer
//
// Text wraps the pipeline with a structured logger and writes one debug line
// per call in the form
//
//	Sanitized '<original>' to '<sanitized>'
//
// Example:
//
//	s := sanitizer.New(sanitizer.WithLogger(log))
//	clean := s.Sanitize(ctx, r.FormValue("query"))
//
// # Pipelines
//
// Apply and Compose chain string transforms:
//
//	fold := sanitizer.Compose(sanitizer.Transliterate, sanitizer.QueryText)
//	fold("Æther Vial") // "AEther Vial"
//
// None of the helpers return errors and none keep global state, so they are
// safe for concurrent use.
package sanitizer
