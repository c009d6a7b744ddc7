package resolver

import (
	"context"
	"fmt"

	"langgen-go/packages/generator/src/language"
)

// Resolver retrieves the language index and per-language catalog content for
// a localization project. Implementations own transport concerns; retry
// policy, if any, lives behind this interface, never in the generation core.
type Resolver interface {
	// Languages fetches the ordered language index of the project.
	Languages(ctx context.Context, projectID, apiKey string) (language.List, error)

	// Content fetches the raw serialized catalog for one language. The
	// payload is returned verbatim; callers embed it without re-serializing.
	Content(ctx context.Context, entry language.IndexEntry) (string, error)
}

// RetrievalError reports a failure to obtain the language index or a
// language's content.
type RetrievalError struct {
	Stage  string
	Locale string
	Err    error
}

func (e *RetrievalError) Error() string {
	if e.Locale == "" {
		return fmt.Sprintf("retrieval failed during %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("retrieval failed during %s for locale %q: %v", e.Stage, e.Locale, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}
