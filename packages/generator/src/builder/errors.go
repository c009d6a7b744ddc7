package builder

import (
	"errors"
	"fmt"
)

// ErrNoDefaultLanguage reports a resolved language list in which no entry is
// flagged as the project default. The pass aborts before registry emission.
var ErrNoDefaultLanguage = errors.New("no language in the resolved list is flagged as default")

// ConfigError reports a required configuration value that is missing or
// blank in the trigger input.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration field %q is missing or blank", e.Field)
}
