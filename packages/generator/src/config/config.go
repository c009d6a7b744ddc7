package config

// GeneratorConfig represents the generation pass configuration
type GeneratorConfig struct {
	RuntimeImport string
	Debug         bool
}

// DefaultRuntimeImport is the Dart package the generated artifact imports.
const DefaultRuntimeImport = "package:lang_runtime/lang_runtime.dart"

// NewGeneratorConfig creates a new GeneratorConfig with optional parameters
func NewGeneratorConfig(opts ...GeneratorConfigOption) *GeneratorConfig {
	config := &GeneratorConfig{
		RuntimeImport: DefaultRuntimeImport,
		Debug:         false,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// GeneratorConfigOption is a function that modifies GeneratorConfig
type GeneratorConfigOption func(*GeneratorConfig)

// WithRuntimeImport sets the Dart import of the runtime package
func WithRuntimeImport(importPath string) GeneratorConfigOption {
	return func(c *GeneratorConfig) {
		if importPath != "" {
			c.RuntimeImport = importPath
		}
	}
}

// WithDebug sets the debug flag embedded in the generated facade
func WithDebug(debug bool) GeneratorConfigOption {
	return func(c *GeneratorConfig) {
		c.Debug = debug
	}
}
