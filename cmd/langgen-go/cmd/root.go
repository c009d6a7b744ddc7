package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"langgen-go/packages/generator/src/builder"
	"langgen-go/packages/generator/src/config"
	"langgen-go/packages/generator/src/resolver"
)

var (
	verbose       bool
	optionsFile   string
	apiBase       string
	runtimeImport string
	debugFacade   bool
)

var rootCmd = &cobra.Command{
	Use:   "langgen-go",
	Short: "Dart localization bindings generator",
	Long: `langgen-go turns a remote translation catalog into compilable Dart
source: typed accessors for every translation key, a language registry and
an embedded offline snapshot of every language's payload.

A pass is triggered by a credentials asset (<name>` + builder.InputSuffix + `) and
writes <name>` + builder.OutputSuffix + ` next to it.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnv)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&optionsFile, "options", "langgen.yaml", "tool options file")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "base URL of the localization service")
	rootCmd.PersistentFlags().StringVar(&runtimeImport, "runtime-import", "", "Dart import of the runtime package")
	rootCmd.PersistentFlags().BoolVar(&debugFacade, "debug-facade", false, "emit the facade with its debug flag set")
}

func initEnv() {
	_ = godotenv.Load()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// options are tool-level settings, layered as file < environment < flags.
type options struct {
	APIBase       string `yaml:"apiBase"`
	RuntimeImport string `yaml:"runtimeImport"`
	Debug         bool   `yaml:"debug"`
}

func loadOptions(cmd *cobra.Command) (options, error) {
	var opts options

	data, err := os.ReadFile(optionsFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return options{}, err
		}
	case os.IsNotExist(err):
		// the options file is optional
	default:
		return options{}, err
	}

	if env := os.Getenv("LANGGEN_API_BASE"); env != "" {
		opts.APIBase = env
	}

	if cmd.Flags().Changed("api-base") {
		opts.APIBase = apiBase
	}
	if cmd.Flags().Changed("runtime-import") {
		opts.RuntimeImport = runtimeImport
	}
	if cmd.Flags().Changed("debug-facade") {
		opts.Debug = debugFacade
	}
	return opts, nil
}

// passBuilder is the part of builder.Builder the commands use.
type passBuilder interface {
	Build(ctx context.Context, path string, input io.Reader) (*builder.Result, error)
}

func newBuilder(cmd *cobra.Command) (*builder.Builder, error) {
	opts, err := loadOptions(cmd)
	if err != nil {
		return nil, err
	}
	cfg := config.NewGeneratorConfig(
		config.WithRuntimeImport(opts.RuntimeImport),
		config.WithDebug(opts.Debug),
	)
	return builder.New(resolver.NewHTTP(opts.APIBase), cfg, slog.Default()), nil
}
