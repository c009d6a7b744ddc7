// Package builder drives one localization generation pass: trigger check,
// credential parsing, language resolution, catalog fetches, emission and
// persistence. A pass is a pure function of its inputs; nothing survives it,
// and no output file is written unless every stage succeeds.
package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"langgen-go/packages/generator/src/config"
	"langgen-go/packages/generator/src/document"
	"langgen-go/packages/generator/src/emit"
	"langgen-go/packages/generator/src/language"
	"langgen-go/packages/generator/src/output"
	"langgen-go/packages/generator/src/resolver"
)

const (
	// InputSuffix is the trigger pattern: only assets with this suffix are
	// processed, everything else is a no-op.
	InputSuffix = ".lang.json"

	// OutputSuffix replaces InputSuffix to form the output slot, so output
	// identity derives 1:1 from input identity.
	OutputSuffix = ".lang.dart"
)

// Matches reports whether the input asset identity triggers a pass.
func Matches(path string) bool {
	return strings.HasSuffix(path, InputSuffix)
}

// OutputPath derives the output slot for a matching input asset.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, InputSuffix) + OutputSuffix
}

// Credentials are the two required values read from the trigger input.
type Credentials struct {
	ProjectID string `json:"projectId"`
	APIKey    string `json:"apiKey"`
}

// Result describes a finished pass.
type Result struct {
	OutputPath string
	Skipped    bool
}

// Builder runs generation passes. One Builder may serve concurrent passes;
// it holds no per-pass state.
type Builder struct {
	resolver resolver.Resolver
	cfg      *config.GeneratorConfig
	log      *slog.Logger
}

// New creates a Builder.
func New(res resolver.Resolver, cfg *config.GeneratorConfig, log *slog.Logger) *Builder {
	if cfg == nil {
		cfg = config.NewGeneratorConfig()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Builder{resolver: res, cfg: cfg, log: log}
}

// Build runs one pass for the input asset at path, reading its bytes from
// input. A non-matching path returns a skipped result and no error. Any
// failure aborts the pass before the output slot is touched; callers must
// treat a missing output as the failure signal.
func (b *Builder) Build(ctx context.Context, path string, input io.Reader) (*Result, error) {
	if !Matches(path) {
		return &Result{Skipped: true}, nil
	}

	log := b.log.With("pass", uuid.NewString(), "input", path)

	creds, err := parseCredentials(input)
	if err != nil {
		return nil, failStage(log, "config", err)
	}

	log.Debug("resolving language list", "project", creds.ProjectID)
	list, err := b.resolver.Languages(ctx, creds.ProjectID, creds.APIKey)
	if err != nil {
		return nil, failStage(log, "resolve", err)
	}

	defaultEntry, ok := list.Default()
	if !ok {
		return nil, failStage(log, "resolve", ErrNoDefaultLanguage)
	}

	log.Debug("fetching default catalog", "locale", defaultEntry.Locale)
	defaultPayload, err := b.resolver.Content(ctx, defaultEntry)
	if err != nil {
		return nil, failStage(log, "fetch", err)
	}
	doc, err := document.Decode(strings.NewReader(defaultPayload))
	if err != nil {
		return nil, failStage(log, "fetch", err)
	}

	bundle, err := b.fetchBundle(ctx, list, defaultEntry.Locale, defaultPayload)
	if err != nil {
		return nil, failStage(log, "fetch", err)
	}

	source, err := b.emitArtifact(doc, creds, list, bundle)
	if err != nil {
		return nil, failStage(log, "emit", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, failStage(log, "persist", err)
	}
	outPath := OutputPath(path)
	if err := os.WriteFile(outPath, []byte(source), 0o644); err != nil {
		return nil, failStage(log, "persist", err)
	}

	log.Info("pass complete", "output", outPath, "sections", len(doc.Sections), "languages", len(list))
	return &Result{OutputPath: outPath}, nil
}

// fetchBundle retrieves every language's payload. Fetches are independent
// reads keyed by locale and run concurrently; results are combined in list
// order. The default language's payload is already in hand and is reused.
// If any fetch fails the whole bundle fails; a partial bundle would silently
// degrade some locales at runtime.
func (b *Builder) fetchBundle(ctx context.Context, list language.List, defaultLocale, defaultPayload string) (language.BundledSet, error) {
	payloads := make([]string, len(list))
	errs := make([]error, len(list))

	var wg sync.WaitGroup
	for i, entry := range list {
		if entry.Locale == defaultLocale {
			payloads[i] = defaultPayload
			continue
		}
		wg.Add(1)
		go func(i int, entry language.IndexEntry) {
			defer wg.Done()
			payloads[i], errs[i] = b.resolver.Content(ctx, entry)
		}(i, entry)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	set := make(language.BundledSet, 0, len(list))
	for i, entry := range list {
		set = append(set, language.BundledTranslation{Locale: entry.Locale, Payload: payloads[i]})
	}
	return set, nil
}

// emitArtifact runs the emitters in their fixed order and returns the
// complete artifact text. Order matters: the facade references the section
// types, and a fixed order keeps output byte-identical across runs.
func (b *Builder) emitArtifact(doc *document.Document, creds Credentials, list language.List, bundle language.BundledSet) (string, error) {
	ctx := output.NewEmitterContext()
	emit.Header(ctx, b.cfg)
	if err := emit.Sections(ctx, doc); err != nil {
		return "", err
	}
	if err := emit.Facade(ctx, doc); err != nil {
		return "", err
	}
	if err := emit.Credentials(ctx, creds.ProjectID, creds.APIKey); err != nil {
		return "", err
	}
	if err := emit.Registry(ctx, list); err != nil {
		return "", err
	}
	if err := emit.Bundle(ctx, bundle); err != nil {
		return "", err
	}
	emit.Footer(ctx, b.cfg)
	return ctx.ToSource(), nil
}

// parseCredentials decodes the trigger input and enforces that both required
// values are present and non-blank.
func parseCredentials(r io.Reader) (Credentials, error) {
	var creds Credentials
	if err := json.NewDecoder(r).Decode(&creds); err != nil {
		return Credentials{}, fmt.Errorf("decoding trigger input: %w", err)
	}
	if strings.TrimSpace(creds.ProjectID) == "" {
		return Credentials{}, &ConfigError{Field: "projectId"}
	}
	if strings.TrimSpace(creds.APIKey) == "" {
		return Credentials{}, &ConfigError{Field: "apiKey"}
	}
	return creds, nil
}

func failStage(log *slog.Logger, stage string, err error) error {
	log.Error("pass failed", "stage", stage, "error", err)
	return fmt.Errorf("%s: %w", stage, err)
}
