package builder_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langgen-go/packages/generator/src/builder"
	"langgen-go/packages/generator/src/document"
	"langgen-go/packages/generator/src/language"
	"langgen-go/packages/generator/src/resolver"
)

// fakeResolver serves canned language lists and payloads.
type fakeResolver struct {
	list     language.List
	payloads map[string]string
	listErr  error
	fetchErr map[string]error
}

func (f *fakeResolver) Languages(ctx context.Context, projectID, apiKey string) (language.List, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeResolver) Content(ctx context.Context, entry language.IndexEntry) (string, error) {
	if err := f.fetchErr[entry.Locale]; err != nil {
		return "", err
	}
	payload, ok := f.payloads[entry.Locale]
	if !ok {
		return "", &resolver.RetrievalError{Stage: "content fetch", Locale: entry.Locale, Err: fmt.Errorf("no payload")}
	}
	return payload, nil
}

func twoLanguages() language.List {
	return language.List{
		{Language: language.Language{ID: 1, Locale: "en", Name: "English", Direction: language.DirectionLTR, IsDefault: true}, ContentURL: "https://cdn.example.com/en"},
		{Language: language.Language{ID: 2, Locale: "da", Name: "Danish", Direction: language.DirectionLTR, IsBestFit: true}, ContentURL: "https://cdn.example.com/da"},
	}
}

func inputAsset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.lang.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func build(t *testing.T, res resolver.Resolver, path string) (*builder.Result, error) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	return builder.New(res, nil, nil).Build(context.Background(), path, f)
}

func TestTriggerContract(t *testing.T) {
	assert.True(t, builder.Matches("app.lang.json"))
	assert.False(t, builder.Matches("app.json"))
	assert.False(t, builder.Matches("app.lang.dart"))
	assert.Equal(t, "app.lang.dart", builder.OutputPath("app.lang.json"))
	assert.Equal(t, filepath.Join("l10n", "app.lang.dart"), builder.OutputPath(filepath.Join("l10n", "app.lang.json")))
}

func TestBuildEndToEnd(t *testing.T) {
	res := &fakeResolver{
		list: twoLanguages(),
		payloads: map[string]string{
			"en": `{"general":{"appName":"My App"}}`,
			"da": `{"general":{"appName":"Min App"}}`,
		},
	}
	path := inputAsset(t, `{"projectId": "proj-1", "apiKey": "key-1"}`)

	result, err := build(t, res, path)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, builder.OutputPath(path), result.OutputPath)

	got, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)

	want := `// GENERATED CODE - DO NOT MODIFY BY HAND
// Regenerated on every langgen-go build pass; edits will be lost.

import 'package:lang_runtime/lang_runtime.dart';

class General {
  String get appName => Lang.getText('general', 'appName') ?? 'My App';
}

class Localization {
  final General general = General();
}

const LangConfig _config = LangConfig('proj-1', 'key-1');

final List<LangLocale> _languages = <LangLocale>[
  LangLocale(1, 'en', 'English', LangTextDirection.ltr, true, false),
  LangLocale(2, 'da', 'Danish', LangTextDirection.ltr, false, true),
];

final Map<String, String> _bundledTranslations = <String, String>{
  'en': r'''{"general":{"appName":"My App"}}''',
  'da': r'''{"general":{"appName":"Min App"}}''',
};

final Lang lang = Lang(
  _config,
  Localization(),
  _languages,
  _bundledTranslations,
  '',
  false,
);
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	res := &fakeResolver{
		list: twoLanguages(),
		payloads: map[string]string{
			"en": `{"general":{"appName":"My App"}}`,
			"da": `{"general":{"appName":"Min App"}}`,
		},
	}
	path := inputAsset(t, `{"projectId": "proj-1", "apiKey": "key-1"}`)

	first, err := build(t, res, path)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(first.OutputPath)
	require.NoError(t, err)

	second, err := build(t, res, path)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, string(firstBytes), string(secondBytes))
}

func TestBuildSkipsNonMatchingInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	result, err := build(t, &fakeResolver{}, path)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
}

func TestBuildBundleCoversExactlyTheLanguageList(t *testing.T) {
	res := &fakeResolver{
		list: twoLanguages(),
		payloads: map[string]string{
			"en": `{"g":{"k":"v"}}`,
			"da": `{"g":{"k":"w"}}`,
			"de": `{"g":{"k":"x"}}`, // not in the list, must not appear
		},
	}
	path := inputAsset(t, `{"projectId": "p", "apiKey": "k"}`)

	result, err := build(t, res, path)
	require.NoError(t, err)

	got, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	src := string(got)
	assert.Contains(t, src, "'en': ")
	assert.Contains(t, src, "'da': ")
	assert.NotContains(t, src, "'de': ")
}

func TestBuildMissingAPIKey(t *testing.T) {
	path := inputAsset(t, `{"projectId": "proj-1"}`)

	_, err := build(t, &fakeResolver{list: twoLanguages()}, path)
	var configErr *builder.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "apiKey", configErr.Field)

	// verify absence of the output slot, not emptiness
	_, statErr := os.Stat(builder.OutputPath(path))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildBlankProjectID(t *testing.T) {
	path := inputAsset(t, `{"projectId": "   ", "apiKey": "k"}`)

	_, err := build(t, &fakeResolver{}, path)
	var configErr *builder.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "projectId", configErr.Field)
}

func TestBuildUndecodableInput(t *testing.T) {
	path := inputAsset(t, `not json`)

	_, err := build(t, &fakeResolver{}, path)
	require.Error(t, err)
	_, statErr := os.Stat(builder.OutputPath(path))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildNoDefaultLanguage(t *testing.T) {
	list := twoLanguages()
	list[0].IsDefault = false
	res := &fakeResolver{list: list, payloads: map[string]string{"en": `{}`, "da": `{}`}}
	path := inputAsset(t, `{"projectId": "p", "apiKey": "k"}`)

	_, err := build(t, res, path)
	require.ErrorIs(t, err, builder.ErrNoDefaultLanguage)

	_, statErr := os.Stat(builder.OutputPath(path))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildRetrievalFailureProducesNoOutput(t *testing.T) {
	res := &fakeResolver{
		list:     twoLanguages(),
		payloads: map[string]string{"en": `{"g":{"k":"v"}}`},
		fetchErr: map[string]error{
			"da": &resolver.RetrievalError{Stage: "content fetch", Locale: "da", Err: fmt.Errorf("boom")},
		},
	}
	path := inputAsset(t, `{"projectId": "p", "apiKey": "k"}`)

	_, err := build(t, res, path)
	var retrievalErr *resolver.RetrievalError
	require.ErrorAs(t, err, &retrievalErr)
	assert.Equal(t, "da", retrievalErr.Locale)

	_, statErr := os.Stat(builder.OutputPath(path))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildMalformedDefaultCatalog(t *testing.T) {
	res := &fakeResolver{
		list:     twoLanguages(),
		payloads: map[string]string{"en": `{"general": {"count": 1}}`, "da": `{}`},
	}
	path := inputAsset(t, `{"projectId": "p", "apiKey": "k"}`)

	_, err := build(t, res, path)
	var malformed *document.MalformedDocumentError
	require.ErrorAs(t, err, &malformed)

	_, statErr := os.Stat(builder.OutputPath(path))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildCancelledContextWritesNothing(t *testing.T) {
	res := &fakeResolver{
		list:     twoLanguages(),
		payloads: map[string]string{"en": `{"g":{"k":"v"}}`, "da": `{}`},
	}
	path := inputAsset(t, `{"projectId": "p", "apiKey": "k"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = builder.New(res, nil, nil).Build(ctx, path, f)
	require.Error(t, err)
	_, statErr := os.Stat(builder.OutputPath(path))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildEmptyCatalog(t *testing.T) {
	res := &fakeResolver{
		list:     twoLanguages(),
		payloads: map[string]string{"en": `{}`, "da": `{}`},
	}
	path := inputAsset(t, `{"projectId": "p", "apiKey": "k"}`)

	result, err := build(t, res, path)
	require.NoError(t, err)

	got, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(got), "class Localization {\n}")
	assert.True(t, strings.Contains(string(got), "final Lang lang = Lang("))
}
