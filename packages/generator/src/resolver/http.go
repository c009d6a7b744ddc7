package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	textlang "golang.org/x/text/language"

	"langgen-go/packages/generator/src/language"
)

// DefaultBaseURL is the production endpoint of the localization service.
const DefaultBaseURL = "https://api.langgen.dev"

const (
	stageLanguages = "language list fetch"
	stageContent   = "content fetch"
)

// HTTP resolves project data from the localization service REST API.
type HTTP struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTP creates an HTTP resolver. An empty baseURL selects DefaultBaseURL.
func NewHTTP(baseURL string) *HTTP {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTP{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type languageJSON struct {
	ID         int64  `json:"id"`
	Locale     string `json:"locale"`
	Name       string `json:"name"`
	Direction  string `json:"direction"`
	IsDefault  bool   `json:"isDefault"`
	IsBestFit  bool   `json:"isBestFit"`
	ContentURL string `json:"contentUrl"`
}

// Languages implements Resolver.
func (h *HTTP) Languages(ctx context.Context, projectID, apiKey string) (language.List, error) {
	url := fmt.Sprintf("%s/v1/projects/%s/languages", h.BaseURL, projectID)
	body, err := h.get(ctx, url, apiKey)
	if err != nil {
		return nil, &RetrievalError{Stage: stageLanguages, Err: err}
	}

	var raw []languageJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &RetrievalError{Stage: stageLanguages, Err: fmt.Errorf("decoding language index: %w", err)}
	}

	list := make(language.List, 0, len(raw))
	for _, entry := range raw {
		lang, err := entry.toLanguage()
		if err != nil {
			return nil, &RetrievalError{Stage: stageLanguages, Locale: entry.Locale, Err: err}
		}
		list = append(list, language.IndexEntry{Language: lang, ContentURL: entry.ContentURL})
	}
	return list, nil
}

// Content implements Resolver.
func (h *HTTP) Content(ctx context.Context, entry language.IndexEntry) (string, error) {
	body, err := h.get(ctx, entry.ContentURL, "")
	if err != nil {
		return "", &RetrievalError{Stage: stageContent, Locale: entry.Locale, Err: err}
	}
	return string(body), nil
}

func (h *HTTP) get(ctx context.Context, url, apiKey string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}
	return io.ReadAll(resp.Body)
}

func (j languageJSON) toLanguage() (language.Language, error) {
	if _, err := textlang.Parse(strings.ReplaceAll(j.Locale, "_", "-")); err != nil {
		return language.Language{}, fmt.Errorf("invalid locale code %q: %w", j.Locale, err)
	}

	var dir language.Direction
	switch j.Direction {
	case "ltr", "":
		dir = language.DirectionLTR
	case "rtl":
		dir = language.DirectionRTL
	default:
		return language.Language{}, fmt.Errorf("unknown text direction %q", j.Direction)
	}

	return language.Language{
		ID:        j.ID,
		Locale:    j.Locale,
		Name:      j.Name,
		Direction: dir,
		IsDefault: j.IsDefault,
		IsBestFit: j.IsBestFit,
	}, nil
}
