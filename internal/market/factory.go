package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/llm"
)

// Search provider selectors
const (
	ProviderAuto   = "auto"
	ProviderTavily = "tavily"
	ProviderGoogle = "google"
)

// Credential keys for the search sources
const (
	TavilyKeyName = "TAVILY_API_KEY"
	GoogleKeyName = "GOOGLE_SEARCH_API_KEY"
	GoogleCXName  = "GOOGLE_SEARCH_CX"
)

// NewSource builds the search source for a selector. "auto" uses every source
// with credentials, fanning out when both are available. A missing credential
// yields a *llm.CredentialError.
func NewSource(ctx context.Context, src llm.CredentialSource, selector string) (Source, error) {
	if src == nil {
		src = llm.EnvCredentials{}
	}
	selector = strings.ToLower(strings.TrimSpace(selector))
	if selector == "" {
		selector = ProviderAuto
	}

	tavilyKey, hasTavily := lookup(src, TavilyKeyName)
	googleKey, hasGoogleKey := lookup(src, GoogleKeyName)
	googleCX, hasGoogleCX := lookup(src, GoogleCXName)
	hasGoogle := hasGoogleKey && hasGoogleCX

	switch selector {
	case ProviderTavily:
		if !hasTavily {
			return nil, &llm.CredentialError{Provider: ProviderTavily, Keys: []string{TavilyKeyName}}
		}
		return NewTavilySource(tavilyKey), nil

	case ProviderGoogle:
		if !hasGoogle {
			return nil, &llm.CredentialError{Provider: ProviderGoogle, Keys: []string{GoogleKeyName + " and " + GoogleCXName}}
		}
		return NewGoogleSource(ctx, googleKey, googleCX)

	case ProviderAuto:
		var sources []Source
		if hasTavily {
			sources = append(sources, NewTavilySource(tavilyKey))
		}
		if hasGoogle {
			g, err := NewGoogleSource(ctx, googleKey, googleCX)
			if err != nil {
				return nil, err
			}
			sources = append(sources, g)
		}
		switch len(sources) {
		case 0:
			return nil, &llm.CredentialError{
				Provider: "market search",
				Keys:     []string{TavilyKeyName, GoogleKeyName + " and " + GoogleCXName},
			}
		case 1:
			return sources[0], nil
		}
		return NewCombined(sources...), nil
	}

	return nil, fmt.Errorf("unknown search provider %q (expected auto, tavily or google)", selector)
}

func lookup(src llm.CredentialSource, key string) (string, bool) {
	v, ok := src.Lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
