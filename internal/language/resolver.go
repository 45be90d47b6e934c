// Package language validates the language an explanation is written in.
package language

import (
	"context"
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/davidbz/docquote/internal/domain"
)

// DefaultCode is used when a request names no language.
const DefaultCode = "en"

// Resolver implements domain.LanguageResolver using lingua's language catalogue.
type Resolver struct {
	supported map[lingua.IsoCode639_1]lingua.Language
}

// NewResolver creates a resolver accepting every language lingua knows.
func NewResolver() *Resolver {
	return NewResolverFor(lingua.AllLanguages()...)
}

// NewResolverFor creates a resolver restricted to the given languages.
func NewResolverFor(languages ...lingua.Language) *Resolver {
	supported := make(map[lingua.IsoCode639_1]lingua.Language, len(languages))
	for _, lang := range languages {
		supported[lang.IsoCode639_1()] = lang
	}

	return &Resolver{
		supported: supported,
	}
}

// Resolve maps an ISO 639-1 code such as "es" or "EN" to a supported language.
func (r *Resolver) Resolve(_ context.Context, code string) (domain.Language, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = DefaultCode
	}

	iso := lingua.GetIsoCode639_1FromValue(strings.ToUpper(code))
	lang, ok := r.supported[iso]
	if !ok || iso == lingua.UnknownIsoCode639_1 {
		return domain.Language{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, code)
	}

	return domain.Language{
		Code: strings.ToLower(iso.String()),
		Name: titleCase(lang.String()),
	}, nil
}

func titleCase(name string) string {
	if name == "" {
		return name
	}
	return name[:1] + strings.ToLower(name[1:])
}
