package language_test

import (
	"context"
	"testing"

	"github.com/pemistahl/lingua-go"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/docquote/internal/domain"
	"github.com/davidbz/docquote/internal/language"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := language.NewResolver()
	ctx := context.Background()

	tests := []struct {
		name         string
		code         string
		expectedCode string
		expectedName string
		expectError  bool
	}{
		{name: "empty defaults to english", code: "", expectedCode: "en", expectedName: "English"},
		{name: "lowercase code", code: "es", expectedCode: "es", expectedName: "Spanish"},
		{name: "uppercase code", code: "DE", expectedCode: "de", expectedName: "German"},
		{name: "surrounding whitespace", code: " fr ", expectedCode: "fr", expectedName: "French"},
		{name: "unknown code", code: "xx", expectError: true},
		{name: "language name instead of code", code: "english", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, err := resolver.Resolve(ctx, tt.code)

			if tt.expectError {
				require.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expectedCode, lang.Code)
			require.Equal(t, tt.expectedName, lang.Name)
		})
	}
}

func TestResolverFor_RestrictsLanguages(t *testing.T) {
	resolver := language.NewResolverFor(lingua.English, lingua.Spanish)
	ctx := context.Background()

	lang, err := resolver.Resolve(ctx, "es")
	require.NoError(t, err)
	require.Equal(t, "es", lang.Code)

	_, err = resolver.Resolve(ctx, "de")
	require.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}
