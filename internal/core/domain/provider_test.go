package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidIntegrationToken(t *testing.T) {
	valid := "secret_" + strings.Repeat("a1B2c3d4e5", 4) + "xyz"
	assert.Len(t, valid, 50)
	assert.True(t, ValidIntegrationToken(valid))

	assert.False(t, ValidIntegrationToken(""))
	assert.False(t, ValidIntegrationToken("secret_short"))
	assert.False(t, ValidIntegrationToken(strings.Repeat("a", 50)), "missing prefix")
	assert.False(t, ValidIntegrationToken(valid+"a"), "too long")
	assert.False(t, ValidIntegrationToken("secret_"+strings.Repeat("a", 42)+"!"), "symbol not allowed")
}

func TestValidProviderKey(t *testing.T) {
	assert.True(t, ValidProviderKey("sk-abcdefghijklmnopqrstuvwxyz"))
	assert.True(t, ValidProviderKey(strings.Repeat("A", 20)))

	assert.False(t, ValidProviderKey("short"))
	assert.False(t, ValidProviderKey(strings.Repeat("a", 19)))
	assert.False(t, ValidProviderKey(strings.Repeat("a", 19)+" "), "whitespace not allowed")
}

func TestClampTimeoutSeconds(t *testing.T) {
	assert.Equal(t, DefaultTimeoutSeconds, ClampTimeoutSeconds(0))
	assert.Equal(t, MinTimeoutSeconds, ClampTimeoutSeconds(5))
	assert.Equal(t, MaxTimeoutSeconds, ClampTimeoutSeconds(600))
	assert.Equal(t, 120, ClampTimeoutSeconds(120))
}

func TestArticleRequestValidate(t *testing.T) {
	req := ArticleRequest{Keyword: "coffee"}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "en-US", req.Language)
	assert.Equal(t, "informative", req.Style)

	empty := ArticleRequest{}
	assert.ErrorIs(t, empty.Validate(), ErrInvalidInput)

	badStyle := ArticleRequest{Topic: "tea", Style: "sarcastic"}
	assert.ErrorIs(t, badStyle.Validate(), ErrInvalidInput)

	badLang := ArticleRequest{Topic: "tea", Language: "fr-FR"}
	assert.ErrorIs(t, badLang.Validate(), ErrInvalidInput)
}
