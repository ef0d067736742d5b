package web

import (
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAsset(t *testing.T, name string) string {
	t.Helper()
	f, err := GetAssets().Open(name)
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(b)
}

// Optional controls may be missing from the page, so no lookup is dereferenced directly.
var unguardedLookup = regexp.MustCompile(`querySelector\([^)]*\)\.\w`)

func TestScriptsGuardOptionalElements(t *testing.T) {
	for _, name := range []string{"slideshow.js", "chat.js"} {
		src := readAsset(t, name)
		assert.Empty(t, unguardedLookup.FindAllString(src, -1), name)
	}
	assert.Contains(t, readAsset(t, "slideshow.js"), "if (prev) prev.addEventListener")
}

func TestChatScriptMountsWidget(t *testing.T) {
	src := readAsset(t, "chat.js")
	assert.Contains(t, src, "customElements.whenDefined('openai-chatkit')")
	assert.Contains(t, src, "/api/create-session")
	assert.Contains(t, src, "/api/config")
	assert.Contains(t, src, "/api/checkout")
	assert.Contains(t, src, "initEmbeddedCheckout")
}

func TestTemplatesParse(t *testing.T) {
	assert.NotNil(t, Templates().Lookup("index.html"))
}
