package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftbox/draftbox/utils"
)

func TestSanitizeStripsScripts(t *testing.T) {
	out := utils.Sanitize(`<p>hi</p><script>steal()</script><a href="x" onclick="x()">link</a>`)
	assert.Contains(t, out, "<p>hi</p>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
}

func TestSanitizeTitleStripsAllMarkup(t *testing.T) {
	assert.Equal(t, "hello", utils.SanitizeTitle("<b>hello</b>"))
	assert.Equal(t, "plain title", utils.SanitizeTitle("plain title"))
}
