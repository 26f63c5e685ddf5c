package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwalto/jobpost"
	"github.com/mwalto/jobpost/htmltomarkdown"
	"github.com/mwalto/jobpost/trafilatura"
)

func TestExtractor_MainText(t *testing.T) {
	t.Parallel()

	t.Run("recovers article text and drops navigation", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("We are hiring a platform engineer to build our deployment tooling and own production reliability. ", 5)
		html := `<html><head><title>Job</title></head><body>
		<nav><a href="/">Home</a><a href="/jobs">Jobs</a><a href="/about">About</a></nav>
		<article><h1>Platform Engineer</h1><p>` + body + `</p></article>
		<footer><a href="/privacy">Privacy Policy</a></footer>
		</body></html>`

		e := trafilatura.NewExtractor()
		text, err := e.MainText(html)
		require.NoError(t, err)
		assert.Contains(t, text, "deployment tooling")
		assert.NotContains(t, text, "Privacy Policy")
	})

	t.Run("keeps list structure when a converter is configured", func(t *testing.T) {
		t.Parallel()

		intro := strings.Repeat("We are hiring a platform engineer to build our deployment tooling and own production reliability. ", 3)
		html := `<html><head><title>Job</title></head><body>
		<article><h1>Platform Engineer</h1><p>` + intro + `</p>
		<ul><li>Run the deployment platform</li><li>Own incident response</li></ul></article>
		</body></html>`

		e := trafilatura.NewExtractor(trafilatura.WithConverter(htmltomarkdown.NewConverter()))
		text, err := e.MainText(html)
		require.NoError(t, err)
		assert.Contains(t, text, "deployment tooling")
		assert.Contains(t, text, "- Run the deployment platform")
		assert.Contains(t, text, "- Own incident response")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		e := trafilatura.NewExtractor()
		_, err := e.MainText("   ")
		require.Error(t, err)
		assert.Equal(t, jobpost.EINVALID, jobpost.ErrorCode(err))
	})
}
