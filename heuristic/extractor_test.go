package heuristic_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwalto/jobpost"
	"github.com/mwalto/jobpost/heuristic"
)

const globexHTML = `<!DOCTYPE html>
<html>
<head>
<title>Staff Product Designer at Globex - Careers</title>
</head>
<body>
<nav><a href="/">Home</a> <a href="/jobs">Jobs</a> <a href="/about">About</a></nav>
<h1>Staff Product Designer</h1>
<div class="job-description">
<p>We are looking for a Staff Product Designer to own design across our core
product surfaces. You will partner closely with engineering and research to
ship polished experiences at a high cadence.</p>
<h2>Responsibilities</h2>
<ul><li>Lead design reviews</li><li>Mentor designers</li><li>Define the design system roadmap</li><li>Ship end to end</li></ul>
<h2>Qualifications</h2>
<p>8+ years of product design experience, including experience leading
complex projects across multiple teams.</p>
</div>
<footer>Privacy Policy | Terms of Service | All rights reserved</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and company from the title tag pattern", func(t *testing.T) {
		t.Parallel()
		e := heuristic.NewExtractor()
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL:  "https://globex.com/careers/123",
			HTML: globexHTML,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Staff Product Designer", result.Title)
		assert.Equal(t, "Globex", result.Company)
		assert.Contains(t, result.Description, "Responsibilities")
		assert.Contains(t, result.Description, "design system roadmap")
		assert.Equal(t, heuristic.Confidence, result.Confidence)
		assert.Equal(t, jobpost.MethodHeuristic, result.Method)
		assert.Equal(t, "heuristic", result.Extractor)
		assert.NotEmpty(t, result.Excerpt)
	})

	t.Run("returns nil for a page that is only navigation", func(t *testing.T) {
		t.Parallel()
		html := `<html><head><title>Careers</title></head><body>
		<nav><a href="/">Home</a> <a href="/about">About</a> <a href="/contact">Contact)</a></nav>
		<footer>Privacy Policy | Terms of Service | Cookie Policy | Equal Opportunity Employer |
		All rights reserved. Sign in. Create account. View all jobs. Related jobs. Job alerts.
		Share this job. Back to search results. Sitemap. Copyright 2026.</footer>
		</body></html>`
		e := heuristic.NewExtractor()
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL:  "https://example.com/jobs/1",
			HTML: html,
		})
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("derives the company from the domain when nothing else matches", func(t *testing.T) {
		t.Parallel()
		html := `<html><head><title>Senior Backend Engineer</title></head><body>
		<h1>Senior Backend Engineer</h1>
		<div class="job-description">` + longDescription() + `</div>
		</body></html>`
		e := heuristic.NewExtractor()
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL:  "https://www.initech.io/jobs/42",
			HTML: html,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Initech", result.Company)
	})

	t.Run("prefers cached selectors over heuristics", func(t *testing.T) {
		t.Parallel()
		html := `<html><head><title>Generic Page Title at Wrongco</title></head><body>
		<span id="jt">Machine Learning Engineer</span>
		<span id="co">Hooli</span>
		<div id="desc">` + longDescription() + `</div>
		</body></html>`
		e := heuristic.NewExtractor()
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL:  "https://hooli.example.com/jobs/7",
			HTML: html,
			Selectors: []jobpost.Selector{
				{Type: jobpost.SelectorCSS, Field: jobpost.FieldTitle, Value: "#jt"},
				{Type: jobpost.SelectorCSS, Field: jobpost.FieldCompany, Value: "#co"},
				{Type: jobpost.SelectorCSS, Field: jobpost.FieldDescription, Value: "#desc"},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Machine Learning Engineer", result.Title)
		assert.Equal(t, "Hooli", result.Company)
		assert.Len(t, result.Selectors, 3)
	})

	t.Run("skips cached selectors that yield nothing", func(t *testing.T) {
		t.Parallel()
		e := heuristic.NewExtractor()
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL:  "https://globex.com/careers/123",
			HTML: globexHTML,
			Selectors: []jobpost.Selector{
				{Type: jobpost.SelectorCSS, Field: jobpost.FieldTitle, Value: "#does-not-exist"},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Staff Product Designer", result.Title)
		assert.Empty(t, result.Selectors)
	})

	t.Run("falls back to substantial paragraphs", func(t *testing.T) {
		t.Parallel()
		para := strings.Repeat("You will build reliable distributed systems with our platform team. ", 4)
		html := `<html><head><title>Platform Engineer at Vandelay</title></head><body>
		<h1>Platform Engineer</h1>
		<p>` + para + `</p>
		<p>` + para + `</p>
		<p>Equal opportunity employer statement: we welcome applications from everyone regardless of background, and we comply with all applicable laws in every jurisdiction where we operate.</p>
		</body></html>`
		e := heuristic.NewExtractor()
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL:  "https://vandelay.example.com/jobs/9",
			HTML: html,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Contains(t, result.Description, "distributed systems")
		assert.NotContains(t, result.Description, "Equal opportunity employer statement")
	})

	t.Run("uses the content recoverer as a last resort", func(t *testing.T) {
		t.Parallel()
		html := `<html><head><title>Data Engineer at Umbrella</title></head><body>
		<h1>Data Engineer</h1>
		<table><tr><td>` + longDescription() + `</td></tr></table>
		</body></html>`
		e := heuristic.NewExtractor(heuristic.WithContentRecoverer(recovererFunc(func(string) (string, error) {
			return longDescription(), nil
		})))
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL:  "https://umbrella.example.com/jobs/3",
			HTML: html,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Contains(t, result.Description, "responsibilities")
	})

	t.Run("returns nil for empty input", func(t *testing.T) {
		t.Parallel()
		e := heuristic.NewExtractor()
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{URL: "https://example.com", HTML: "  "})
		require.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestConfig_IsNavigation(t *testing.T) {
	t.Parallel()
	cfg := heuristic.DefaultConfig()

	t.Run("rejects short text", func(t *testing.T) {
		t.Parallel()
		assert.True(t, cfg.IsNavigation("Apply now"))
	})

	t.Run("rejects text dominated by navigation patterns", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("Privacy Policy Terms of Service Cookie Policy Sign in ", 6)
		assert.True(t, cfg.IsNavigation(text))
	})

	t.Run("rejects text opening with navigation boilerplate", func(t *testing.T) {
		t.Parallel()
		text := "Back to search results. " + longDescription()
		assert.True(t, cfg.IsNavigation(text))
	})

	t.Run("accepts a real description", func(t *testing.T) {
		t.Parallel()
		assert.False(t, cfg.IsNavigation(longDescription()))
	})
}

type recovererFunc func(html string) (string, error)

func (f recovererFunc) MainText(html string) (string, error) { return f(html) }

func longDescription() string {
	return "We are hiring an engineer to join our core infrastructure group. " +
		"Your responsibilities include designing storage systems, improving deployment " +
		"tooling, and mentoring teammates. Our qualifications: five or more years of " +
		"production experience with distributed systems, strong debugging skills, and " +
		"clear written communication. We offer competitive salary and benefits."
}
