package llm_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwalto/jobpost"
	"github.com/mwalto/jobpost/llm"
	"github.com/mwalto/jobpost/mock"
)

const pageHTML = `<html><head><title>Jobs</title>
<script>trackVisit("analytics-beacon");</script>
</head><body>
<h1 id="role">Site Reliability Engineer</h1>
<span class="org">Stark Industries</span>
<div id="posting">You will run our production fleet, own the on-call rotation,
and drive reliability work across services. Requirements: five years of
operations experience and fluency in at least one systems language.</div>
</body></html>`

const selectorJSON = `[
  {"type": "css", "selector": "#role", "field": "title", "confidence": 0.9},
  {"type": "css", "selector": ".org", "field": "company", "confidence": 0.8},
  {"type": "css", "selector": "#posting", "field": "description", "confidence": 0.85}
]`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("applies discovered selectors to the page", func(t *testing.T) {
		t.Parallel()
		completer := &mock.Completer{
			CompleteFn: func(_ context.Context, prompt string, _ int, _ float64) (string, error) {
				assert.Contains(t, prompt, "https://stark.example.com/jobs/1")
				assert.Contains(t, prompt, "Site Reliability Engineer")
				return selectorJSON, nil
			},
		}
		e := llm.NewExtractor(completer)
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL:      "https://stark.example.com/jobs/1",
			HTML:     pageHTML,
			Rendered: true,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Site Reliability Engineer", result.Title)
		assert.Equal(t, "Stark Industries", result.Company)
		assert.Contains(t, result.Description, "on-call rotation")
		assert.Equal(t, llm.Confidence, result.Confidence)
		assert.Equal(t, jobpost.MethodLLM, result.Method)
		require.Len(t, result.Selectors, 3)
		assert.Equal(t, jobpost.MethodLLM, result.Selectors[0].Source)
	})

	t.Run("strips scripts from the prompt", func(t *testing.T) {
		t.Parallel()
		completer := &mock.Completer{
			CompleteFn: func(_ context.Context, prompt string, _ int, _ float64) (string, error) {
				assert.NotContains(t, prompt, "analytics-beacon")
				return selectorJSON, nil
			},
		}
		e := llm.NewExtractor(completer)
		_, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL: "https://stark.example.com/jobs/1", HTML: pageHTML, Rendered: true,
		})
		require.NoError(t, err)
	})

	t.Run("tolerates a fenced response", func(t *testing.T) {
		t.Parallel()
		completer := &mock.Completer{
			CompleteFn: func(context.Context, string, int, float64) (string, error) {
				return "```json\n" + selectorJSON + "\n```", nil
			},
		}
		e := llm.NewExtractor(completer)
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL: "https://stark.example.com/jobs/1", HTML: pageHTML, Rendered: true,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Site Reliability Engineer", result.Title)
	})

	t.Run("drops invalid selector entries", func(t *testing.T) {
		t.Parallel()
		response := `[
		  {"type": "css", "selector": "#role", "field": "title", "confidence": 0.9},
		  {"type": "css", "selector": "", "field": "company", "confidence": 0.9},
		  {"type": "css", "selector": "#x", "field": "location", "confidence": 0.9},
		  {"type": "css", "selector": "#posting", "field": "description", "confidence": 1.5},
		  {"type": "css", "selector": "#posting", "field": "description", "confidence": 0.8}
		]`
		completer := &mock.Completer{
			CompleteFn: func(context.Context, string, int, float64) (string, error) {
				return response, nil
			},
		}
		e := llm.NewExtractor(completer)
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL: "https://stark.example.com/jobs/1", HTML: pageHTML, Rendered: true,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Len(t, result.Selectors, 2)
	})

	t.Run("returns an error for an unparseable response", func(t *testing.T) {
		t.Parallel()
		completer := &mock.Completer{
			CompleteFn: func(context.Context, string, int, float64) (string, error) {
				return "I could not find any selectors on this page.", nil
			},
		}
		e := llm.NewExtractor(completer)
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL: "https://stark.example.com/jobs/1", HTML: pageHTML, Rendered: true,
		})
		require.Error(t, err)
		assert.Equal(t, jobpost.EINTERNAL, jobpost.ErrorCode(err))
		assert.Nil(t, result)
	})

	t.Run("returns nil when selectors match nothing", func(t *testing.T) {
		t.Parallel()
		completer := &mock.Completer{
			CompleteFn: func(context.Context, string, int, float64) (string, error) {
				return `[{"type": "css", "selector": "#missing", "field": "title", "confidence": 0.9}]`, nil
			},
		}
		e := llm.NewExtractor(completer)
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL: "https://stark.example.com/jobs/1", HTML: pageHTML, Rendered: true,
		})
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("re-fetches rendered html for plain input", func(t *testing.T) {
		t.Parallel()
		browserCalled := false
		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*jobpost.FetchResult, error) {
				browserCalled = true
				return &jobpost.FetchResult{HTML: pageHTML, Rendered: true}, nil
			},
		}
		completer := &mock.Completer{
			CompleteFn: func(_ context.Context, prompt string, _ int, _ float64) (string, error) {
				assert.Contains(t, prompt, "Site Reliability Engineer")
				return selectorJSON, nil
			},
		}
		e := llm.NewExtractor(completer, llm.WithBrowserFetcher(browser))
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL:      "https://stark.example.com/jobs/1",
			HTML:     "<html><body><div id=\"app\"></div></body></html>",
			Rendered: false,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, browserCalled)
	})

	t.Run("bounds the model call with its own deadline", func(t *testing.T) {
		t.Parallel()
		completer := &mock.Completer{
			CompleteFn: func(ctx context.Context, _ string, _ int, _ float64) (string, error) {
				deadline, ok := ctx.Deadline()
				require.True(t, ok, "model call must carry a deadline")
				assert.LessOrEqual(t, time.Until(deadline), llm.DefaultCompletionTimeout)
				return selectorJSON, nil
			},
		}
		e := llm.NewExtractor(completer)
		result, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL: "https://stark.example.com/jobs/1", HTML: pageHTML, Rendered: true,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
	})

	t.Run("skips the browser for rendered input", func(t *testing.T) {
		t.Parallel()
		browser := &mock.Fetcher{
			FetchFn: func(context.Context, string) (*jobpost.FetchResult, error) {
				t.Fatal("browser should not be called for rendered input")
				return nil, nil
			},
		}
		completer := &mock.Completer{
			CompleteFn: func(context.Context, string, int, float64) (string, error) {
				return selectorJSON, nil
			},
		}
		e := llm.NewExtractor(completer, llm.WithBrowserFetcher(browser))
		_, err := e.Extract(context.Background(), jobpost.ExtractInput{
			URL: "https://stark.example.com/jobs/1", HTML: pageHTML, Rendered: true,
		})
		require.NoError(t, err)
	})
}
