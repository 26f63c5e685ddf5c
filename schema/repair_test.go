package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/mwalto/jobpost/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepair(t *testing.T) {
	t.Parallel()

	t.Run("leaves valid JSON untouched", func(t *testing.T) {
		t.Parallel()

		raw := `{"@type":"JobPosting","title":"Engineer"}`
		assert.Equal(t, raw, schema.Repair(raw))
	})

	t.Run("recovers a subset from a document truncated mid-value", func(t *testing.T) {
		t.Parallel()

		raw := `{"@type":"JobPosting","hiringOrganization":{"name":"Acme"},"title":"Eng`
		repaired := schema.Repair(raw)

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(repaired), &doc))
		assert.Equal(t, "JobPosting", doc["@type"])

		org, ok := doc["hiringOrganization"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Acme", org["name"])
	})

	t.Run("escapes unescaped quotes inside HTML values", func(t *testing.T) {
		t.Parallel()

		raw := `{"description":"See <a href="jobs">our page</a> now","title":"Engineer"}`
		repaired := schema.Repair(raw)

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(repaired), &doc))
		assert.Equal(t, `See <a href="jobs">our page</a> now`, doc["description"])
		assert.Equal(t, "Engineer", doc["title"])
	})

	t.Run("does not escape legitimate string terminators", func(t *testing.T) {
		t.Parallel()

		raw := `{"a":"x","b":["y","z"],"c":{"d":"w"}}`
		repaired := schema.Repair(raw)

		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(repaired), &doc))
		assert.Equal(t, "x", doc["a"])
	})

	t.Run("hopeless input passes through without panicking", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "not json at all", "{{{{", `"dangling`} {
			_ = schema.Repair(raw)
		}
	})
}
