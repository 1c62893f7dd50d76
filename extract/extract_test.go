package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockPrefersTaggedFence(t *testing.T) {
	text := "Here is the plan:\n```\nplain fence\n```\nand the data:\n```json\n[\"javascript\", \"beginner\"]\n```"

	got := Block(text, "json")
	assert.Equal(t, `["javascript", "beginner"]`, got)
}

func TestBlockFallsBackToAnyFence(t *testing.T) {
	text := "Sure!\n```\n{\"title\": \"Weather App\"}\n```"

	got := Block(text, "json")
	assert.Equal(t, `{"title": "Weather App"}`, got)
}

func TestBlockStripsLanguageIdentifierFromUntaggedMatch(t *testing.T) {
	// A mermaid fence is still a usable candidate when asked for json;
	// the identifier line must not leak into the payload.
	text := "```mermaid\ngraph TD\nA-->B\n```"

	got := Block(text, "json")
	assert.Equal(t, "graph TD\nA-->B", got)
}

func TestBlockReturnsWholeTextWhenUnfenced(t *testing.T) {
	got := Block(`{"difficulty": "beginner"}`, "json")
	assert.Equal(t, `{"difficulty": "beginner"}`, got)
}

func TestBlockMermaidTag(t *testing.T) {
	text := "Some intro\n```mermaid\ngraph TD\n  Start --> End\n```\ntrailing prose"

	got := Block(text, "mermaid")
	assert.Equal(t, "graph TD\n  Start --> End", got)
}

func TestDecodeObject(t *testing.T) {
	v, err := Decode("```json\n{\"title\": \"Recipe Platform\", \"tags\": [\"fullstack\"]}\n```")
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Recipe Platform", m["title"])
}

func TestDecodeArray(t *testing.T) {
	v, err := Decode(`["css", "tailwind"]`)
	require.NoError(t, err)

	arr, ok := v.([]any)
	require.True(t, ok)
	assert.Len(t, arr, 2)
}

func TestDecodeMalformedPayload(t *testing.T) {
	_, err := Decode("Sorry, I can't produce JSON for that.")
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}
