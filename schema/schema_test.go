package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjNonObjectYieldsEmpty(t *testing.T) {
	assert.Empty(t, Obj("a string"))
	assert.Empty(t, Obj(nil))
	assert.Empty(t, Obj([]any{1, 2}))
}

func TestStrDefaults(t *testing.T) {
	m := map[string]any{"title": "Weather App", "blank": "   ", "num": 42}

	assert.Equal(t, "Weather App", Str(m, "title", "New Project"))
	assert.Equal(t, "New Project", Str(m, "missing", "New Project"))
	assert.Equal(t, "New Project", Str(m, "blank", "New Project"))
	assert.Equal(t, "New Project", Str(m, "num", "New Project"))
}

func TestChoiceNormalizesAndDefaults(t *testing.T) {
	levels := []string{"beginner", "intermediate", "advanced"}

	assert.Equal(t, "advanced", Choice(map[string]any{"level": "Advanced"}, "level", levels, "beginner"))
	assert.Equal(t, "beginner", Choice(map[string]any{"level": "expert"}, "level", levels, "beginner"))
	assert.Equal(t, "beginner", Choice(map[string]any{}, "level", levels, "beginner"))
	assert.Equal(t, "beginner", Choice(map[string]any{"level": 3}, "level", levels, "beginner"))
}

func TestTagsTruncatesToMax(t *testing.T) {
	raw := []any{"javascript", "async", "beginner", "promises"}

	assert.Equal(t, []string{"javascript", "async", "beginner"}, Tags(raw, "general", 3))
}

func TestTagsNoUpperBoundWhenMaxZero(t *testing.T) {
	raw := []any{"a", "b", "c", "d"}

	assert.Len(t, Tags(raw, "other", 0), 4)
}

func TestTagsFallbacks(t *testing.T) {
	assert.Equal(t, []string{"general"}, Tags("not an array", "general", 3))
	assert.Equal(t, []string{"general"}, Tags([]any{}, "general", 3))
	assert.Equal(t, []string{"other"}, Tags([]any{12, true}, "other", 0))
}

func TestTagsSkipsNonStringEntries(t *testing.T) {
	raw := []any{"frontend", 7, "api"}

	assert.Equal(t, []string{"frontend", "api"}, Tags(raw, "other", 3))
}
