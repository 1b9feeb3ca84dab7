package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiModelAliases(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.0-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-2.5-flash", geminiModels))
}

func TestGeminiSchemaConversion(t *testing.T) {
	s := geminiSchema(readingSchema().Definition)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{"headline", "strengths"}, s.Required)
	require.Contains(t, s.Properties, "strengths")

	strengths := s.Properties["strengths"]
	assert.Equal(t, genai.TypeArray, strengths.Type)
	require.NotNil(t, strengths.Items)
	assert.Equal(t, genai.TypeString, strengths.Items.Type)
	require.NotNil(t, strengths.MinItems)
	assert.EqualValues(t, 1, *strengths.MinItems)

	assert.Equal(t, []string{"warm", "cool"}, s.Properties["tone"].Enum)
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringList([]string{"a", "b"}))
	assert.Equal(t, []string{"a"}, stringList([]any{"a", 3}))
	assert.Nil(t, stringList(nil))
}
