package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_TrueFact(t *testing.T) {
	result := Match("Argentina won the 2022 World Cup")

	require.True(t, result.Matched)
	assert.True(t, result.IsTrue)
	assert.Contains(t, result.Fact, "Argentina")
	assert.Empty(t, result.Correction)
}

func TestMatch_FalseFactWithCorrection(t *testing.T) {
	result := Match("France won the World Cup in 2022")

	require.True(t, result.Matched)
	assert.False(t, result.IsTrue)
	assert.Contains(t, result.Correction, "Argentina")
}

func TestMatch_CaseInsensitive(t *testing.T) {
	result := Match("THE EARTH IS FLAT")

	require.True(t, result.Matched)
	assert.False(t, result.IsTrue)
}

func TestMatch_NoMatch(t *testing.T) {
	result := Match("The weather was pleasant today")

	assert.False(t, result.Matched)
	assert.Empty(t, result.Fact)
}

func TestMatch_FirstEntryWins(t *testing.T) {
	// Text matching both the Argentina-true entry and the France-false
	// entry resolves to the earlier entry, deterministically.
	text := "2022 world cup argentina beat france who won nothing in 2022 world cup france won they say"
	first := Match(text)
	require.True(t, first.Matched)
	assert.True(t, first.IsTrue, "first-listed entry (Argentina, true) must win")

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Match(text))
	}
}

func TestMatch_TableEntries(t *testing.T) {
	tests := []struct {
		text   string
		isTrue bool
	}{
		{"France won the 2018 World Cup", true},
		{"COVID is caused by 5G towers", false},
		{"vaccines cause autism in children", false},
		{"Trump won the 2020 election", false},
		{"Biden won the 2020 election", true},
		{"Trump won the 2024 election", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			result := Match(tt.text)
			require.True(t, result.Matched)
			assert.Equal(t, tt.isTrue, result.IsTrue)
		})
	}
}
