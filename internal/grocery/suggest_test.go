package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, Similarity("Rocket", " rocket "))
	assert.Equal(t, 0.0, Similarity("", ""))
	assert.InDelta(t, 0.875, Similarity("capsicum", "capsicun"), 1e-9)
	assert.Less(t, Similarity("salt", "chicken breast"), DefaultSuggestThreshold)
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	catalog := []string{"capsicum", "courgette", "coriander", "rocket", "Capsicum"}

	got := Suggest("capsicom", catalog, DefaultSuggestThreshold, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "capsicum", got[0].Name)

	assert.Empty(t, Suggest("rocket", catalog, DefaultSuggestThreshold, 3), "exact match needs no suggestion")
	assert.Empty(t, Suggest("dragonfruit", catalog, DefaultSuggestThreshold, 3))
	assert.Empty(t, Suggest("  ", catalog, DefaultSuggestThreshold, 3))
}

func TestSuggestOrderingAndLimit(t *testing.T) {
	t.Parallel()

	got := Suggest("onion", []string{"onions", "onion rings", "red onion", "union"}, 0.5, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "onions", got[0].Name)
	assert.GreaterOrEqual(t, got[0].Similarity, got[1].Similarity)
}

func TestUnknown(t *testing.T) {
	t.Parallel()

	got := Unknown(
		[]string{"Rocket", "sumac", "SUMAC", "capsicum", "dragonfruit", ""},
		[]string{"rocket", "capsicum"},
	)
	assert.Equal(t, []string{"sumac", "dragonfruit"}, got)
}
