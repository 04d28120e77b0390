package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeImperativeSuffix(t *testing.T) {
	m, ok := Analyze("adde")
	require.True(t, ok)
	assert.Equal(t, "add", m.Stem)
	assert.Equal(t, Imperativus, m.Form)
	assert.True(t, m.Flags.Mutates)
}

func TestAnalyzePerfectumSuffixReturnsNewAndAllocates(t *testing.T) {
	m, ok := Analyze("addita")
	require.True(t, ok)
	assert.Equal(t, "add", m.Stem)
	assert.Equal(t, Perfectum, m.Form)
	assert.True(t, m.Flags.ReturnsNew)
	assert.True(t, m.Flags.Allocates)
	assert.False(t, m.Flags.Mutates)
}

func TestAnalyzeFuturumIndicativumIsAsyncNonMutating(t *testing.T) {
	m, ok := Analyze("legivit")
	require.True(t, ok)
	assert.Equal(t, FuturumIndicativum, m.Form)
	assert.True(t, m.Flags.Async)
	assert.False(t, m.Flags.Mutates)
}

func TestAnalyzeNoMatchReturnsFalse(t *testing.T) {
	_, ok := Analyze("xyz")
	assert.False(t, ok)
}

func TestAnalyzeRejectsSuffixEqualToWholeWord(t *testing.T) {
	// a word that IS exactly a suffix has no stem left; not a valid parse.
	_, ok := Analyze("a")
	assert.False(t, ok)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a1, ok1 := Analyze("decapitata")
	a2, ok2 := Analyze("decapitata")
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, a1, a2)
}

func TestAnalyzeGreedyLongestSuffixCanMisbindAmbiguousStem(t *testing.T) {
	// "decapita" greedily matches the 3-char "ita" suffix, yielding stem
	// "decap" -- this is exactly the ambiguity radixForms exists to correct.
	m, ok := Analyze("decapita")
	require.True(t, ok)
	assert.Equal(t, "decap", m.Stem)
	assert.Equal(t, Perfectum, m.Form)
}

func TestAnalyzeWithStemValidatesDeclaredCanonicalStem(t *testing.T) {
	m, ok := AnalyzeWithStem("decapita", "decapit")
	require.True(t, ok)
	assert.Equal(t, "decapit", m.Stem)
	assert.Equal(t, Imperativus, m.Form)
	assert.True(t, m.Flags.Mutates)
}

func TestAnalyzeWithStemRejectsWordNotStartingWithStem(t *testing.T) {
	_, ok := AnalyzeWithStem("addita", "decapit")
	assert.False(t, ok)
}

func TestAnalyzeWithStemRejectsUnrecognizedSuffix(t *testing.T) {
	_, ok := AnalyzeWithStem("decapitzzz", "decapit")
	assert.False(t, ok)
}

func TestAnalyzeTriesLongerSuffixBucketsFirst(t *testing.T) {
	// "turus" (5 chars) must win over a shorter false match on the tail.
	m, ok := Analyze("conversaturus")
	require.True(t, ok)
	assert.Equal(t, ParticipiumPraesens, m.Form)
	assert.True(t, m.Flags.Async)
}
