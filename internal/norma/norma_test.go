package norma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderSubstitutesReceiverAndArgs(t *testing.T) {
	tmpl := Template("§0.push(§1)")
	assert.Equal(t, "xs.push(4)", tmpl.Render("xs", []string{"4"}))
}

func TestTemplateRenderBareSigilIsReceiverShorthand(t *testing.T) {
	tmpl := Template("§.size")
	assert.Equal(t, "xs.size", tmpl.Render("xs", nil))
}

func TestTemplateRenderHandlesMultipleArgPositions(t *testing.T) {
	tmpl := Template("§0.set(§1, §2)")
	assert.Equal(t, "m.set(k, v)", tmpl.Render("m", []string{"k", "v"}))
}

func TestFuncTranslationIsATranslation(t *testing.T) {
	var fn Translation = FuncTranslation(func(receiver string, args []string) string {
		return receiver + "!"
	})
	ft, ok := fn.(FuncTranslation)
	require.True(t, ok)
	assert.Equal(t, "xs!", ft("xs", nil))
}

func TestTableLookupFindsRegisteredKey(t *testing.T) {
	table := Table{
		{Collection: "list", Method: "adde"}: {Translation: Template("§0.push(§1)")},
	}
	entry, ok := table.Lookup("list", "adde")
	require.True(t, ok)
	assert.Equal(t, Template("§0.push(§1)"), entry.Translation)

	_, ok = table.Lookup("list", "nonexistent")
	assert.False(t, ok)
}

func TestRegistryLookupFallsBackToListWhenCollectionUnresolved(t *testing.T) {
	entry, ok := Default.Lookup(TargetTS, "", "adde")
	require.True(t, ok)
	assert.Equal(t, Template("§0.push(§1)"), entry.Translation)
}

func TestRegistryLookupUnknownTargetFails(t *testing.T) {
	_, ok := Default.Lookup("cobol", "list", "adde")
	assert.False(t, ok)
}

func TestRegistryLookupUnknownMethodFails(t *testing.T) {
	_, ok := Default.Lookup(TargetTS, "list", "nonexistentMethod")
	assert.False(t, ok)
}

func TestDefaultRegistryCoversAllTargets(t *testing.T) {
	for _, target := range AllTargets {
		_, ok := Default.Tables[target]
		assert.True(t, ok, "missing table for target %q", target)
	}
}

func TestDefaultTsListAdditaReturnsCopyTemplate(t *testing.T) {
	entry, ok := Default.Lookup(TargetTS, "list", "addita")
	require.True(t, ok)
	assert.Equal(t, Template("[...§0, §1]"), entry.Translation)
}
