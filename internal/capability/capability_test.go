package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelStringRendering(t *testing.T) {
	assert.Equal(t, "unsupported", Unsupported.String())
	assert.Equal(t, "emulated", Emulated.String())
	assert.Equal(t, "supported", Supported.String())
}

func TestMatrixLookupUnknownTargetDefaultsUnsupported(t *testing.T) {
	assert.Equal(t, Unsupported, Default.Lookup("cobol", FeatureRegex))
}

func TestMatrixLookupUnknownFeatureDefaultsUnsupported(t *testing.T) {
	row := Matrix{"ts": {}}
	assert.Equal(t, Unsupported, row.Lookup("ts", FeatureAsyncFunction))
}

func TestMatrixLookupReturnsDeclaredLevel(t *testing.T) {
	assert.Equal(t, Supported, Default.Lookup("ts", FeatureAsyncFunction))
	assert.Equal(t, Emulated, Default.Lookup("ts", FeatureArenaAllocator))
}

func TestDefaultMatrixHasRowForEverySixTargets(t *testing.T) {
	for _, target := range []string{"ts", "py", "rs", "zig", "go", "cpp"} {
		_, ok := Default[target]
		assert.True(t, ok, "missing capability row for target %q", target)
	}
}

func TestZigHasNoGeneratorsButSupportsArenaAllocator(t *testing.T) {
	assert.Equal(t, Unsupported, Default.Lookup("zig", FeatureGenerator))
	assert.Equal(t, Supported, Default.Lookup("zig", FeatureArenaAllocator))
}

func TestCppHasNoAsyncFunctionsOrGenerators(t *testing.T) {
	assert.Equal(t, Unsupported, Default.Lookup("cpp", FeatureAsyncFunction))
	assert.Equal(t, Unsupported, Default.Lookup("cpp", FeatureGenerator))
}

func TestTypeScriptRowHasNoUnsupportedFeature(t *testing.T) {
	row := Default["ts"]
	for feature, level := range row {
		assert.NotEqual(t, Unsupported, level, "ts row unexpectedly unsupported for %q", feature)
	}
}
