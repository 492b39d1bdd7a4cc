package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qasmc/qsast"
	"qasmc/symbols"
)

func TestRuntimeItemsAreStableAndComplete(t *testing.T) {
	c, _ := newCompiler(Config{}, symbols.NewTable(false))

	// Requesting in any order yields declarations sorted by name.
	c.need(stubU)
	c.need(stubBarrier)
	c.need(stubPow)

	items := c.runtimeItems()
	require.Len(t, items, 3)

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.(*qsast.OperationDecl).Name
	}
	assert.Equal(t, []string{stubBarrier, stubPow, stubU}, names)
}

func TestRuntimeStubDependencies(t *testing.T) {
	c, _ := newCompiler(Config{}, symbols.NewTable(false))

	// The bit-register conversions call the single-bit ones internally.
	c.need(stubResultArrayAsInt)
	assert.True(t, c.stubs[stubResultAsBoolAsInt])

	c, _ = newCompiler(Config{}, symbols.NewTable(false))
	c.need(stubIntAsResultArray)
	assert.True(t, c.stubs[stubBoolAsResult])
}

func TestUnusedStubsAreNotEmitted(t *testing.T) {
	c, _ := newCompiler(Config{}, symbols.NewTable(false))
	assert.Empty(t, c.runtimeItems())
}
