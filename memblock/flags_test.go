package memblock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_MarkHotplug_InteriorSplit(t *testing.T) {
	l := New()
	l.Add(gib, 32*mib)
	l.MarkHotplug(gib+8*mib, 8*mib)

	requireSetState(t, l.Memory(), 3, 32*mib)
	require.Equal(t, Flags(0), l.Memory().Region(0).Flags)
	require.Equal(t, FlagHotplug, l.Memory().Region(1).Flags)
	require.Equal(t, Flags(0), l.Memory().Region(2).Flags)
	checkInvariants(t, l)
}

func Test_ClearHotplug_MergesBack(t *testing.T) {
	l := New()
	l.Add(gib, 32*mib)
	l.MarkHotplug(gib+8*mib, 8*mib)
	l.ClearHotplug(gib+8*mib, 8*mib)

	requireSetState(t, l.Memory(), 1, 32*mib)
	require.Equal(t, Flags(0), l.Memory().Region(0).Flags)
	checkInvariants(t, l)
}

func Test_MarkMirror_ComposesWithOtherFlags(t *testing.T) {
	l := New()
	l.Add(gib, 16*mib)
	l.MarkHotplug(gib, 16*mib)
	l.MarkMirror(gib, 8*mib)

	requireSetState(t, l.Memory(), 2, 16*mib)
	require.Equal(t, FlagHotplug|FlagMirror, l.Memory().Region(0).Flags)
	require.Equal(t, FlagHotplug, l.Memory().Region(1).Flags)
	checkInvariants(t, l)
}

func Test_MarkNoMap_AndClear(t *testing.T) {
	l := New()
	l.Add(gib, 16*mib)
	l.MarkNoMap(gib, 4*mib)
	require.Equal(t, FlagNoMap, l.Memory().Region(0).Flags)
	requireSetState(t, l.Memory(), 2, 16*mib)

	l.ClearNoMap(gib, 4*mib)
	requireSetState(t, l.Memory(), 1, 16*mib)
	checkInvariants(t, l)
}
