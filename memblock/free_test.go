package memblock

import (
	"testing"
)

func Test_Free_Simple(t *testing.T) {
	l := New()
	l.Reserve(gib, 8*kib)
	l.Reserve(gib+64*kib, 32*kib)
	l.Free(gib, 8*kib)

	requireRegion(t, l.Reserved(), 0, gib+64*kib, 32*kib)
	requireSetState(t, l.Reserved(), 1, 32*kib)
	checkInvariants(t, l)
}

func Test_Free_Absent_Noop(t *testing.T) {
	l := New()
	l.Reserve(gib, 32*kib)
	l.Free(16*gib, 1*mib)

	requireSetState(t, l.Reserved(), 1, 32*kib)
	checkInvariants(t, l)
}

func Test_Free_Within_Splits(t *testing.T) {
	l := New()
	l.Reserve(gib, 32*mib)
	l.Free(gib+8*mib, 8*mib)

	requireRegion(t, l.Reserved(), 0, gib, 8*mib)
	requireRegion(t, l.Reserved(), 1, gib+16*mib, 16*mib)
	requireSetState(t, l.Reserved(), 2, 24*mib)
	checkInvariants(t, l)
}

func Test_Free_OnlyRegion(t *testing.T) {
	l := New()
	l.Reserve(gib, 32*kib)
	l.Free(gib, 32*kib)

	requireSetState(t, l.Reserved(), 0, 0)
	checkInvariants(t, l)
}

func Test_Free_OverlapTwo(t *testing.T) {
	l := New()
	l.Reserve(16*mib, 32*mib)
	l.Reserve(64*mib, 64*mib)
	l.Free(32*mib, 48*mib)

	requireRegion(t, l.Reserved(), 0, 16*mib, 16*mib)
	requireRegion(t, l.Reserved(), 1, 80*mib, 48*mib)
	requireSetState(t, l.Reserved(), 2, 64*mib)
	checkInvariants(t, l)
}
