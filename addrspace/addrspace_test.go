package addrspace

import (
	"math"
	"testing"
)

func TestRegionBasesAreOrderedAndSpaced(t *testing.T) {
	bases := []uint64{TxCtxBase, IxMetaBase, IxAccMetaBase, AccountsBase, IxPayloadBase, ReturnDataBase}
	for i := 1; i < len(bases); i++ {
		if bases[i] <= bases[i-1] {
			t.Fatalf("region bases must be strictly increasing, got %v", bases)
		}
	}
}

func TestAccountRegionStride(t *testing.T) {
	if AccountRegion(0) != AccountsBase {
		t.Errorf("AccountRegion(0): want %d, got %d", AccountsBase, AccountRegion(0))
	}
	if AccountRegion(3) != AccountsBase+3*S {
		t.Errorf("AccountRegion(3): want %d, got %d", AccountsBase+3*S, AccountRegion(3))
	}
}

func TestInstructionPayloadRegionStride(t *testing.T) {
	if InstructionPayloadRegion(0) != IxPayloadBase {
		t.Errorf("InstructionPayloadRegion(0): want %d, got %d", IxPayloadBase, InstructionPayloadRegion(0))
	}
	if InstructionPayloadRegion(2) != IxPayloadBase+2*S {
		t.Errorf("InstructionPayloadRegion(2): want %d, got %d", IxPayloadBase+2*S, InstructionPayloadRegion(2))
	}
}

func TestSaturatingAddOverflow(t *testing.T) {
	if got := SaturatingAdd(math.MaxUint64, 1); got != math.MaxUint64 {
		t.Errorf("SaturatingAdd overflow: want MaxUint64, got %d", got)
	}
	if got := SaturatingAdd(1, 2); got != 3 {
		t.Errorf("SaturatingAdd: want 3, got %d", got)
	}
}

func TestSaturatingMulOverflow(t *testing.T) {
	if got := SaturatingMul(math.MaxUint64, 2); got != math.MaxUint64 {
		t.Errorf("SaturatingMul overflow: want MaxUint64, got %d", got)
	}
	if got := SaturatingMul(4, 5); got != 20 {
		t.Errorf("SaturatingMul: want 20, got %d", got)
	}
}
