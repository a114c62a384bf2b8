package domain

import (
	"math/big"
	"testing"
)

// TestValue_IsZero 测试数值与非数值类型的零值判断
func TestValue_IsZero(t *testing.T) {
	if !NewU32(0).IsZero() {
		t.Error("expected U32(0) to be zero")
	}
	if NewU32(1).IsZero() {
		t.Error("expected U32(1) to not be zero")
	}
	if !NewF64(0).IsZero() {
		t.Error("expected F64(0) to be zero")
	}
	if NewString("").IsZero() {
		t.Error("strings never participate in autoinc substitution")
	}
}

// TestValue_IsNumeric 测试数值种类判断，用于自增列替换前的守卫
func TestValue_IsNumeric(t *testing.T) {
	if !NewI64(0).IsNumeric() {
		t.Error("expected I64 to be numeric")
	}
	if NewBool(false).IsNumeric() {
		t.Error("expected Bool to not be numeric")
	}
	if NewBytes(nil).IsNumeric() {
		t.Error("expected Bytes to not be numeric")
	}
}

// TestValue_EqualAndLess 测试值比较的全序关系
func TestValue_EqualAndLess(t *testing.T) {
	a := NewU32(3)
	b := NewU32(7)
	if !a.Less(b) {
		t.Error("expected 3 < 7")
	}
	if b.Less(a) {
		t.Error("expected 7 not < 3")
	}
	if !a.Equal(NewU32(3)) {
		t.Error("expected 3 == 3")
	}
	if a.Equal(b) {
		t.Error("expected 3 != 7")
	}
	// different kinds are never equal, ordered by kind tag
	if !NewBool(true).Less(NewU8(0)) {
		t.Error("expected Bool kind to sort before U8 kind")
	}
}

// TestValue_I128RoundTrip 测试大整数在 Value 中的保真
func TestValue_I128RoundTrip(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	v := NewI128(huge)
	if v.Int.Cmp(huge) != 0 {
		t.Error("expected I128 value to preserve the exact big.Int")
	}
}

// TestRange_Contains 测试区间边界的闭开语义
func TestRange_Contains(t *testing.T) {
	lo := NewU32(10)
	hi := NewU32(20)

	inclusive := Range{Min: &lo, Max: &hi, MinInclusive: true, MaxInclusive: true}
	if !inclusive.Contains(NewU32(10)) {
		t.Error("expected inclusive range to contain its lower bound")
	}
	if !inclusive.Contains(NewU32(20)) {
		t.Error("expected inclusive range to contain its upper bound")
	}
	if inclusive.Contains(NewU32(21)) {
		t.Error("expected inclusive range to exclude values past the upper bound")
	}

	exclusive := Range{Min: &lo, Max: &hi}
	if exclusive.Contains(NewU32(10)) {
		t.Error("expected exclusive range to exclude its lower bound")
	}
	if exclusive.Contains(NewU32(20)) {
		t.Error("expected exclusive range to exclude its upper bound")
	}
	if !exclusive.Contains(NewU32(15)) {
		t.Error("expected exclusive range to contain a midpoint value")
	}

	unbounded := Range{}
	if !unbounded.Contains(NewU32(999999)) {
		t.Error("expected an unbounded range to contain everything")
	}
}
