package types

import (
	"math/big"
	"strings"
	"testing"

	"cosmossdk.io/math"
)

// maxUint128 returns 2^128 - 1, the boundary checkBounds rejects past.
func maxUint128() math.Int {
	max := new(big.Int).Lsh(big.NewInt(1), 128)
	max.Sub(max, big.NewInt(1))
	return math.NewIntFromBigInt(max)
}

func TestFixedScalar_AddOverflowAt128Bits(t *testing.T) {
	max128 := NewFixedFromInt(maxUint128())
	if _, err := max128.Add(NewFixedFromInt64(1)); err != ErrAddUnderflowOrOverflow {
		t.Fatalf("expected ErrAddUnderflowOrOverflow at the 128-bit boundary, got %v", err)
	}
}

func TestFixedScalar_SubUnderflow(t *testing.T) {
	a := NewFixedFromInt64(5)
	b := NewFixedFromInt64(10)
	if _, err := a.Sub(b); err != ErrSubUnderflowOrOverflow {
		t.Fatalf("expected ErrSubUnderflowOrOverflow, got %v", err)
	}
}

func TestFixedScalar_QuoByZero(t *testing.T) {
	a := NewFixedFromInt64(5)
	if _, err := a.Quo(ZeroFixed()); err != ErrDivUnderflowOrOverflow {
		t.Fatalf("expected ErrDivUnderflowOrOverflow, got %v", err)
	}
}

func TestFixedScalar_MulOverflow(t *testing.T) {
	huge := NewFixedFromInt(maxUint128())
	if _, err := huge.Mul(NewFixedFromInt64(2)); err != ErrMulUnderflowOrOverflow {
		t.Fatalf("expected ErrMulUnderflowOrOverflow, got %v", err)
	}
}

func TestFixedScalar_ArithmeticHappyPath(t *testing.T) {
	a := NewFixedFromInt64(100)
	b := NewFixedFromInt64(30)

	sum, err := a.Add(b)
	if err != nil || !sum.Equal(NewFixedFromInt64(130)) {
		t.Fatalf("unexpected Add result: %v, err=%v", sum, err)
	}

	diff, err := a.Sub(b)
	if err != nil || !diff.Equal(NewFixedFromInt64(70)) {
		t.Fatalf("unexpected Sub result: %v, err=%v", diff, err)
	}

	prod, err := a.Mul(b)
	if err != nil || !prod.Equal(NewFixedFromInt64(3000)) {
		t.Fatalf("unexpected Mul result: %v, err=%v", prod, err)
	}

	quo, err := a.Quo(b)
	if err != nil || !quo.Equal(NewFixedFromInt64(3)) {
		t.Fatalf("unexpected Quo result: %v, err=%v", quo, err)
	}
}

func TestParseFixedScalar_RejectsNegative(t *testing.T) {
	if _, err := ParseFixedScalar("-1"); err != ErrInvalidPriceOrQuantity {
		t.Fatalf("expected ErrInvalidPriceOrQuantity for a negative string, got %v", err)
	}
}

func TestParseFixedScalar_RejectsGarbage(t *testing.T) {
	if _, err := ParseFixedScalar("not-a-number"); err != ErrInvalidPriceOrQuantity {
		t.Fatalf("expected ErrInvalidPriceOrQuantity for a non-numeric string, got %v", err)
	}
}

func TestMinMax(t *testing.T) {
	a := NewFixedFromInt64(3)
	b := NewFixedFromInt64(7)
	if !Min(a, b).Equal(a) || !Max(a, b).Equal(b) {
		t.Fatal("Min/Max returned the wrong operand")
	}
}

func TestFixedScalar_String(t *testing.T) {
	f := NewFixedFromInt64(42)
	if f.String() != "42" {
		t.Fatalf("expected \"42\", got %q", f.String())
	}
	var zero FixedScalar
	if !strings.EqualFold(zero.String(), "0") {
		t.Fatalf("expected nil-backed FixedScalar to render \"0\", got %q", zero.String())
	}
}
