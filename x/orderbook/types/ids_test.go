package types

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

func TestDerivePairID_Deterministic(t *testing.T) {
	a := DerivePairID(1, 2)
	b := DerivePairID(1, 2)
	if a != b {
		t.Fatal("DerivePairID must be deterministic for the same inputs")
	}
}

func TestDerivePairID_OrderSensitive(t *testing.T) {
	a := DerivePairID(1, 2)
	b := DerivePairID(2, 1)
	if a == b {
		t.Fatal("DerivePairID must distinguish (quote,base) from (base,quote)")
	}
}

func TestDeriveOrderID_NonceDistinguishes(t *testing.T) {
	pairID := DerivePairID(1, 2)
	trader := sdk.AccAddress([]byte("trader-address-bytes"))
	price := NewFixedFromInt64(100)
	qty := NewFixedFromInt64(5)

	a := DeriveOrderID(pairID, trader, price, qty, OrderTypeBidLimit, 1)
	b := DeriveOrderID(pairID, trader, price, qty, OrderTypeBidLimit, 2)
	if a == b {
		t.Fatal("DeriveOrderID must differ when the nonce differs")
	}
}

func TestDeriveOrderID_OrderTypeDistinguishes(t *testing.T) {
	pairID := DerivePairID(1, 2)
	trader := sdk.AccAddress([]byte("trader-address-bytes"))
	price := NewFixedFromInt64(100)
	qty := NewFixedFromInt64(5)

	a := DeriveOrderID(pairID, trader, price, qty, OrderTypeBidLimit, 1)
	b := DeriveOrderID(pairID, trader, price, qty, OrderTypeAskLimit, 1)
	if a == b {
		t.Fatal("DeriveOrderID must differ when the order type differs")
	}
}

func TestPairIdFromBytes_RejectsWrongLength(t *testing.T) {
	if _, ok := PairIdFromBytes([]byte{1, 2, 3}); ok {
		t.Fatal("expected PairIdFromBytes to reject a non-32-byte slice")
	}
}

func TestPairIdFromBytes_RoundTrips(t *testing.T) {
	want := DerivePairID(7, 9)
	got, ok := PairIdFromBytes(want.Bytes())
	if !ok || got != want {
		t.Fatalf("expected round trip to preserve the id, got %v (ok=%v)", got, ok)
	}
}

func TestOrderIdFromBytes_RejectsWrongLength(t *testing.T) {
	if _, ok := OrderIdFromBytes([]byte{1, 2, 3}); ok {
		t.Fatal("expected OrderIdFromBytes to reject a non-32-byte slice")
	}
}

func TestPairId_IsZero(t *testing.T) {
	var zero PairId
	if !zero.IsZero() {
		t.Fatal("expected the zero value to report IsZero")
	}
	nonZero := DerivePairID(1, 2)
	if nonZero.IsZero() {
		t.Fatal("expected a derived pair id to not be zero")
	}
}
