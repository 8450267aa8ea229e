package keeper

import (
	"testing"

	"github.com/latticefi/clob/x/orderbook/types"
)

func TestPriceIndex_InsertKeepsAscendingOrder(t *testing.T) {
	var idx priceIndex
	var inserted bool
	var pos int

	idx, pos, inserted = idx.insert(fx(100))
	if !inserted || pos != 0 {
		t.Fatalf("expected first insert at position 0, got pos=%d inserted=%v", pos, inserted)
	}

	idx, pos, inserted = idx.insert(fx(110))
	if !inserted || pos != 1 {
		t.Fatalf("expected 110 inserted at position 1, got pos=%d inserted=%v", pos, inserted)
	}

	idx, pos, inserted = idx.insert(fx(105))
	if !inserted || pos != 1 {
		t.Fatalf("expected 105 inserted between 100 and 110 at position 1, got pos=%d inserted=%v", pos, inserted)
	}

	want := []types.FixedScalar{fx(100), fx(105), fx(110)}
	if len(idx) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(idx))
	}
	for i, w := range want {
		if !idx[i].Equal(w) {
			t.Fatalf("index[%d] = %s, want %s", i, idx[i], w)
		}
	}
}

func TestPriceIndex_InsertDuplicateIsNoop(t *testing.T) {
	idx, _, _ := priceIndex{}.insert(fx(100))
	before := len(idx)

	idx, pos, inserted := idx.insert(fx(100))
	if inserted {
		t.Fatal("expected inserting an existing price to report inserted=false")
	}
	if pos != 0 {
		t.Fatalf("expected the existing position 0 to be returned, got %d", pos)
	}
	if len(idx) != before {
		t.Fatalf("expected no change in length, got %d want %d", len(idx), before)
	}
}

func TestPriceIndex_NeighborsAt(t *testing.T) {
	idx := priceIndex{fx(100), fx(105), fx(110)}

	pred, succ := idx.neighborsAt(0)
	if pred != nil || succ == nil || !succ.Equal(fx(105)) {
		t.Fatalf("unexpected neighbours at 0: pred=%v succ=%v", pred, succ)
	}

	pred, succ = idx.neighborsAt(1)
	if pred == nil || !pred.Equal(fx(100)) || succ == nil || !succ.Equal(fx(110)) {
		t.Fatalf("unexpected neighbours at 1: pred=%v succ=%v", pred, succ)
	}

	pred, succ = idx.neighborsAt(2)
	if pred == nil || !pred.Equal(fx(105)) || succ != nil {
		t.Fatalf("unexpected neighbours at 2: pred=%v succ=%v", pred, succ)
	}
}

func TestPriceIndex_Remove(t *testing.T) {
	idx := priceIndex{fx(100), fx(105), fx(110)}

	idx = idx.remove(fx(105))
	if len(idx) != 2 || !idx[0].Equal(fx(100)) || !idx[1].Equal(fx(110)) {
		t.Fatalf("unexpected index after removal: %v", idx)
	}

	// Removing an absent price is a no-op.
	unchanged := idx.remove(fx(999))
	if len(unchanged) != len(idx) {
		t.Fatalf("expected removing an absent price to be a no-op, got %v", unchanged)
	}
}

func TestPriceIndex_FirstLast(t *testing.T) {
	var empty priceIndex
	if _, ok := empty.first(); ok {
		t.Fatal("expected first() on an empty index to report false")
	}
	if _, ok := empty.last(); ok {
		t.Fatal("expected last() on an empty index to report false")
	}

	idx := priceIndex{fx(100), fx(105), fx(110)}
	first, ok := idx.first()
	if !ok || !first.Equal(fx(100)) {
		t.Fatalf("expected first() = 100, got %s ok=%v", first, ok)
	}
	last, ok := idx.last()
	if !ok || !last.Equal(fx(110)) {
		t.Fatalf("expected last() = 110, got %s ok=%v", last, ok)
	}
}

func TestSideDescriptor_Extremum(t *testing.T) {
	idx := priceIndex{fx(100), fx(105), fx(110)}

	askBest, ok := askDescriptor.extremum(idx)
	if !ok || !askBest.Equal(fx(100)) {
		t.Fatalf("expected ask extremum (first) = 100, got %s", askBest)
	}

	bidBest, ok := bidDescriptor.extremum(idx)
	if !ok || !bidBest.Equal(fx(110)) {
		t.Fatalf("expected bid extremum (last) = 110, got %s", bidBest)
	}
}

func TestSideDescriptor_Crosses(t *testing.T) {
	if !bidDescriptor.crosses(fx(110), fx(105)) {
		t.Fatal("expected a bid at 110 to cross an ask best of 105")
	}
	if bidDescriptor.crosses(fx(100), fx(105)) {
		t.Fatal("expected a bid at 100 to not cross an ask best of 105")
	}
	if !askDescriptor.crosses(fx(100), fx(105)) {
		t.Fatal("expected an ask at 100 to cross a bid best of 105")
	}
	if askDescriptor.crosses(fx(110), fx(105)) {
		t.Fatal("expected an ask at 110 to not cross a bid best of 105")
	}
}
