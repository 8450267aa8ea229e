package keeper

import (
	"encoding/json"
	"sort"

	"github.com/google/btree"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/latticefi/clob/x/orderbook/types"
)

// Price-level index store keys: AsksLevels/BidsLevels, a sorted sequence
// of active prices per pair, distinct from the PriceLevels map holding
// the FIFOs themselves.
var (
	AsksLevelsKeyPrefix = []byte{0x02}
	BidsLevelsKeyPrefix = []byte{0x03}
)

func levelsKey(prefix []byte, pair types.PairId) []byte {
	return append(append([]byte{}, prefix...), pair.Bytes()...)
}

// priceIndex is the sorted sequence of active prices for one side of one
// pair. Both sides are stored ascending; for asks the first element is
// best, for bids the last element is best — which end is "best" depends
// only on which side it is.
type priceIndex []types.FixedScalar

func (k *Keeper) getIndex(ctx sdk.Context, prefix []byte, pair types.PairId) priceIndex {
	bz := k.GetStore(ctx).Get(levelsKey(prefix, pair))
	if bz == nil {
		return priceIndex{}
	}
	var raw []string
	if err := json.Unmarshal(bz, &raw); err != nil {
		return priceIndex{}
	}
	idx := make(priceIndex, 0, len(raw))
	for _, s := range raw {
		v, err := types.ParseFixedScalar(s)
		if err != nil {
			continue
		}
		idx = append(idx, v)
	}
	return idx
}

func (k *Keeper) setIndex(ctx sdk.Context, prefix []byte, pair types.PairId, idx priceIndex) {
	raw := make([]string, len(idx))
	for i, v := range idx {
		raw[i] = v.String()
	}
	bz, _ := json.Marshal(raw)
	k.GetStore(ctx).Set(levelsKey(prefix, pair), bz)
}

func (k *Keeper) GetAsksIndex(ctx sdk.Context, pair types.PairId) priceIndex {
	return k.getIndex(ctx, AsksLevelsKeyPrefix, pair)
}

func (k *Keeper) GetBidsIndex(ctx sdk.Context, pair types.PairId) priceIndex {
	return k.getIndex(ctx, BidsLevelsKeyPrefix, pair)
}

func (k *Keeper) SetAsksIndex(ctx sdk.Context, pair types.PairId, idx priceIndex) {
	k.setIndex(ctx, AsksLevelsKeyPrefix, pair, idx)
}

func (k *Keeper) SetBidsIndex(ctx sdk.Context, pair types.PairId, idx priceIndex) {
	k.setIndex(ctx, BidsLevelsKeyPrefix, pair, idx)
}

// search returns the position at which price is found, or would need to be
// inserted to keep the sequence sorted ascending, via binary search.
// alreadyPresent tells the caller whether a FIFO append (no index
// mutation) suffices instead of a true insertion.
func (idx priceIndex) search(price types.FixedScalar) (pos int, alreadyPresent bool) {
	pos = sort.Search(len(idx), func(i int) bool {
		return idx[i].GTE(price)
	})
	if pos < len(idx) && idx[pos].Equal(price) {
		return pos, true
	}
	return pos, false
}

// insert returns idx with price inserted in sorted position, the position
// it was inserted at (or found at, if already present), and whether it was
// newly inserted (false if already present — the caller appends to the
// FIFO instead of touching the index).
func (idx priceIndex) insert(price types.FixedScalar) (priceIndex, int, bool) {
	pos, present := idx.search(price)
	if present {
		return idx, pos, false
	}
	out := make(priceIndex, len(idx)+1)
	copy(out, idx[:pos])
	out[pos] = price
	copy(out[pos+1:], idx[pos:])
	return out, pos, true
}

// neighborsAt returns the prices adjacent to position pos within idx (which
// must already include the entry at pos), or nil at either end.
func (idx priceIndex) neighborsAt(pos int) (pred, succ *types.FixedScalar) {
	if pos > 0 {
		p := idx[pos-1]
		pred = &p
	}
	if pos+1 < len(idx) {
		s := idx[pos+1]
		succ = &s
	}
	return pred, succ
}

// remove returns idx with price removed, if present.
func (idx priceIndex) remove(price types.FixedScalar) priceIndex {
	pos, present := idx.search(price)
	if !present {
		return idx
	}
	out := make(priceIndex, 0, len(idx)-1)
	out = append(out, idx[:pos]...)
	out = append(out, idx[pos+1:]...)
	return out
}

func (idx priceIndex) first() (types.FixedScalar, bool) {
	if len(idx) == 0 {
		return types.ZeroFixed(), false
	}
	return idx[0], true
}

func (idx priceIndex) last() (types.FixedScalar, bool) {
	if len(idx) == 0 {
		return types.ZeroFixed(), false
	}
	return idx[len(idx)-1], true
}

// ============ btree-backed depth read view ============
//
// ListPriceLevels projects the persisted sequence into an ordered
// in-memory index for a single query, giving O(log n + k) range scans over
// the depth. It exists purely for the "all price levels for pair" read
// view and is never the system of record — the priceIndex above,
// persisted as a sorted sequence, is.

type priceLevelItem struct {
	price types.FixedScalar
}

func (a priceLevelItem) Less(than btree.Item) bool {
	return a.price.LT(than.(priceLevelItem).price)
}

// ListPriceLevels returns the levels on one side of a pair's book, ordered
// from the best price outward, up to maxLevels (0 means unlimited).
func (k *Keeper) ListPriceLevels(ctx sdk.Context, pair types.PairId, isBid bool, maxLevels int) []*types.LinkedPriceLevel {
	var idx priceIndex
	if isBid {
		idx = k.GetBidsIndex(ctx, pair)
	} else {
		idx = k.GetAsksIndex(ctx, pair)
	}

	tree := btree.New(32)
	for _, p := range idx {
		tree.ReplaceOrInsert(priceLevelItem{price: p})
	}

	var out []*types.LinkedPriceLevel
	visit := func(item btree.Item) bool {
		lvl := k.GetPriceLevel(ctx, pair, item.(priceLevelItem).price)
		if lvl != nil {
			out = append(out, lvl)
		}
		return maxLevels == 0 || len(out) < maxLevels
	}
	if isBid {
		tree.Descend(visit) // best bid first = highest price
	} else {
		tree.Ascend(visit) // best ask first = lowest price
	}
	return out
}
