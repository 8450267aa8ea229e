package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/latticefi/clob/x/orderbook/types"
)

// sideDescriptor collapses the mirror-image bid/ask arms the matching and
// placement pipelines would otherwise need. Every method is written from
// the point of view of "the side a resting order lives on" — bestPrice,
// the sorted index, and which end of that index counts as the extremum
// to remove or insert against.
type sideDescriptor interface {
	// isBid reports whether this descriptor is the bid side.
	isBid() bool

	// restingOrderType is the OrderType tag resting orders on this side carry.
	restingOrderType() types.OrderType

	// bestPrice reads the orderbook's best-price cache for this side.
	bestPrice(ob *types.Orderbook) types.FixedScalar

	// setBestPrice writes the orderbook's best-price cache for this side.
	setBestPrice(ob *types.Orderbook, p types.FixedScalar)

	// getIndex loads this side's persisted sorted price sequence.
	getIndex(k *Keeper, ctx sdk.Context, pair types.PairId) priceIndex

	// setIndex persists this side's sorted price sequence.
	setIndex(k *Keeper, ctx sdk.Context, pair types.PairId, idx priceIndex)

	// extremum returns the current best price on this side (first for asks,
	// last for bids), and whether the index is non-empty.
	extremum(idx priceIndex) (types.FixedScalar, bool)

	// popExtremum removes and returns this side's best price from idx.
	popExtremum(idx priceIndex) (types.FixedScalar, priceIndex, bool)

	// onward returns the neighbour price a consuming match walks to next —
	// `next` on both sides: under LinkedPriceLevel's asymmetric Prev/Next
	// convention Next always points at the next-best level, so the matching
	// loop can call `onward` and mean "next best" regardless of side.
	onward(lvl *types.LinkedPriceLevel) *types.FixedScalar

	// worseThanLimit reports whether neighbourPrice is beyond a limit
	// taker's willingness to trade: for asks, strictly greater than the
	// taker's price; for bids, strictly less.
	worseThanLimit(neighbourPrice, limitPrice types.FixedScalar) bool

	// crosses reports whether a limit order at price crosses the opposite
	// side's current best (ask: price <= best bid; bid: price >= best ask),
	// given the opposite best is non-zero.
	crosses(price, oppositeBest types.FixedScalar) bool

	// setTowardHigher sets the neighbour pointer on lvl that points toward
	// the ascending-higher adjacent price: Next for asks, Prev for bids.
	setTowardHigher(lvl *types.LinkedPriceLevel, p *types.FixedScalar)

	// setTowardLower sets the neighbour pointer on lvl that points toward
	// the ascending-lower adjacent price: Prev for asks, Next for bids.
	setTowardLower(lvl *types.LinkedPriceLevel, p *types.FixedScalar)
}

type askSide struct{}
type bidSide struct{}

var askDescriptor sideDescriptor = askSide{}
var bidDescriptor sideDescriptor = bidSide{}

// sideFor returns the descriptor for the side a resting order of orderType
// belongs to (the *opposite* side from what a taker of that type consumes).
func sideFor(orderType types.OrderType) sideDescriptor {
	if orderType.IsBid() {
		return bidDescriptor
	}
	return askDescriptor
}

// oppositeSideFor returns the descriptor for the side a taker of orderType
// consumes against.
func oppositeSideFor(orderType types.OrderType) sideDescriptor {
	if orderType.IsBid() {
		return askDescriptor
	}
	return bidDescriptor
}

func (askSide) isBid() bool { return false }
func (bidSide) isBid() bool { return true }

func (askSide) restingOrderType() types.OrderType { return types.OrderTypeAskLimit }
func (bidSide) restingOrderType() types.OrderType { return types.OrderTypeBidLimit }

func (askSide) bestPrice(ob *types.Orderbook) types.FixedScalar { return ob.BestAskPrice }
func (bidSide) bestPrice(ob *types.Orderbook) types.FixedScalar { return ob.BestBidPrice }

func (askSide) setBestPrice(ob *types.Orderbook, p types.FixedScalar) { ob.BestAskPrice = p }
func (bidSide) setBestPrice(ob *types.Orderbook, p types.FixedScalar) { ob.BestBidPrice = p }

func (askSide) getIndex(k *Keeper, ctx sdk.Context, pair types.PairId) priceIndex {
	return k.GetAsksIndex(ctx, pair)
}
func (bidSide) getIndex(k *Keeper, ctx sdk.Context, pair types.PairId) priceIndex {
	return k.GetBidsIndex(ctx, pair)
}

func (askSide) setIndex(k *Keeper, ctx sdk.Context, pair types.PairId, idx priceIndex) {
	k.SetAsksIndex(ctx, pair, idx)
}
func (bidSide) setIndex(k *Keeper, ctx sdk.Context, pair types.PairId, idx priceIndex) {
	k.SetBidsIndex(ctx, pair, idx)
}

// Asks: ascending, first element = best. Bids: ascending, last element = best.
func (askSide) extremum(idx priceIndex) (types.FixedScalar, bool) { return idx.first() }
func (bidSide) extremum(idx priceIndex) (types.FixedScalar, bool) { return idx.last() }

func (askSide) popExtremum(idx priceIndex) (types.FixedScalar, priceIndex, bool) {
	p, ok := idx.first()
	if !ok {
		return types.ZeroFixed(), idx, false
	}
	return p, idx[1:], true
}

func (bidSide) popExtremum(idx priceIndex) (types.FixedScalar, priceIndex, bool) {
	p, ok := idx.last()
	if !ok {
		return types.ZeroFixed(), idx, false
	}
	return p, idx[:len(idx)-1], true
}

func (askSide) onward(lvl *types.LinkedPriceLevel) *types.FixedScalar { return lvl.Next }
func (bidSide) onward(lvl *types.LinkedPriceLevel) *types.FixedScalar { return lvl.Next }

func (askSide) worseThanLimit(neighbourPrice, limitPrice types.FixedScalar) bool {
	return neighbourPrice.GT(limitPrice)
}
func (bidSide) worseThanLimit(neighbourPrice, limitPrice types.FixedScalar) bool {
	return neighbourPrice.LT(limitPrice)
}

func (askSide) crosses(price, oppositeBest types.FixedScalar) bool {
	return price.LTE(oppositeBest)
}
func (bidSide) crosses(price, oppositeBest types.FixedScalar) bool {
	return price.GTE(oppositeBest)
}

func (askSide) setTowardHigher(lvl *types.LinkedPriceLevel, p *types.FixedScalar) { lvl.Next = p }
func (askSide) setTowardLower(lvl *types.LinkedPriceLevel, p *types.FixedScalar)  { lvl.Prev = p }

func (bidSide) setTowardHigher(lvl *types.LinkedPriceLevel, p *types.FixedScalar) { lvl.Prev = p }
func (bidSide) setTowardLower(lvl *types.LinkedPriceLevel, p *types.FixedScalar)  { lvl.Next = p }
