package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/latticefi/clob/x/orderbook/types"
)

// CancelOrder locates a resting limit order by id within its price level,
// removes it, unreserves its escrowed funds, and repairs the linked-list
// and sorted-index invariants. Unreserving on cancel is a deliberate
// choice here, not an incidental side effect.
func (k *Keeper) CancelOrder(ctx sdk.Context, caller types.AccountId, orderID types.OrderId, pairID types.PairId, price types.FixedScalar) error {
	ob := k.GetOrderbook(ctx, pairID)
	if ob == nil {
		return types.ErrInvalidTradingPair
	}

	level := k.TakePriceLevel(ctx, pairID, price)
	if level == nil {
		return types.ErrInvalidOrderID
	}

	// Validate against a read-only lookup first: level.Orders is not
	// touched here, so every rejection below restores the level exactly
	// as it was taken, before any splice happens.
	candidate, found := level.FindByID(orderID)
	if !found {
		k.SetPriceLevel(ctx, level)
		return types.ErrInvalidOrderID
	}
	if !candidate.Trader.Equals(caller) {
		k.SetPriceLevel(ctx, level)
		return types.ErrInvalidOrigin
	}
	if candidate.PairID != pairID {
		k.SetPriceLevel(ctx, level)
		return types.ErrTradingPairMismatch
	}
	if !candidate.Price.Equal(price) {
		k.SetPriceLevel(ctx, level)
		return types.ErrCancelPriceDoesntMatch
	}

	removed, _ := level.RemoveByID(orderID)

	asset, amount, err := fundsRequirement(ob, removed.OrderType, removed.Price, removed.Quantity)
	if err != nil {
		return err
	}
	if err := k.ledger.Unreserve(ctx, removed.Trader, asset, amount); err != nil {
		return err
	}

	side := sideFor(removed.OrderType)

	if !level.IsEmpty() {
		k.SetPriceLevel(ctx, level)
		k.metrics.OrdersCancelledTotal.WithLabelValues(pairID.String()).Inc()
		return nil
	}

	// FIFO drained: splice the level out of the doubly linked list and the
	// sorted index, then recompute the side's best-price cache from the
	// index rather than patching it locally.
	idx := side.getIndex(k, ctx, pairID)
	newIdx := idx.remove(price)
	side.setIndex(k, ctx, pairID, newIdx)

	higher := towardHigherOf(side, level)
	lower := towardLowerOf(side, level)

	if lower != nil {
		lowerLvl := k.GetPriceLevel(ctx, pairID, *lower)
		if lowerLvl != nil {
			side.setTowardHigher(lowerLvl, higher)
			k.SetPriceLevel(ctx, lowerLvl)
		}
	}
	if higher != nil {
		higherLvl := k.GetPriceLevel(ctx, pairID, *higher)
		if higherLvl != nil {
			side.setTowardLower(higherLvl, lower)
			k.SetPriceLevel(ctx, higherLvl)
		}
	}

	if best, ok := side.extremum(newIdx); ok {
		side.setBestPrice(ob, best)
	} else {
		side.setBestPrice(ob, types.ZeroFixed())
	}
	k.SetOrderbook(ctx, ob)
	k.metrics.OrdersCancelledTotal.WithLabelValues(pairID.String()).Inc()

	return nil
}

// towardHigherOf and towardLowerOf read the removed level's own neighbour
// pointers back into plain ascending-price terms, the inverse of
// setTowardHigher/setTowardLower.
func towardHigherOf(side sideDescriptor, lvl *types.LinkedPriceLevel) *types.FixedScalar {
	if side.isBid() {
		return lvl.Prev
	}
	return lvl.Next
}

func towardLowerOf(side sideDescriptor, lvl *types.LinkedPriceLevel) *types.FixedScalar {
	if side.isBid() {
		return lvl.Next
	}
	return lvl.Prev
}
