package keeper

import (
	"math/big"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/latticefi/clob/x/orderbook/types"
)

// SubmitOrder is the entry point for order submission: validate, reserve,
// dispatch into matching or direct placement, then emit the one terminal
// event every submission produces.
func (k *Keeper) SubmitOrder(ctx sdk.Context, caller types.AccountId, orderType types.OrderType, pairID types.PairId, price, quantity types.FixedScalar) (types.OrderId, error) {
	if err := validateOrderShape(orderType, price, quantity); err != nil {
		return types.OrderId{}, err
	}

	ob := k.GetOrderbook(ctx, pairID)
	if ob == nil {
		return types.OrderId{}, types.ErrInvalidTradingPair
	}

	fundsAsset, required, err := fundsRequirement(ob, orderType, price, quantity)
	if err != nil {
		return types.OrderId{}, err
	}

	free := k.ledger.FreeBalance(ctx, caller, fundsAsset)
	if free.LT(required) {
		return types.OrderId{}, types.ErrInsufficientAssetBalance
	}
	if orderType.IsLimit() {
		if err := k.ledger.Reserve(ctx, caller, fundsAsset, required); err != nil {
			return types.OrderId{}, types.ErrReserveAmountFailed
		}
	}

	nonce := k.NextNonce(ctx)
	orderID := types.DeriveOrderID(pairID, caller, price, quantity, orderType, nonce)
	incoming := &types.Order{
		OrderID:   orderID,
		PairID:    pairID,
		Trader:    caller,
		Price:     price,
		Quantity:  quantity,
		OrderType: orderType,
	}

	period := uint64(ctx.BlockHeight())

	switch orderType {
	case types.OrderTypeAskMarket:
		if ob.BestBidPrice.IsPositive() {
			if err := k.consume(ctx, ob, bidDescriptor, incoming, period); err != nil {
				return types.OrderId{}, err
			}
		}
	case types.OrderTypeBidMarket:
		if ob.BestAskPrice.IsPositive() {
			if err := k.consume(ctx, ob, askDescriptor, incoming, period); err != nil {
				return types.OrderId{}, err
			}
		}
	case types.OrderTypeBidLimit:
		if ob.BestAskPrice.IsPositive() && bidDescriptor.crosses(price, ob.BestAskPrice) {
			if err := k.consume(ctx, ob, askDescriptor, incoming, period); err != nil {
				return types.OrderId{}, err
			}
			if incoming.Quantity.IsPositive() {
				k.place(ctx, ob, bidDescriptor, incoming)
			}
		} else {
			k.place(ctx, ob, bidDescriptor, incoming)
		}
	case types.OrderTypeAskLimit:
		if ob.BestBidPrice.IsPositive() && askDescriptor.crosses(price, ob.BestBidPrice) {
			if err := k.consume(ctx, ob, bidDescriptor, incoming, period); err != nil {
				return types.OrderId{}, err
			}
			if incoming.Quantity.IsPositive() {
				k.place(ctx, ob, askDescriptor, incoming)
			}
		} else {
			k.place(ctx, ob, askDescriptor, incoming)
		}
	}

	k.SetOrderbook(ctx, ob)
	k.emitTerminalEvent(ctx, incoming)
	k.metrics.OrdersSubmittedTotal.WithLabelValues(pairID.String(), orderType.String()).Inc()

	return orderID, nil
}

func validateOrderShape(orderType types.OrderType, price, quantity types.FixedScalar) error {
	switch orderType {
	case types.OrderTypeBidLimit, types.OrderTypeAskLimit:
		if !price.IsPositive() || !quantity.IsPositive() {
			return types.ErrInvalidPriceOrQuantity
		}
	case types.OrderTypeBidMarket:
		if !price.IsPositive() {
			return types.ErrInvalidBidMarketPrice
		}
	case types.OrderTypeAskMarket:
		if !quantity.IsPositive() {
			return types.ErrInvalidAskMarketQuantity
		}
	default:
		return types.ErrInvalidPriceOrQuantity
	}
	return nil
}

// fundsRequirement resolves the asset and amount the submitting trader must
// hold free balance of: base asset for bids, quote asset for asks;
// BidLimit needs price×quantity, BidMarket needs the price field read as a
// budget, and the two ask variants need quantity.
func fundsRequirement(ob *types.Orderbook, orderType types.OrderType, price, quantity types.FixedScalar) (types.AssetId, types.FixedScalar, error) {
	if orderType.IsBid() {
		if orderType == types.OrderTypeBidLimit {
			amt, err := price.Mul(quantity)
			if err != nil {
				return 0, types.FixedScalar{}, err
			}
			return ob.BaseAssetID, amt, nil
		}
		return ob.BaseAssetID, price, nil
	}
	return ob.QuoteAssetID, quantity, nil
}

func remainingBudget(o *types.Order) types.FixedScalar {
	if o.OrderType == types.OrderTypeBidMarket {
		return o.Price
	}
	return o.Quantity
}

// consume walks the opposite side's book against incoming, the core
// per-incoming-order matching loop.
func (k *Keeper) consume(ctx sdk.Context, ob *types.Orderbook, side sideDescriptor, incoming *types.Order, period uint64) error {
	idx := side.getIndex(k, ctx, ob.PairID)
	currentPrice, ok := side.extremum(idx)
	if !ok {
		return nil
	}
	level := k.TakePriceLevel(ctx, ob.PairID, currentPrice)
	if level == nil {
		return types.ErrNoElementFound
	}

	isLimit := incoming.OrderType.IsLimit()

consumeLoop:
	for remainingBudget(incoming).IsPositive() {
		counter, popped := level.PopHead()
		if !popped {
			return types.ErrNoElementFound
		}

		makerQtyBefore := counter.Quantity
		tradeAmount, price, err := k.exchangeAssets(ctx, ob, incoming, &counter)
		if err != nil {
			return err
		}
		filledQty, err := makerQtyBefore.Sub(counter.Quantity)
		if err != nil {
			return err
		}
		if err := k.recordFillMarketData(ctx, ob.PairID, period, price, tradeAmount); err != nil {
			return err
		}
		k.RecordFill(ctx, types.Fill{
			PairID:       ob.PairID,
			TakerOrderID: incoming.OrderID,
			MakerOrderID: counter.OrderID,
			Taker:        incoming.Trader,
			Maker:        counter.Trader,
			TakerType:    incoming.OrderType,
			Price:        price,
			Quantity:     filledQty,
			Period:       period,
		})
		k.metrics.FillsTotal.WithLabelValues(ob.PairID.String()).Inc()
		k.metrics.FillVolume.WithLabelValues(ob.PairID.String()).Add(floatApprox(tradeAmount))

		if counter.Quantity.IsPositive() {
			level.PushFront(counter)
			k.emitFillEvent(ctx, types.EventTypePartialFillLimitOrder, &counter)
		} else {
			k.emitFillEvent(ctx, types.EventTypeFulfilledLimitOrder, &counter)
		}

		if !level.IsEmpty() {
			continue consumeLoop
		}

		_, idx, _ = side.popExtremum(idx)
		side.setIndex(k, ctx, ob.PairID, idx)

		onward := side.onward(level)
		if onward == nil {
			break consumeLoop
		}
		if isLimit && side.worseThanLimit(*onward, incoming.Price) {
			break consumeLoop
		}

		nextLevel := k.TakePriceLevel(ctx, ob.PairID, *onward)
		if nextLevel == nil {
			return types.ErrNoElementFound
		}
		level = nextLevel
	}

	if !level.IsEmpty() {
		k.SetPriceLevel(ctx, level)
	}

	if best, ok := side.extremum(idx); ok {
		side.setBestPrice(ob, best)
	} else {
		side.setBestPrice(ob, types.ZeroFixed())
	}
	return nil
}

// place inserts incoming as a resting limit order: either the residual of
// a crossing order, or a non-crossing limit placed directly.
func (k *Keeper) place(ctx sdk.Context, ob *types.Orderbook, side sideDescriptor, incoming *types.Order) {
	pair := ob.PairID
	idx := side.getIndex(k, ctx, pair)
	newIdx, pos, inserted := idx.insert(incoming.Price)

	lvl := k.GetPriceLevel(ctx, pair, incoming.Price)
	if lvl == nil {
		lvl = &types.LinkedPriceLevel{
			PairID: pair,
			Price:  incoming.Price,
			Side:   side.restingOrderType(),
		}
	}
	lvl.PushBack(*incoming)

	finalIdx := idx
	if inserted {
		finalIdx = newIdx
		side.setIndex(k, ctx, pair, finalIdx)

		pred, succ := finalIdx.neighborsAt(pos)
		side.setTowardLower(lvl, pred)
		side.setTowardHigher(lvl, succ)

		if pred != nil {
			predLvl := k.GetPriceLevel(ctx, pair, *pred)
			if predLvl != nil {
				p := incoming.Price
				side.setTowardHigher(predLvl, &p)
				k.SetPriceLevel(ctx, predLvl)
			}
		}
		if succ != nil {
			succLvl := k.GetPriceLevel(ctx, pair, *succ)
			if succLvl != nil {
				p := incoming.Price
				side.setTowardLower(succLvl, &p)
				k.SetPriceLevel(ctx, succLvl)
			}
		}
	}

	k.SetPriceLevel(ctx, lvl)

	if best, ok := side.extremum(finalIdx); ok {
		side.setBestPrice(ob, best)
	}
}

// exchangeAssets implements the matching arithmetic, mutating incoming and
// counter in place and settling the ledger legs of the fill.
// It returns the traded amount (base-asset units) and the price the fill
// executed at (always the maker's resting price).
func (k *Keeper) exchangeAssets(ctx sdk.Context, ob *types.Orderbook, incoming, counter *types.Order) (types.FixedScalar, types.FixedScalar, error) {
	p := counter.Price
	incomingReserved := incoming.OrderType.IsLimit()

	var tradeAmount types.FixedScalar
	var err error

	switch incoming.OrderType {
	case types.OrderTypeBidLimit, types.OrderTypeAskLimit:
		isBid := incoming.OrderType == types.OrderTypeBidLimit
		if incoming.Quantity.LTE(counter.Quantity) {
			if tradeAmount, err = p.Mul(incoming.Quantity); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if isBid {
				if err = k.settleLeg(ctx, incoming.Trader, counter.Trader, ob.BaseAssetID, tradeAmount, incomingReserved); err != nil {
					return types.FixedScalar{}, types.FixedScalar{}, err
				}
				if err = k.settleLeg(ctx, counter.Trader, incoming.Trader, ob.QuoteAssetID, incoming.Quantity, true); err != nil {
					return types.FixedScalar{}, types.FixedScalar{}, err
				}
			} else {
				if err = k.settleLeg(ctx, counter.Trader, incoming.Trader, ob.BaseAssetID, tradeAmount, true); err != nil {
					return types.FixedScalar{}, types.FixedScalar{}, err
				}
				if err = k.settleLeg(ctx, incoming.Trader, counter.Trader, ob.QuoteAssetID, incoming.Quantity, incomingReserved); err != nil {
					return types.FixedScalar{}, types.FixedScalar{}, err
				}
			}
			if counter.Quantity, err = counter.Quantity.Sub(incoming.Quantity); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			incoming.Quantity = types.ZeroFixed()
		} else {
			if tradeAmount, err = p.Mul(counter.Quantity); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if isBid {
				if err = k.settleLeg(ctx, incoming.Trader, counter.Trader, ob.BaseAssetID, tradeAmount, incomingReserved); err != nil {
					return types.FixedScalar{}, types.FixedScalar{}, err
				}
				if err = k.settleLeg(ctx, counter.Trader, incoming.Trader, ob.QuoteAssetID, counter.Quantity, true); err != nil {
					return types.FixedScalar{}, types.FixedScalar{}, err
				}
			} else {
				if err = k.settleLeg(ctx, counter.Trader, incoming.Trader, ob.BaseAssetID, tradeAmount, true); err != nil {
					return types.FixedScalar{}, types.FixedScalar{}, err
				}
				if err = k.settleLeg(ctx, incoming.Trader, counter.Trader, ob.QuoteAssetID, counter.Quantity, incomingReserved); err != nil {
					return types.FixedScalar{}, types.FixedScalar{}, err
				}
			}
			if incoming.Quantity, err = incoming.Quantity.Sub(counter.Quantity); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			counter.Quantity = types.ZeroFixed()
		}

	case types.OrderTypeBidMarket:
		q, divErr := incoming.Price.Quo(p)
		if divErr != nil {
			return types.FixedScalar{}, types.FixedScalar{}, divErr
		}
		if q.LTE(counter.Quantity) {
			tradeAmount = incoming.Price
			if err = k.settleLeg(ctx, incoming.Trader, counter.Trader, ob.BaseAssetID, tradeAmount, false); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if err = k.settleLeg(ctx, counter.Trader, incoming.Trader, ob.QuoteAssetID, q, true); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if counter.Quantity, err = counter.Quantity.Sub(q); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			incoming.Price = types.ZeroFixed()
		} else {
			if tradeAmount, err = p.Mul(counter.Quantity); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if err = k.settleLeg(ctx, incoming.Trader, counter.Trader, ob.BaseAssetID, tradeAmount, false); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if err = k.settleLeg(ctx, counter.Trader, incoming.Trader, ob.QuoteAssetID, counter.Quantity, true); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			counter.Quantity = types.ZeroFixed()
			if incoming.Price, err = incoming.Price.Sub(tradeAmount); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
		}

	case types.OrderTypeAskMarket:
		if incoming.Quantity.LTE(counter.Quantity) {
			if tradeAmount, err = p.Mul(incoming.Quantity); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if err = k.settleLeg(ctx, counter.Trader, incoming.Trader, ob.BaseAssetID, tradeAmount, true); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if err = k.settleLeg(ctx, incoming.Trader, counter.Trader, ob.QuoteAssetID, incoming.Quantity, false); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if counter.Quantity, err = counter.Quantity.Sub(incoming.Quantity); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			incoming.Quantity = types.ZeroFixed()
		} else {
			if tradeAmount, err = p.Mul(counter.Quantity); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if err = k.settleLeg(ctx, counter.Trader, incoming.Trader, ob.BaseAssetID, tradeAmount, true); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if err = k.settleLeg(ctx, incoming.Trader, counter.Trader, ob.QuoteAssetID, counter.Quantity, false); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			if incoming.Quantity, err = incoming.Quantity.Sub(counter.Quantity); err != nil {
				return types.FixedScalar{}, types.FixedScalar{}, err
			}
			counter.Quantity = types.ZeroFixed()
		}
	}

	return tradeAmount, p, nil
}

// settleLeg moves amount of asset from the sender to the receiver's free
// balance. When fromReserved is true, the amount was escrowed at order
// placement and must be released from reserved balance first; market-order
// funds were never reserved and transfer directly from free balance.
func (k *Keeper) settleLeg(ctx sdk.Context, from, to types.AccountId, asset types.AssetId, amount types.FixedScalar, fromReserved bool) error {
	if amount.IsZero() {
		return nil
	}
	if fromReserved {
		if err := k.ledger.Unreserve(ctx, from, asset, amount); err != nil {
			return err
		}
	}
	return k.ledger.Transfer(ctx, from, to, asset, amount)
}

func (k *Keeper) emitFillEvent(ctx sdk.Context, eventType string, o *types.Order) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(eventType,
		sdk.NewAttribute(types.AttributeKeyOrderID, o.OrderID.String()),
		sdk.NewAttribute(types.AttributeKeyPairID, o.PairID.String()),
		sdk.NewAttribute(types.AttributeKeyOrderType, o.OrderType.String()),
		sdk.NewAttribute(types.AttributeKeyPrice, o.Price.String()),
		sdk.NewAttribute(types.AttributeKeyQuantity, o.Quantity.String()),
		sdk.NewAttribute(types.AttributeKeyTrader, o.Trader.String()),
	))
}

// emitTerminalEvent emits the single event every submission produces,
// chosen from the incoming order's final remaining quantity/budget.
func (k *Keeper) emitTerminalEvent(ctx sdk.Context, o *types.Order) {
	var eventType string
	switch o.OrderType {
	case types.OrderTypeBidLimit, types.OrderTypeAskLimit:
		if o.Quantity.IsPositive() {
			eventType = types.EventTypeNewLimitOrder
		} else {
			eventType = types.EventTypeFulfilledLimitOrder
		}
	case types.OrderTypeBidMarket:
		if o.Price.IsPositive() {
			eventType = types.EventTypeUnfilledMarketOrder
		} else {
			eventType = types.EventTypeFilledMarketOrder
		}
	case types.OrderTypeAskMarket:
		if o.Quantity.IsPositive() {
			eventType = types.EventTypeUnfilledMarketOrder
		} else {
			eventType = types.EventTypeFilledMarketOrder
		}
	}
	k.emitFillEvent(ctx, eventType, o)
}

// floatApprox renders a FixedScalar as a float64 for metrics observation
// only; it is never used in settlement or matching arithmetic.
func floatApprox(f types.FixedScalar) float64 {
	bf := new(big.Float).SetInt(f.Int().BigInt())
	out, _ := bf.Float64()
	return out
}
