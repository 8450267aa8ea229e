package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/latticefi/clob/x/orderbook/types"
)

// toRPCAmount projects an engine-internal FixedScalar to the fixed-width
// RPC-visible integer by dividing by the configured engine scale (10^6 by
// default). Division is integer (floor) — the read view is documented as
// lossy at sub-engine-scale precision.
func (k *Keeper) toRPCAmount(ctx sdk.Context, f types.FixedScalar) (int64, error) {
	params := k.GetParams(ctx)
	scaled, err := f.Quo(types.NewFixedFromInt64(int64(params.EngineScale)))
	if err != nil {
		return 0, err
	}
	return scaled.Int().Int64(), nil
}

// OrderbookView is the RPC-projected read view of an Orderbook.
type OrderbookView struct {
	PairID       string `json:"pair_id"`
	BaseAssetID  uint32 `json:"base_asset_id"`
	QuoteAssetID uint32 `json:"quote_asset_id"`
	BestBidPrice int64  `json:"best_bid_price"`
	BestAskPrice int64  `json:"best_ask_price"`
}

func (k *Keeper) orderbookView(ctx sdk.Context, ob *types.Orderbook) (OrderbookView, error) {
	bid, err := k.toRPCAmount(ctx, ob.BestBidPrice)
	if err != nil {
		return OrderbookView{}, err
	}
	ask, err := k.toRPCAmount(ctx, ob.BestAskPrice)
	if err != nil {
		return OrderbookView{}, err
	}
	return OrderbookView{
		PairID:       ob.PairID.String(),
		BaseAssetID:  uint32(ob.BaseAssetID),
		QuoteAssetID: uint32(ob.QuoteAssetID),
		BestBidPrice: bid,
		BestAskPrice: ask,
	}, nil
}

// QueryOrderbook returns the RPC read view of a single registered pair.
func (k *Keeper) QueryOrderbook(ctx sdk.Context, pairID types.PairId) (OrderbookView, error) {
	ob := k.GetOrderbook(ctx, pairID)
	if ob == nil {
		return OrderbookView{}, types.ErrInvalidTradingPair
	}
	return k.orderbookView(ctx, ob)
}

// QueryAllOrderbooks returns the RPC read view of every registered pair.
func (k *Keeper) QueryAllOrderbooks(ctx sdk.Context) ([]OrderbookView, error) {
	var out []OrderbookView
	for _, ob := range k.GetAllOrderbooks(ctx) {
		v, err := k.orderbookView(ctx, ob)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// QueryAskIndex returns the ask side's sorted active prices for a pair,
// projected to RPC units, ascending (first = best).
func (k *Keeper) QueryAskIndex(ctx sdk.Context, pairID types.PairId) ([]int64, error) {
	return k.queryIndex(ctx, k.GetAsksIndex(ctx, pairID))
}

// QueryBidIndex returns the bid side's sorted active prices for a pair,
// projected to RPC units, ascending (last = best).
func (k *Keeper) QueryBidIndex(ctx sdk.Context, pairID types.PairId) ([]int64, error) {
	return k.queryIndex(ctx, k.GetBidsIndex(ctx, pairID))
}

func (k *Keeper) queryIndex(ctx sdk.Context, idx priceIndex) ([]int64, error) {
	out := make([]int64, 0, len(idx))
	for _, p := range idx {
		v, err := k.toRPCAmount(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// OrderView is the RPC-projected read view of a single resting order.
type OrderView struct {
	OrderID   string `json:"order_id"`
	Trader    string `json:"trader"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	OrderType string `json:"order_type"`
}

// PriceLevelView is the RPC-projected read view of a LinkedPriceLevel.
type PriceLevelView struct {
	Price  int64       `json:"price"`
	Orders []OrderView `json:"orders"`
}

func (k *Keeper) priceLevelView(ctx sdk.Context, lvl *types.LinkedPriceLevel) (PriceLevelView, error) {
	price, err := k.toRPCAmount(ctx, lvl.Price)
	if err != nil {
		return PriceLevelView{}, err
	}
	views := make([]OrderView, 0, len(lvl.Orders))
	for _, o := range lvl.Orders {
		p, err := k.toRPCAmount(ctx, o.Price)
		if err != nil {
			return PriceLevelView{}, err
		}
		q, err := k.toRPCAmount(ctx, o.Quantity)
		if err != nil {
			return PriceLevelView{}, err
		}
		views = append(views, OrderView{
			OrderID:   o.OrderID.String(),
			Trader:    o.Trader.String(),
			Price:     p,
			Quantity:  q,
			OrderType: o.OrderType.String(),
		})
	}
	return PriceLevelView{Price: price, Orders: views}, nil
}

// QueryPriceLevels returns every active price level for a pair, across
// both sides, ordered best-first per side.
func (k *Keeper) QueryPriceLevels(ctx sdk.Context, pairID types.PairId) ([]PriceLevelView, error) {
	var out []PriceLevelView
	for _, lvl := range k.ListPriceLevels(ctx, pairID, true, 0) {
		v, err := k.priceLevelView(ctx, lvl)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	for _, lvl := range k.ListPriceLevels(ctx, pairID, false, 0) {
		v, err := k.priceLevelView(ctx, lvl)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// MarketDataView is the RPC-projected read view of a MarketData record.
type MarketDataView struct {
	Period uint64 `json:"period"`
	Low    int64  `json:"low"`
	High   int64  `json:"high"`
	Volume int64  `json:"volume"`
}

// QueryMarketData returns the RPC read view of (pair, period)'s
// accumulated market data, or false if no fill has occurred in the period.
func (k *Keeper) QueryMarketData(ctx sdk.Context, pairID types.PairId, period uint64) (MarketDataView, bool, error) {
	md := k.GetMarketData(ctx, pairID, period)
	if md == nil {
		return MarketDataView{}, false, nil
	}
	low, err := k.toRPCAmount(ctx, md.Low)
	if err != nil {
		return MarketDataView{}, false, err
	}
	high, err := k.toRPCAmount(ctx, md.High)
	if err != nil {
		return MarketDataView{}, false, err
	}
	vol, err := k.toRPCAmount(ctx, md.Volume)
	if err != nil {
		return MarketDataView{}, false, err
	}
	return MarketDataView{Period: period, Low: low, High: high, Volume: vol}, true, nil
}

// QueryOrdersByTrader scans every active price level of a pair for orders
// belonging to trader.
func (k *Keeper) QueryOrdersByTrader(ctx sdk.Context, pairID types.PairId, trader types.AccountId) []types.Order {
	var out []types.Order
	for _, lvl := range k.GetAllPriceLevels(ctx, pairID) {
		for _, o := range lvl.Orders {
			if o.Trader.Equals(trader) {
				out = append(out, o)
			}
		}
	}
	return out
}
