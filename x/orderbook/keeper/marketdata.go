package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/latticefi/clob/x/orderbook/types"
)

// recordFillMarketData folds one fill into the period's running low/high/
// volume: initialised to the maker's price on first touch in the period,
// then low = min(low, price), high = max(high, price), volume accumulated
// by trade_amount.
func (k *Keeper) recordFillMarketData(ctx sdk.Context, pair types.PairId, period uint64, price, tradeAmount types.FixedScalar) error {
	md := k.GetMarketData(ctx, pair, period)
	if md == nil {
		md = &types.MarketData{
			PairID: pair,
			Period: period,
			Low:    price,
			High:   price,
			Volume: types.ZeroFixed(),
		}
	} else {
		md.Low = types.Min(md.Low, price)
		md.High = types.Max(md.High, price)
	}

	volume, err := md.Volume.Add(tradeAmount)
	if err != nil {
		return err
	}
	md.Volume = volume

	k.SetMarketData(ctx, md)
	return nil
}
