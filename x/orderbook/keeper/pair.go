package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/latticefi/clob/x/orderbook/types"
)

// RegisterNewOrderbook creates a new trading pair. The pair id is derived
// deterministically from the two asset ids so registration is
// idempotent-detecting: a second call with the same assets always fails
// with ErrTradingPairIDExists rather than creating a duplicate book.
func (k *Keeper) RegisterNewOrderbook(ctx sdk.Context, caller types.AccountId, quoteAssetID, baseAssetID types.AssetId) (types.PairId, error) {
	if quoteAssetID == baseAssetID {
		return types.PairId{}, types.ErrSameAssetIdsError
	}

	pairID := types.DerivePairID(quoteAssetID, baseAssetID)
	if k.GetOrderbook(ctx, pairID) != nil {
		return types.PairId{}, types.ErrTradingPairIDExists
	}

	params := k.GetParams(ctx)
	if err := k.ledger.Reserve(ctx, caller, quoteAssetID, params.TradingPairReservationFee); err != nil {
		return types.PairId{}, types.ErrInsufficientAssetBalance
	}

	ob := types.NewOrderbook(pairID, baseAssetID, quoteAssetID)
	k.SetOrderbook(ctx, ob)
	k.SetAsksIndex(ctx, pairID, priceIndex{})
	k.SetBidsIndex(ctx, pairID, priceIndex{})

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeTradingPairCreated,
		sdk.NewAttribute(types.AttributeKeyPairID, pairID.String()),
	))

	k.Logger().Info("registered trading pair",
		"pair_id", pairID.String(),
		"quote_asset_id", quoteAssetID,
		"base_asset_id", baseAssetID,
	)

	return pairID, nil
}
