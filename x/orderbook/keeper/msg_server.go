package keeper

import (
	"encoding/hex"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/latticefi/clob/x/orderbook/types"
)

func hexDecode32(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return b, nil
}

var _ types.MsgServer = (*msgServer)(nil)

type msgServer struct {
	Keeper *Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface,
// the thin dispatch layer between a decoded message and the matching
// engine's pipelines.
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

// RegisterOrderbook handles MsgRegisterOrderbook.
func (m *msgServer) RegisterOrderbook(ctx sdk.Context, msg *types.MsgRegisterOrderbook) (*types.MsgRegisterOrderbookResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, types.ErrInvalidOrigin
	}

	pairID, err := m.Keeper.RegisterNewOrderbook(ctx, caller, types.AssetId(msg.QuoteAssetID), types.AssetId(msg.BaseAssetID))
	if err != nil {
		return nil, err
	}

	return &types.MsgRegisterOrderbookResponse{PairID: pairID.String()}, nil
}

// SubmitOrder handles MsgSubmitOrder.
func (m *msgServer) SubmitOrder(ctx sdk.Context, msg *types.MsgSubmitOrder) (*types.MsgSubmitOrderResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, types.ErrInvalidOrigin
	}

	rawPair, err := hexDecode32(msg.PairID)
	if err != nil {
		return nil, types.ErrInvalidTradingPair
	}
	pairID, ok := types.PairIdFromBytes(rawPair)
	if !ok {
		return nil, types.ErrInvalidTradingPair
	}

	price, err := types.ParseFixedScalar(msg.Price)
	if err != nil {
		return nil, types.ErrInvalidPriceOrQuantity
	}
	quantity, err := types.ParseFixedScalar(msg.Quantity)
	if err != nil {
		return nil, types.ErrInvalidPriceOrQuantity
	}

	orderID, err := m.Keeper.SubmitOrder(ctx, caller, types.OrderType(msg.OrderType), pairID, price, quantity)
	if err != nil {
		return nil, err
	}

	return &types.MsgSubmitOrderResponse{OrderID: orderID.String()}, nil
}

// CancelOrder handles MsgCancelOrder.
func (m *msgServer) CancelOrder(ctx sdk.Context, msg *types.MsgCancelOrder) (*types.MsgCancelOrderResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	caller, err := sdk.AccAddressFromBech32(msg.Caller)
	if err != nil {
		return nil, types.ErrInvalidOrigin
	}

	rawOrder, err := hexDecode32(msg.OrderID)
	if err != nil {
		return nil, types.ErrInvalidOrderID
	}
	orderID, ok := types.OrderIdFromBytes(rawOrder)
	if !ok {
		return nil, types.ErrInvalidOrderID
	}

	rawPair, err := hexDecode32(msg.PairID)
	if err != nil {
		return nil, types.ErrInvalidTradingPair
	}
	pairID, ok := types.PairIdFromBytes(rawPair)
	if !ok {
		return nil, types.ErrInvalidTradingPair
	}

	price, err := types.ParseFixedScalar(msg.Price)
	if err != nil {
		return nil, types.ErrInvalidPriceOrQuantity
	}

	if err := m.Keeper.CancelOrder(ctx, caller, orderID, pairID, price); err != nil {
		return nil, err
	}

	return &types.MsgCancelOrderResponse{}, nil
}
