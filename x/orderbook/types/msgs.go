package types

import (
	"encoding/hex"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgServer is the keeper-level dispatch surface for the three
// dispatchable operations. The host's transaction layer (out
// of scope here) is responsible for signature verification, weight
// accounting, and routing a decoded Msg to the matching method.
type MsgServer interface {
	RegisterOrderbook(ctx sdk.Context, msg *MsgRegisterOrderbook) (*MsgRegisterOrderbookResponse, error)
	SubmitOrder(ctx sdk.Context, msg *MsgSubmitOrder) (*MsgSubmitOrderResponse, error)
	CancelOrder(ctx sdk.Context, msg *MsgCancelOrder) (*MsgCancelOrderResponse, error)
}

// MsgRegisterOrderbookResponse carries the derived pair id back to the caller.
type MsgRegisterOrderbookResponse struct {
	PairID string `json:"pair_id"`
}

// MsgSubmitOrderResponse carries the derived order id back to the caller.
type MsgSubmitOrderResponse struct {
	OrderID string `json:"order_id"`
}

// MsgCancelOrderResponse is empty on success; the cancellation either
// happened or returned an error.
type MsgCancelOrderResponse struct{}

// Message type names for the three dispatchable operations.
const (
	TypeMsgRegisterOrderbook = "register_new_orderbook"
	TypeMsgSubmitOrder       = "submit_order"
	TypeMsgCancelOrder       = "cancel_order"
)

// MsgRegisterOrderbook registers a new trading pair.
type MsgRegisterOrderbook struct {
	Caller       string `json:"caller"`
	QuoteAssetID uint32 `json:"quote_asset_id"`
	BaseAssetID  uint32 `json:"base_asset_id"`
}

func (msg *MsgRegisterOrderbook) Reset()         { *msg = MsgRegisterOrderbook{} }
func (msg *MsgRegisterOrderbook) String() string { return msg.Caller }
func (msg *MsgRegisterOrderbook) ProtoMessage()  {}

func (msg *MsgRegisterOrderbook) ValidateBasic() error {
	if msg.Caller == "" {
		return ErrInvalidOrigin
	}
	if msg.QuoteAssetID == msg.BaseAssetID {
		return ErrSameAssetIdsError
	}
	return nil
}

// MsgSubmitOrder submits a new order against a registered pair.
type MsgSubmitOrder struct {
	Caller    string `json:"caller"`
	PairID    string `json:"pair_id"` // hex-encoded 32 bytes
	OrderType int32  `json:"order_type"`
	Price     string `json:"price"`    // decimal string, scaled FixedScalar units
	Quantity  string `json:"quantity"` // decimal string, scaled FixedScalar units
}

func (msg *MsgSubmitOrder) Reset()         { *msg = MsgSubmitOrder{} }
func (msg *MsgSubmitOrder) String() string { return msg.Caller }
func (msg *MsgSubmitOrder) ProtoMessage()  {}

func (msg *MsgSubmitOrder) ValidateBasic() error {
	if msg.Caller == "" {
		return ErrInvalidOrigin
	}
	raw, err := hex.DecodeString(msg.PairID)
	if err != nil || len(raw) != 32 {
		return ErrInvalidTradingPair
	}
	if OrderType(msg.OrderType) == OrderTypeUnspecified {
		return ErrInvalidPriceOrQuantity
	}
	return nil
}

// MsgCancelOrder cancels a resting limit order.
type MsgCancelOrder struct {
	Caller  string `json:"caller"`
	OrderID string `json:"order_id"` // hex-encoded 32 bytes
	PairID  string `json:"pair_id"`  // hex-encoded 32 bytes
	Price   string `json:"price"`    // decimal string, scaled FixedScalar units
}

func (msg *MsgCancelOrder) Reset()         { *msg = MsgCancelOrder{} }
func (msg *MsgCancelOrder) String() string { return msg.OrderID }
func (msg *MsgCancelOrder) ProtoMessage()  {}

func (msg *MsgCancelOrder) ValidateBasic() error {
	if msg.Caller == "" {
		return ErrInvalidOrigin
	}
	if raw, err := hex.DecodeString(msg.OrderID); err != nil || len(raw) != 32 {
		return ErrInvalidOrderID
	}
	if raw, err := hex.DecodeString(msg.PairID); err != nil || len(raw) != 32 {
		return ErrInvalidTradingPair
	}
	return nil
}
