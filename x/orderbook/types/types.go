package types

import (
	proto "github.com/cosmos/gogoproto/proto"
)

func init() {
	proto.RegisterEnum("clob.orderbook.v1.OrderType", OrderType_name, OrderType_value)
}

// OrderType is the tagged variant spanning the two orthogonal axes of
// Bid/Ask and Limit/Market. A single int32 enum keeps the four combinations
// proto-compatible while the sideDescriptor in keeper/side.go collapses the
// mirror-image match arms a naive switch over this tag would otherwise need.
type OrderType int32

const (
	OrderTypeUnspecified OrderType = iota
	OrderTypeBidLimit
	OrderTypeBidMarket
	OrderTypeAskLimit
	OrderTypeAskMarket
)

var OrderType_name = map[int32]string{
	0: "ORDER_TYPE_UNSPECIFIED",
	1: "ORDER_TYPE_BID_LIMIT",
	2: "ORDER_TYPE_BID_MARKET",
	3: "ORDER_TYPE_ASK_LIMIT",
	4: "ORDER_TYPE_ASK_MARKET",
}

var OrderType_value = map[string]int32{
	"ORDER_TYPE_UNSPECIFIED": 0,
	"ORDER_TYPE_BID_LIMIT":   1,
	"ORDER_TYPE_BID_MARKET":  2,
	"ORDER_TYPE_ASK_LIMIT":   3,
	"ORDER_TYPE_ASK_MARKET":  4,
}

func (t OrderType) String() string {
	if s, ok := OrderType_name[int32(t)]; ok {
		return s
	}
	return OrderType_name[0]
}

// IsBid reports whether the order rests on / consumes the bid side.
func (t OrderType) IsBid() bool {
	return t == OrderTypeBidLimit || t == OrderTypeBidMarket
}

// IsAsk reports whether the order rests on / consumes the ask side.
func (t OrderType) IsAsk() bool {
	return t == OrderTypeAskLimit || t == OrderTypeAskMarket
}

// IsLimit reports whether the order carries a resting limit price.
func (t OrderType) IsLimit() bool {
	return t == OrderTypeBidLimit || t == OrderTypeAskLimit
}

// IsMarket reports whether the order is an immediate market order.
func (t OrderType) IsMarket() bool {
	return t == OrderTypeBidMarket || t == OrderTypeAskMarket
}

// Order is a single submitted order. Resting limit orders are owned by the
// FIFO of a LinkedPriceLevel; the struct itself carries no prev/next
// pointers of its own (those live on the level, not the order).
type Order struct {
	OrderID   OrderId     `json:"order_id"`
	PairID    PairId      `json:"pair_id"`
	Trader    AccountId   `json:"trader"`
	Price     FixedScalar `json:"price"`
	Quantity  FixedScalar `json:"quantity"`
	OrderType OrderType   `json:"order_type"`
}

// Orderbook is the per-pair record: asset identifiers plus the two
// best-price caches. The caches are always recomputed from the sorted price
// index after any mutation rather than patched in place by individual call
// sites.
type Orderbook struct {
	PairID       PairId      `json:"pair_id"`
	BaseAssetID  AssetId     `json:"base_asset_id"`
	QuoteAssetID AssetId     `json:"quote_asset_id"`
	BestBidPrice FixedScalar `json:"best_bid_price"`
	BestAskPrice FixedScalar `json:"best_ask_price"`
}

// NewOrderbook creates an empty Orderbook with both best-price caches unset
// (zero means "unset").
func NewOrderbook(pairID PairId, baseAssetID, quoteAssetID AssetId) *Orderbook {
	return &Orderbook{
		PairID:       pairID,
		BaseAssetID:  baseAssetID,
		QuoteAssetID: quoteAssetID,
		BestBidPrice: ZeroFixed(),
		BestAskPrice: ZeroFixed(),
	}
}

// LinkedPriceLevel is a single price level on one side of one pair's book:
// a FIFO of resting orders plus the prices of its doubly-linked neighbours.
// Prev/Next are prices — indices into the PriceLevels map — never owning
// pointers, keeping the structure an arena+index design instead of a
// cyclic reference graph.
//
// Neighbour direction convention: for the ask side, Prev is the price one
// index lower and Next is one index higher. For the bid side, Prev is one
// index higher (a better bid) and Next is one index lower (the next-best
// bid) — the asymmetry makes Next point at the next-best level on either
// side, so the matching loop always walks "onward" via Next regardless of
// which side it is consuming.
type LinkedPriceLevel struct {
	PairID PairId      `json:"pair_id"`
	Price  FixedScalar `json:"price"`
	Side   OrderType   `json:"side"` // OrderTypeBidLimit or OrderTypeAskLimit — the resting side tag
	Orders []Order     `json:"orders"`
	Prev   *FixedScalar `json:"prev,omitempty"`
	Next   *FixedScalar `json:"next,omitempty"`
}

// IsEmpty reports whether the level's FIFO has drained.
func (l *LinkedPriceLevel) IsEmpty() bool {
	return len(l.Orders) == 0
}

// Head returns the oldest resting order, or nil if the level is empty.
func (l *LinkedPriceLevel) Head() *Order {
	if l.IsEmpty() {
		return nil
	}
	return &l.Orders[0]
}

// PopHead removes and returns the oldest resting order.
func (l *LinkedPriceLevel) PopHead() (Order, bool) {
	if l.IsEmpty() {
		return Order{}, false
	}
	o := l.Orders[0]
	l.Orders = l.Orders[1:]
	return o, true
}

// PushFront re-inserts a partially-filled maker order at the head of the
// FIFO — it keeps time priority at this price level despite having just
// been popped to fill against.
func (l *LinkedPriceLevel) PushFront(o Order) {
	l.Orders = append([]Order{o}, l.Orders...)
}

// PushBack appends a newly-resting order to the tail of the FIFO.
func (l *LinkedPriceLevel) PushBack(o Order) {
	l.Orders = append(l.Orders, o)
}

// FindByID looks up a specific order in the FIFO without mutating it, so a
// caller can validate an order before committing to RemoveByID's splice.
func (l *LinkedPriceLevel) FindByID(id OrderId) (Order, bool) {
	for _, o := range l.Orders {
		if o.OrderID == id {
			return o, true
		}
	}
	return Order{}, false
}

// RemoveByID splices a specific order out of the FIFO (used by cancellation,
// which does not necessarily target the head). Returns the removed order.
func (l *LinkedPriceLevel) RemoveByID(id OrderId) (Order, bool) {
	for i, o := range l.Orders {
		if o.OrderID == id {
			removed := o
			l.Orders = append(l.Orders[:i:i], l.Orders[i+1:]...)
			return removed, true
		}
	}
	return Order{}, false
}

// MarketData is the per-(pair,period) aggregate: low/high/volume,
// created on first fill in a period and accumulated across fills within it.
type MarketData struct {
	PairID PairId      `json:"pair_id"`
	Period uint64      `json:"period"`
	Low    FixedScalar `json:"low"`
	High   FixedScalar `json:"high"`
	Volume FixedScalar `json:"volume"`
}

// Fill is a supplemental, read-only record of a single executed match. It
// is never consulted by the matching algorithm — purely an observability
// artifact.
type Fill struct {
	PairID       PairId      `json:"pair_id"`
	TakerOrderID OrderId     `json:"taker_order_id"`
	MakerOrderID OrderId     `json:"maker_order_id"`
	Taker        AccountId   `json:"taker"`
	Maker        AccountId   `json:"maker"`
	TakerType    OrderType   `json:"taker_type"`
	Price        FixedScalar `json:"price"`
	Quantity     FixedScalar `json:"quantity"`
	Period       uint64      `json:"period"`
	Sequence     uint64      `json:"sequence"`
}

// Params holds the engine's host-supplied configuration: the registration
// fee and the two boundary fixed-point scales. Kept on the keeper directly
// (no separate x/params subspace), a common post-0.50 cosmos-sdk convention.
type Params struct {
	TradingPairReservationFee FixedScalar `json:"trading_pair_reservation_fee"`
	// EngineScale is the divisor applied to FixedScalar when projecting it
	// to an RPC-visible integer (10^6 by default).
	EngineScale uint64 `json:"engine_scale"`
	// LedgerScale is the divisor for converting a native ledger balance
	// integer to engine FixedScalar units (10^12 by default). It is only
	// stored here: no function in this module reads it, and balances from
	// LedgerKeeper are used as FixedScalar values without conversion.
	LedgerScale uint64 `json:"ledger_scale"`
}

// DefaultParams sets the default fee and scale values.
func DefaultParams() Params {
	return Params{
		TradingPairReservationFee: NewFixedFromInt64(1_000_000),
		EngineScale:               1_000_000,
		LedgerScale:               1_000_000_000_000,
	}
}
