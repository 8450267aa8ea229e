package types

import (
	"cosmossdk.io/errors"
)

// Module error codes. Stable and publicly observable.
var (
	// Validation
	ErrSameAssetIdsError        = errors.Register("orderbook", 1, "quote and base asset ids must differ")
	ErrInvalidPriceOrQuantity   = errors.Register("orderbook", 2, "limit orders require a positive price and quantity")
	ErrInvalidBidMarketPrice    = errors.Register("orderbook", 3, "bid market orders require a positive budget")
	ErrInvalidAskMarketQuantity = errors.Register("orderbook", 4, "ask market orders require a positive quantity")
	ErrInvalidTradingPair       = errors.Register("orderbook", 5, "trading pair is not registered")
	ErrTradingPairIDExists      = errors.Register("orderbook", 6, "trading pair already registered")
	ErrInvalidOrderID           = errors.Register("orderbook", 7, "order id not found at the given price level")
	ErrInvalidOrigin            = errors.Register("orderbook", 8, "caller is not the order's trader")
	ErrTradingPairMismatch       = errors.Register("orderbook", 9, "order does not belong to the given pair")
	ErrCancelPriceDoesntMatch    = errors.Register("orderbook", 10, "order is not resting at the given price")

	// Funds
	ErrInsufficientAssetBalance    = errors.Register("orderbook", 20, "insufficient free balance for the requested amount")
	ErrReserveAmountFailed         = errors.Register("orderbook", 21, "failed to reserve the requested amount")
	ErrErrorWhileTransferingAsset  = errors.Register("orderbook", 22, "asset transfer failed")

	// Arithmetic
	ErrMulUnderflowOrOverflow   = errors.Register("orderbook", 30, "multiplication overflowed the fixed-point domain")
	ErrDivUnderflowOrOverflow   = errors.Register("orderbook", 31, "division overflowed the fixed-point domain or divided by zero")
	ErrAddUnderflowOrOverflow   = errors.Register("orderbook", 32, "addition overflowed the fixed-point domain")
	ErrSubUnderflowOrOverflow   = errors.Register("orderbook", 33, "subtraction underflowed the fixed-point domain")
	ErrInternalErrorU128Balance = errors.Register("orderbook", 34, "internal 128-bit balance arithmetic error")

	// Integrity — should be unreachable; surfaced rather than silently corrupting state.
	ErrNoElementFound = errors.Register("orderbook", 40, "expected linked price level or index entry was missing")
)
