package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/latticefi/clob/x/orderbook/types"
)

// LedgerKeeper is the expected-keeper boundary: the balance ledger is an
// external collaborator, specified only at its interface — a narrow,
// verb-shaped interface the module depends on rather than a concrete
// ledger type.
type LedgerKeeper interface {
	// FreeBalance returns the trader's unreserved balance of asset.
	FreeBalance(ctx sdk.Context, trader types.AccountId, asset types.AssetId) types.FixedScalar

	// Reserve moves amount from free to reserved balance. It fails with
	// ErrInsufficientAssetBalance if the free balance is insufficient.
	Reserve(ctx sdk.Context, trader types.AccountId, asset types.AssetId, amount types.FixedScalar) error

	// Unreserve moves amount back from reserved to free balance: on order
	// cancellation it releases the order's escrow, and in settlement it
	// releases escrowed limit-order funds just before they are Transferred.
	// Market-order funds are never reserved, so they are never unreserved.
	Unreserve(ctx sdk.Context, trader types.AccountId, asset types.AssetId, amount types.FixedScalar) error

	// Transfer moves amount from the sender's free balance to the
	// receiver's free balance — the settlement leg of a single fill.
	// Funds that were escrowed at order placement must be unreserved
	// before a Transfer call; market-order funds, never reserved,
	// transfer directly.
	Transfer(ctx sdk.Context, from, to types.AccountId, asset types.AssetId, amount types.FixedScalar) error
}

// InMemoryLedger is a concrete reference realization of LedgerKeeper, kept
// for tests and as a default when no production ledger module is wired in.
// It is not part of the matching engine's state machine and is never
// persisted to the module's own KVStore — each instance owns its balances
// directly in Go maps rather than standing up a full chain.
type InMemoryLedger struct {
	free     map[string]types.FixedScalar
	reserved map[string]types.FixedScalar
}

// NewInMemoryLedger constructs an empty ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		free:     make(map[string]types.FixedScalar),
		reserved: make(map[string]types.FixedScalar),
	}
}

func ledgerKey(trader types.AccountId, asset types.AssetId) string {
	buf := make([]byte, len(trader)+4)
	copy(buf, trader)
	buf[len(trader)] = byte(asset >> 24)
	buf[len(trader)+1] = byte(asset >> 16)
	buf[len(trader)+2] = byte(asset >> 8)
	buf[len(trader)+3] = byte(asset)
	return string(buf)
}

// SetFreeBalance seeds a trader's free balance — test/fixture helper only.
func (l *InMemoryLedger) SetFreeBalance(trader types.AccountId, asset types.AssetId, amount types.FixedScalar) {
	l.free[ledgerKey(trader, asset)] = amount
}

func (l *InMemoryLedger) FreeBalance(_ sdk.Context, trader types.AccountId, asset types.AssetId) types.FixedScalar {
	bal, ok := l.free[ledgerKey(trader, asset)]
	if !ok {
		return types.ZeroFixed()
	}
	return bal
}

func (l *InMemoryLedger) ReservedBalance(trader types.AccountId, asset types.AssetId) types.FixedScalar {
	bal, ok := l.reserved[ledgerKey(trader, asset)]
	if !ok {
		return types.ZeroFixed()
	}
	return bal
}

func (l *InMemoryLedger) Reserve(ctx sdk.Context, trader types.AccountId, asset types.AssetId, amount types.FixedScalar) error {
	key := ledgerKey(trader, asset)
	free := l.FreeBalance(ctx, trader, asset)
	if free.LT(amount) {
		return types.ErrInsufficientAssetBalance
	}
	newFree, err := free.Sub(amount)
	if err != nil {
		return err
	}
	newReserved, err := l.ReservedBalance(trader, asset).Add(amount)
	if err != nil {
		return types.ErrReserveAmountFailed
	}
	l.free[key] = newFree
	l.reserved[key] = newReserved
	return nil
}

func (l *InMemoryLedger) Unreserve(ctx sdk.Context, trader types.AccountId, asset types.AssetId, amount types.FixedScalar) error {
	key := ledgerKey(trader, asset)
	reserved := l.ReservedBalance(trader, asset)
	if reserved.LT(amount) {
		return types.ErrInternalErrorU128Balance
	}
	newReserved, err := reserved.Sub(amount)
	if err != nil {
		return err
	}
	newFree, err := l.FreeBalance(ctx, trader, asset).Add(amount)
	if err != nil {
		return types.ErrInternalErrorU128Balance
	}
	l.reserved[key] = newReserved
	l.free[key] = newFree
	return nil
}

func (l *InMemoryLedger) Transfer(ctx sdk.Context, from, to types.AccountId, asset types.AssetId, amount types.FixedScalar) error {
	free := l.FreeBalance(ctx, from, asset)
	if free.LT(amount) {
		return types.ErrErrorWhileTransferingAsset
	}
	newSenderFree, err := free.Sub(amount)
	if err != nil {
		return err
	}
	newRecvFree, err := l.FreeBalance(ctx, to, asset).Add(amount)
	if err != nil {
		return types.ErrErrorWhileTransferingAsset
	}
	l.free[ledgerKey(from, asset)] = newSenderFree
	l.free[ledgerKey(to, asset)] = newRecvFree
	return nil
}
