package keeper

import (
	"encoding/binary"
	"encoding/json"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/latticefi/clob/x/orderbook/types"
)

// Store key prefixes for the orderbook, price-level and market-data maps,
// the supplemental fill history, the process-wide nonce and the module's
// params; the ask/bid price-index prefixes are declared in ladder.go.
// Single-byte prefixes keep range iteration cheap.
var (
	OrderbookKeyPrefix  = []byte{0x01}
	PriceLevelKeyPrefix = []byte{0x04}
	MarketDataKeyPrefix = []byte{0x05}
	FillKeyPrefix       = []byte{0x06}
	NonceKey            = []byte{0x10}
	ParamsKey           = []byte{0x11}
	FillSequenceKey     = []byte{0x12}
)

// Keeper manages the CLOB matching engine's state: the order book, the
// submission and cancellation pipelines, and the market-data aggregator.
// It is driven one transaction at a time from a deterministic host that
// supplies the sdk.Context (caller, period, event bus).
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey
	ledger   LedgerKeeper
	logger   log.Logger
	metrics  *Metrics
}

// NewKeeper wires a Keeper against its storage key and the external ledger
// gateway. The ledger is an expected-keeper interface, the usual pattern
// for a module that needs to move balances it does not itself own.
func NewKeeper(cdc codec.BinaryCodec, storeKey storetypes.StoreKey, ledger LedgerKeeper, logger log.Logger) *Keeper {
	return &Keeper{
		cdc:      cdc,
		storeKey: storeKey,
		ledger:   ledger,
		logger:   logger.With("module", "x/orderbook"),
		metrics:  newMetrics(),
	}
}

// Logger returns the module logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore backing this module's state.
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Params ============

func (k *Keeper) GetParams(ctx sdk.Context) types.Params {
	store := k.GetStore(ctx)
	bz := store.Get(ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var p types.Params
	if err := json.Unmarshal(bz, &p); err != nil {
		return types.DefaultParams()
	}
	return p
}

func (k *Keeper) SetParams(ctx sdk.Context, p types.Params) {
	bz, _ := json.Marshal(p)
	k.GetStore(ctx).Set(ParamsKey, bz)
}

// ============ Nonce ============

// NextNonce advances the process-wide monotonic counter and returns the
// value to use for the order currently being constructed. It is part of
// engine state (persisted, rolled back with everything else on error)
// rather than ambient in-process state.
func (k *Keeper) NextNonce(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	bz := store.Get(NonceKey)
	var n uint64
	if bz != nil {
		n = binary.BigEndian.Uint64(bz)
	}
	// Saturate rather than wrap on exhaustion: wrapping back to a reused
	// nonce could collide order ids with a still-resting order from
	// billions of submissions ago. Once the counter reaches the maximum
	// uint64 it stays there and every later call returns that same value;
	// submissions are not refused.
	if n != ^uint64(0) {
		n++
	}
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, n)
	store.Set(NonceKey, out)
	return n
}

// ============ Orderbooks ============

func orderbookKey(pair types.PairId) []byte {
	return append(append([]byte{}, OrderbookKeyPrefix...), pair.Bytes()...)
}

func (k *Keeper) GetOrderbook(ctx sdk.Context, pair types.PairId) *types.Orderbook {
	bz := k.GetStore(ctx).Get(orderbookKey(pair))
	if bz == nil {
		return nil
	}
	var ob types.Orderbook
	if err := json.Unmarshal(bz, &ob); err != nil {
		return nil
	}
	return &ob
}

func (k *Keeper) SetOrderbook(ctx sdk.Context, ob *types.Orderbook) {
	bz, _ := json.Marshal(ob)
	k.GetStore(ctx).Set(orderbookKey(ob.PairID), bz)
}

// GetAllOrderbooks returns every registered orderbook.
func (k *Keeper) GetAllOrderbooks(ctx sdk.Context) []*types.Orderbook {
	store := k.GetStore(ctx)
	it := storetypes.KVStorePrefixIterator(store, OrderbookKeyPrefix)
	defer it.Close()

	var out []*types.Orderbook
	for ; it.Valid(); it.Next() {
		var ob types.Orderbook
		if err := json.Unmarshal(it.Value(), &ob); err != nil {
			continue
		}
		out = append(out, &ob)
	}
	return out
}

// ============ Price levels ============

func priceLevelKey(pair types.PairId, price types.FixedScalar) []byte {
	key := append(append([]byte{}, PriceLevelKeyPrefix...), pair.Bytes()...)
	return append(key, []byte(price.String())...)
}

// GetPriceLevel fetches the LinkedPriceLevel at (pair, price), or nil if none exists.
func (k *Keeper) GetPriceLevel(ctx sdk.Context, pair types.PairId, price types.FixedScalar) *types.LinkedPriceLevel {
	bz := k.GetStore(ctx).Get(priceLevelKey(pair, price))
	if bz == nil {
		return nil
	}
	var lvl types.LinkedPriceLevel
	if err := json.Unmarshal(bz, &lvl); err != nil {
		return nil
	}
	return &lvl
}

// SetPriceLevel persists a LinkedPriceLevel.
func (k *Keeper) SetPriceLevel(ctx sdk.Context, lvl *types.LinkedPriceLevel) {
	bz, _ := json.Marshal(lvl)
	k.GetStore(ctx).Set(priceLevelKey(lvl.PairID, lvl.Price), bz)
}

// TakePriceLevel fetches and deletes a LinkedPriceLevel in one step. The
// matching loop and cancellation take a level before working on it and
// write it back with SetPriceLevel unless its FIFO has drained.
func (k *Keeper) TakePriceLevel(ctx sdk.Context, pair types.PairId, price types.FixedScalar) *types.LinkedPriceLevel {
	lvl := k.GetPriceLevel(ctx, pair, price)
	if lvl != nil {
		k.GetStore(ctx).Delete(priceLevelKey(pair, price))
	}
	return lvl
}

// GetAllPriceLevels returns every resting price level for a pair, across
// both sides.
func (k *Keeper) GetAllPriceLevels(ctx sdk.Context, pair types.PairId) []*types.LinkedPriceLevel {
	store := k.GetStore(ctx)
	prefix := append(append([]byte{}, PriceLevelKeyPrefix...), pair.Bytes()...)
	it := storetypes.KVStorePrefixIterator(store, prefix)
	defer it.Close()

	var out []*types.LinkedPriceLevel
	for ; it.Valid(); it.Next() {
		var lvl types.LinkedPriceLevel
		if err := json.Unmarshal(it.Value(), &lvl); err != nil {
			continue
		}
		out = append(out, &lvl)
	}
	return out
}

// ============ Market data ============

func marketDataKey(pair types.PairId, period uint64) []byte {
	key := append(append([]byte{}, MarketDataKeyPrefix...), pair.Bytes()...)
	periodBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(periodBuf, period)
	return append(key, periodBuf...)
}

func (k *Keeper) GetMarketData(ctx sdk.Context, pair types.PairId, period uint64) *types.MarketData {
	bz := k.GetStore(ctx).Get(marketDataKey(pair, period))
	if bz == nil {
		return nil
	}
	var md types.MarketData
	if err := json.Unmarshal(bz, &md); err != nil {
		return nil
	}
	return &md
}

func (k *Keeper) SetMarketData(ctx sdk.Context, md *types.MarketData) {
	bz, _ := json.Marshal(md)
	k.GetStore(ctx).Set(marketDataKey(md.PairID, md.Period), bz)
}

// ============ Fills (supplemental read-only history) ============

func (k *Keeper) nextFillSequence(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	bz := store.Get(FillSequenceKey)
	var n uint64
	if bz != nil {
		n = binary.BigEndian.Uint64(bz)
	}
	n++
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, n)
	store.Set(FillSequenceKey, out)
	return n
}

func fillKey(seq uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return append(append([]byte{}, FillKeyPrefix...), buf...)
}

// RecordFill appends a Fill to the read-only history. Never consulted by
// the matching algorithm itself.
func (k *Keeper) RecordFill(ctx sdk.Context, f types.Fill) {
	f.Sequence = k.nextFillSequence(ctx)
	bz, _ := json.Marshal(f)
	k.GetStore(ctx).Set(fillKey(f.Sequence), bz)
}

// GetRecentFills returns up to limit fills for a pair, most recent first.
func (k *Keeper) GetRecentFills(ctx sdk.Context, pair types.PairId, limit int) []types.Fill {
	store := k.GetStore(ctx)
	it := storetypes.KVStoreReversePrefixIterator(store, FillKeyPrefix)
	defer it.Close()

	var out []types.Fill
	for ; it.Valid() && len(out) < limit; it.Next() {
		var f types.Fill
		if err := json.Unmarshal(it.Value(), &f); err != nil {
			continue
		}
		if f.PairID == pair {
			out = append(out, f)
		}
	}
	return out
}
