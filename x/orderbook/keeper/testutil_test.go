package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/latticefi/clob/x/orderbook/types"
)

// setupKeeper builds a Keeper against a real IAVL-backed CommitMultiStore
// so tests exercise actual KVStore iteration/prefix semantics rather than
// a map stub.
func setupKeeper(t *testing.T) (*Keeper, sdk.Context, *InMemoryLedger) {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey("orderbook")
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	ledger := NewInMemoryLedger()
	k := NewKeeper(cdc, storeKey, ledger, log.NewNopLogger())

	return k, ctx, ledger
}

func mustAddr(t *testing.T, s string) sdk.AccAddress {
	t.Helper()
	addr := make(sdk.AccAddress, 20)
	copy(addr, []byte(s))
	return addr
}

const (
	quoteAsset types.AssetId = 1
	baseAsset  types.AssetId = 2
)

// registerTestPair registers a pair and seeds the caller with enough quote
// balance to pay the registration fee.
func registerTestPair(t *testing.T, k *Keeper, ctx sdk.Context, ledger *InMemoryLedger, caller sdk.AccAddress) types.PairId {
	t.Helper()
	ledger.SetFreeBalance(caller, quoteAsset, types.NewFixedFromInt64(1_000_000_000))
	pairID, err := k.RegisterNewOrderbook(ctx, caller, quoteAsset, baseAsset)
	if err != nil {
		t.Fatalf("RegisterNewOrderbook: %v", err)
	}
	return pairID
}
