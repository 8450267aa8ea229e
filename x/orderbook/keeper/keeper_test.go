package keeper

import (
	"testing"

	"github.com/latticefi/clob/x/orderbook/types"
)

func fx(v int64) types.FixedScalar { return types.NewFixedFromInt64(v) }

func TestRegisterNewOrderbook_EmptyBook(t *testing.T) {
	k, ctx, ledger := setupKeeper(t)
	caller := mustAddr(t, "alice")

	pairID := registerTestPair(t, k, ctx, ledger, caller)

	ob := k.GetOrderbook(ctx, pairID)
	if ob == nil {
		t.Fatal("expected orderbook to be registered")
	}
	if !ob.BestBidPrice.IsZero() || !ob.BestAskPrice.IsZero() {
		t.Fatalf("expected zero best prices on an empty book, got bid=%s ask=%s", ob.BestBidPrice, ob.BestAskPrice)
	}
	if len(k.GetAsksIndex(ctx, pairID)) != 0 || len(k.GetBidsIndex(ctx, pairID)) != 0 {
		t.Fatal("expected empty price indices on registration")
	}

	if _, err := k.RegisterNewOrderbook(ctx, caller, quoteAsset, baseAsset); err != types.ErrTradingPairIDExists {
		t.Fatalf("expected ErrTradingPairIDExists on duplicate registration, got %v", err)
	}
}

func TestRegisterNewOrderbook_SameAsset(t *testing.T) {
	k, ctx, ledger := setupKeeper(t)
	caller := mustAddr(t, "alice")
	ledger.SetFreeBalance(caller, quoteAsset, fx(1_000_000))

	if _, err := k.RegisterNewOrderbook(ctx, caller, quoteAsset, quoteAsset); err != types.ErrSameAssetIdsError {
		t.Fatalf("expected ErrSameAssetIdsError, got %v", err)
	}
}

func TestSubmitOrder_TwoRestingBids(t *testing.T) {
	k, ctx, ledger := setupKeeper(t)
	caller := mustAddr(t, "alice")
	pairID := registerTestPair(t, k, ctx, ledger, caller)

	trader := mustAddr(t, "bob")
	ledger.SetFreeBalance(trader, baseAsset, fx(830))

	if _, err := k.SubmitOrder(ctx, trader, types.OrderTypeBidLimit, pairID, fx(100), fx(5)); err != nil {
		t.Fatalf("SubmitOrder bid@100: %v", err)
	}
	if _, err := k.SubmitOrder(ctx, trader, types.OrderTypeBidLimit, pairID, fx(110), fx(3)); err != nil {
		t.Fatalf("SubmitOrder bid@110: %v", err)
	}

	ob := k.GetOrderbook(ctx, pairID)
	if !ob.BestBidPrice.Equal(fx(110)) {
		t.Fatalf("expected best bid 110, got %s", ob.BestBidPrice)
	}

	idx := k.GetBidsIndex(ctx, pairID)
	if len(idx) != 2 || !idx[0].Equal(fx(100)) || !idx[1].Equal(fx(110)) {
		t.Fatalf("expected ascending bid index [100,110], got %v", idx)
	}

	lvl100 := k.GetPriceLevel(ctx, pairID, fx(100))
	if lvl100 == nil || len(lvl100.Orders) != 1 || !lvl100.Orders[0].Quantity.Equal(fx(5)) {
		t.Fatalf("unexpected level at 100: %+v", lvl100)
	}
	lvl110 := k.GetPriceLevel(ctx, pairID, fx(110))
	if lvl110 == nil || len(lvl110.Orders) != 1 || !lvl110.Orders[0].Quantity.Equal(fx(3)) {
		t.Fatalf("unexpected level at 110: %+v", lvl110)
	}

	// bid ladder convention: Prev points toward the higher neighbour.
	if lvl100.Prev == nil || !lvl100.Prev.Equal(fx(110)) {
		t.Fatalf("expected level 100's Prev to point at 110, got %v", lvl100.Prev)
	}
	if lvl110.Next == nil || !lvl110.Next.Equal(fx(100)) {
		t.Fatalf("expected level 110's Next to point at 100, got %v", lvl110.Next)
	}
}

func TestSubmitOrder_CrossingLimitConsumesMultipleLevels(t *testing.T) {
	k, ctx, ledger := setupKeeper(t)
	caller := mustAddr(t, "alice")
	pairID := registerTestPair(t, k, ctx, ledger, caller)

	maker := mustAddr(t, "maker")
	ledger.SetFreeBalance(maker, quoteAsset, fx(10))
	if _, err := k.SubmitOrder(ctx, maker, types.OrderTypeAskLimit, pairID, fx(100), fx(3)); err != nil {
		t.Fatalf("ask@100: %v", err)
	}
	if _, err := k.SubmitOrder(ctx, maker, types.OrderTypeAskLimit, pairID, fx(105), fx(4)); err != nil {
		t.Fatalf("ask@105: %v", err)
	}

	taker := mustAddr(t, "taker")
	ledger.SetFreeBalance(taker, baseAsset, fx(660))
	if _, err := k.SubmitOrder(ctx, taker, types.OrderTypeBidLimit, pairID, fx(110), fx(6)); err != nil {
		t.Fatalf("bid@110: %v", err)
	}

	ob := k.GetOrderbook(ctx, pairID)
	if !ob.BestAskPrice.Equal(fx(105)) {
		t.Fatalf("expected best ask to remain at 105 after partial consumption, got %s", ob.BestAskPrice)
	}
	if ob.BestBidPrice.IsPositive() {
		t.Fatalf("expected no resting bid (fully matched), got best bid %s", ob.BestBidPrice)
	}

	if lvl := k.GetPriceLevel(ctx, pairID, fx(100)); lvl != nil {
		t.Fatalf("expected level 100 to be fully drained and removed, got %+v", lvl)
	}
	lvl105 := k.GetPriceLevel(ctx, pairID, fx(105))
	if lvl105 == nil || len(lvl105.Orders) != 1 || !lvl105.Orders[0].Quantity.Equal(fx(1)) {
		t.Fatalf("expected 1 unit remaining at 105, got %+v", lvl105)
	}

	askIdx := k.GetAsksIndex(ctx, pairID)
	if len(askIdx) != 1 || !askIdx[0].Equal(fx(105)) {
		t.Fatalf("expected ask index to contain only 105, got %v", askIdx)
	}

	fills := k.GetRecentFills(ctx, pairID, 10)
	if len(fills) != 2 {
		t.Fatalf("expected 2 fills, got %d", len(fills))
	}

	md := k.GetMarketData(ctx, pairID, uint64(ctx.BlockHeight()))
	if md == nil {
		t.Fatal("expected market data for the period")
	}
	if !md.Low.Equal(fx(100)) || !md.High.Equal(fx(105)) {
		t.Fatalf("expected low/high 100/105, got low=%s high=%s", md.Low, md.High)
	}
	if !md.Volume.Equal(fx(615)) {
		t.Fatalf("expected accumulated volume 615 across both fills, got %s", md.Volume)
	}
}

func TestSubmitOrder_MarketSellExhaustsBook(t *testing.T) {
	k, ctx, ledger := setupKeeper(t)
	caller := mustAddr(t, "alice")
	pairID := registerTestPair(t, k, ctx, ledger, caller)

	maker := mustAddr(t, "maker")
	ledger.SetFreeBalance(maker, baseAsset, fx(500))
	if _, err := k.SubmitOrder(ctx, maker, types.OrderTypeBidLimit, pairID, fx(50), fx(10)); err != nil {
		t.Fatalf("bid@50: %v", err)
	}

	taker := mustAddr(t, "taker")
	ledger.SetFreeBalance(taker, quoteAsset, fx(15))
	orderID, err := k.SubmitOrder(ctx, taker, types.OrderTypeAskMarket, pairID, types.ZeroFixed(), fx(15))
	if err != nil {
		t.Fatalf("ask market: %v", err)
	}
	if orderID == (types.OrderId{}) {
		t.Fatal("expected a non-zero order id")
	}

	ob := k.GetOrderbook(ctx, pairID)
	if ob.BestBidPrice.IsPositive() {
		t.Fatalf("expected bid side exhausted, got best bid %s", ob.BestBidPrice)
	}
	if len(k.GetBidsIndex(ctx, pairID)) != 0 {
		t.Fatal("expected empty bid index after exhausting the book")
	}
	if lvl := k.GetPriceLevel(ctx, pairID, fx(50)); lvl != nil {
		t.Fatalf("expected level 50 removed, got %+v", lvl)
	}

	if got := ledger.FreeBalance(ctx, taker, quoteAsset); !got.Equal(fx(5)) {
		t.Fatalf("expected taker's quote free balance to be 5 after paying 10, got %s", got)
	}
	if got := ledger.FreeBalance(ctx, maker, baseAsset); !got.IsZero() {
		t.Fatalf("expected maker's base balance fully consumed, got %s", got)
	}
}

func TestCancelOrder_RemovesRestingLevel(t *testing.T) {
	k, ctx, ledger := setupKeeper(t)
	caller := mustAddr(t, "alice")
	pairID := registerTestPair(t, k, ctx, ledger, caller)

	trader := mustAddr(t, "bob")
	ledger.SetFreeBalance(trader, baseAsset, fx(500))
	orderID, err := k.SubmitOrder(ctx, trader, types.OrderTypeBidLimit, pairID, fx(50), fx(10))
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	if got := ledger.ReservedBalance(trader, baseAsset); !got.Equal(fx(500)) {
		t.Fatalf("expected 500 reserved after resting bid, got %s", got)
	}

	if err := k.CancelOrder(ctx, trader, orderID, pairID, fx(50)); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}

	if lvl := k.GetPriceLevel(ctx, pairID, fx(50)); lvl != nil {
		t.Fatalf("expected the drained level to be removed, got %+v", lvl)
	}
	if len(k.GetBidsIndex(ctx, pairID)) != 0 {
		t.Fatal("expected empty bid index after cancelling the only resting order")
	}
	ob := k.GetOrderbook(ctx, pairID)
	if ob.BestBidPrice.IsPositive() {
		t.Fatalf("expected best bid cleared, got %s", ob.BestBidPrice)
	}

	if got := ledger.ReservedBalance(trader, baseAsset); !got.IsZero() {
		t.Fatalf("expected reservation released on cancel, got %s", got)
	}
	if got := ledger.FreeBalance(ctx, trader, baseAsset); !got.Equal(fx(500)) {
		t.Fatalf("expected full balance returned to free, got %s", got)
	}
}

func TestCancelOrder_WrongTraderRejected(t *testing.T) {
	k, ctx, ledger := setupKeeper(t)
	caller := mustAddr(t, "alice")
	pairID := registerTestPair(t, k, ctx, ledger, caller)

	trader := mustAddr(t, "bob")
	ledger.SetFreeBalance(trader, baseAsset, fx(500))
	orderID, err := k.SubmitOrder(ctx, trader, types.OrderTypeBidLimit, pairID, fx(50), fx(10))
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	intruder := mustAddr(t, "eve")
	if err := k.CancelOrder(ctx, intruder, orderID, pairID, fx(50)); err != types.ErrInvalidOrigin {
		t.Fatalf("expected ErrInvalidOrigin, got %v", err)
	}

	// The rejected cancel must not have mutated the level.
	lvl := k.GetPriceLevel(ctx, pairID, fx(50))
	if lvl == nil || len(lvl.Orders) != 1 {
		t.Fatalf("expected the level untouched after a rejected cancel, got %+v", lvl)
	}
}
