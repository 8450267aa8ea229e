package types

import (
	"encoding/binary"
	"encoding/hex"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"golang.org/x/crypto/blake2b"
)

// AccountId is the opaque identity of a trader, carried as the standard
// cosmos-sdk bech32 account address at the host boundary and as its raw
// bytes everywhere inside the engine. The engine does not check or fix its
// length; it accepts whatever sdk.AccAddress the host supplies.
type AccountId = sdk.AccAddress

// AssetId is the 32-bit identifier of an underlying asset ledger.
type AssetId uint32

// PairId is a 32-byte digest identifying a registered trading pair.
type PairId [32]byte

// OrderId is a 32-byte digest identifying a single order.
type OrderId [32]byte

func (p PairId) String() string   { return hex.EncodeToString(p[:]) }
func (o OrderId) String() string  { return hex.EncodeToString(o[:]) }
func (p PairId) Bytes() []byte    { return p[:] }
func (o OrderId) Bytes() []byte   { return o[:] }
func (p PairId) IsZero() bool     { return p == PairId{} }

// PairIdFromBytes parses the 32-byte wire representation of a PairId.
func PairIdFromBytes(b []byte) (PairId, bool) {
	var p PairId
	if len(b) != len(p) {
		return p, false
	}
	copy(p[:], b)
	return p, true
}

// OrderIdFromBytes parses the 32-byte wire representation of an OrderId.
func OrderIdFromBytes(b []byte) (OrderId, bool) {
	var o OrderId
	if len(b) != len(o) {
		return o, false
	}
	copy(o[:], b)
	return o, true
}

// blake2bSum is the composite-key hasher for identifiers derived from
// user-supplied fields, the same role cosmos-sdk fills with tmhash/
// blake2b-class digests elsewhere in the stack.
func blake2bSum(parts ...[]byte) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on a bad key length, and we pass none.
		panic(err)
	}
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// DerivePairID computes PairId = hash(quote_asset_id, base_asset_id).
func DerivePairID(quoteAssetID, baseAssetID AssetId) PairId {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], uint32(quoteAssetID))
	binary.BigEndian.PutUint32(buf[4:8], uint32(baseAssetID))
	return PairId(blake2bSum(buf))
}

// DeriveOrderID computes
// OrderId = hash(pair_id, trader, price, quantity, order_type, nonce).
func DeriveOrderID(pairID PairId, trader AccountId, price, quantity FixedScalar, orderType OrderType, nonce uint64) OrderId {
	nonceBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBuf, nonce)
	typeBuf := []byte{byte(orderType)}

	return OrderId(blake2bSum(
		pairID.Bytes(),
		trader.Bytes(),
		[]byte(price.String()),
		[]byte(quantity.String()),
		typeBuf,
		nonceBuf,
	))
}
