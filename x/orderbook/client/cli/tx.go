package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/latticefi/clob/x/orderbook/types"
)

// GetTxCmd returns the transaction commands for the orderbook module.
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "orderbook",
		Short:                      "Orderbook module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdRegisterOrderbook(),
		CmdSubmitOrder(),
		CmdCancelOrder(),
	)

	return cmd
}

// CmdRegisterOrderbook returns the command to register a new trading pair.
func CmdRegisterOrderbook() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-orderbook [quote-asset-id] [base-asset-id]",
		Short: "Register a new trading pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			var quoteAssetID, baseAssetID uint32
			if _, err := fmt.Sscanf(args[0], "%d", &quoteAssetID); err != nil {
				return fmt.Errorf("invalid quote asset id: %w", err)
			}
			if _, err := fmt.Sscanf(args[1], "%d", &baseAssetID); err != nil {
				return fmt.Errorf("invalid base asset id: %w", err)
			}

			msg := &types.MsgRegisterOrderbook{
				Caller:       clientCtx.GetFromAddress().String(),
				QuoteAssetID: quoteAssetID,
				BaseAssetID:  baseAssetID,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// orderTypeFromFlag parses the user-facing side/kind pair into an OrderType.
func orderTypeFromFlag(side, kind string) (types.OrderType, error) {
	side = strings.ToLower(side)
	kind = strings.ToLower(kind)
	switch {
	case side == "bid" && kind == "limit":
		return types.OrderTypeBidLimit, nil
	case side == "bid" && kind == "market":
		return types.OrderTypeBidMarket, nil
	case side == "ask" && kind == "limit":
		return types.OrderTypeAskLimit, nil
	case side == "ask" && kind == "market":
		return types.OrderTypeAskMarket, nil
	default:
		return types.OrderTypeUnspecified, fmt.Errorf("invalid side/kind combination: %s/%s (use bid|ask and limit|market)", side, kind)
	}
}

// CmdSubmitOrder returns the command to submit a new order.
func CmdSubmitOrder() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit-order [pair-id] [side] [kind] [price] [quantity]",
		Short: "Submit a new order against a registered pair",
		Long: `Submit a new order.

For bid/ask market orders the unused price/quantity argument is carried as
the field the order type ignores: BidMarket reads price as the base-asset
budget and quantity is unused; AskMarket reads quantity and price is unused.

Examples:
  clobd tx orderbook submit-order <pair-id> bid limit 100000000 5000000 --from alice
  clobd tx orderbook submit-order <pair-id> ask market 0 10000000 --from bob`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			pairID := strings.TrimPrefix(args[0], "0x")
			if _, err := hex.DecodeString(pairID); err != nil {
				return fmt.Errorf("invalid pair id: %w", err)
			}

			orderType, err := orderTypeFromFlag(args[1], args[2])
			if err != nil {
				return err
			}

			msg := &types.MsgSubmitOrder{
				Caller:    clientCtx.GetFromAddress().String(),
				PairID:    pairID,
				OrderType: int32(orderType),
				Price:     args[3],
				Quantity:  args[4],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCancelOrder returns the command to cancel a resting limit order.
func CmdCancelOrder() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-order [order-id] [pair-id] [price]",
		Short: "Cancel an existing resting limit order",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			orderID := strings.TrimPrefix(args[0], "0x")
			if _, err := hex.DecodeString(orderID); err != nil {
				return fmt.Errorf("invalid order id: %w", err)
			}
			pairID := strings.TrimPrefix(args[1], "0x")
			if _, err := hex.DecodeString(pairID); err != nil {
				return fmt.Errorf("invalid pair id: %w", err)
			}

			msg := &types.MsgCancelOrder{
				Caller:  clientCtx.GetFromAddress().String(),
				OrderID: orderID,
				PairID:  pairID,
				Price:   args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
