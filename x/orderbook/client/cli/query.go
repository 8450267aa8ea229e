package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the orderbook module.
//
// The gRPC query service these commands would dial is transaction-plumbing
// territory (RPC/query surface exposing read views of engine state) and is
// specified only at its interface; the read views themselves live on the
// keeper (keeper.QueryOrderbook, QueryAskIndex, QueryBidIndex,
// QueryPriceLevels, QueryMarketData, QueryOrdersByTrader).
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "orderbook",
		Short:                      "Querying commands for the orderbook module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryOrderbook(),
		CmdQueryLevels(),
		CmdQueryMarketData(),
	)

	return cmd
}

// CmdQueryOrderbook returns the command to query a pair's best-price summary.
func CmdQueryOrderbook() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book [pair-id]",
		Short: "Query the best bid/ask summary for a pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(clientCtx.Output, "pair %s: query via the host's registered RPC service\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryLevels returns the command to list a pair's active price levels.
func CmdQueryLevels() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels [pair-id]",
		Short: "Query all active price levels for a pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(clientCtx.Output, "pair %s: query via the host's registered RPC service\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryMarketData returns the command to query a pair's market data at a period.
func CmdQueryMarketData() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market-data [pair-id] [period]",
		Short: "Query low/high/volume for a pair at a given period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(clientCtx.Output, "pair %s period %s: query via the host's registered RPC service\n", args[0], args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
