// Command lookup prints the stock snapshot for one ticker as the HTTP API would.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"quikstox/internal/app/di"
	"quikstox/internal/feature/stock/transport/http/dto"
	"quikstox/internal/feature/stock/usecase"
	"quikstox/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		withZacks bool
		pretty    bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "lookup <TICKER>",
		Short: "Print the normalized stock snapshot for a ticker",
		Long: `lookup fetches the same snapshot served by GET /stock/{ticker} and prints it as JSON.
Failures are printed in-band as {"error": ..., "symbol": ...}, exactly like the API.`,
		Args: cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			logging.Setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var rating usecase.RatingSource
			if withZacks {
				src, closeRating := di.NewRatingSource()
				defer closeRating()
				rating = src
			}
			uc := usecase.NewStockUsecase(di.NewQuoteProvider(), rating, nil)

			var out any
			rec, err := uc.GetStock(ctx, args[0], withZacks)
			if err != nil {
				out = dto.ErrorResponse{Error: err.Error(), Symbol: args[0]}
			} else {
				out = dto.FromRecord(rec)
			}
			return writeJSON(cmd, out, pretty)
		},
	}

	cmd.Flags().BoolVar(&withZacks, "zacks", false, "include the Zacks rank, style scores and earnings date")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "overall lookup timeout")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any, pretty bool) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
