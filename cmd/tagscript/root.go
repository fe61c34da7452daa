package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tagforge/go-tagscript"
	"github.com/tagforge/go-tagscript/blocks"
)

var rootCmd = &cobra.Command{
	Use:   "tagscript",
	Short: "tagscript renders bracketed tag scripts",
	Long: `tagscript parses and interprets scripts of literal text interleaved with
{tag} expressions, using the standard block set.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// buildLogger creates the CLI logger based on the verbose flag.
func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// standardBlocks returns the default block list in dispatch order. The
// variable block is last so it cannot shadow control declarations.
func standardBlocks() []tagscript.Block {
	return []tagscript.Block{
		blocks.NewIfBlock(),
		blocks.NewAnyBlock(),
		blocks.NewAllBlock(),
		blocks.NewFiftyFiftyBlock(),
		blocks.NewRangeBlock(),
		blocks.NewReplaceBlock(),
		blocks.NewMembershipBlock(),
		blocks.NewAssignBlock(),
		blocks.NewStopBlock(),
		blocks.NewCooldownBlock(blocks.NewMemoryCooldownStore()),
		blocks.NewVariableBlock(),
	}
}

// seedFromPairs converts key=value CLI pairs into seed adapters.
func seedFromPairs(pairs []string) map[string]tagscript.Adapter {
	seed := make(map[string]tagscript.Adapter, len(pairs))
	for _, pair := range pairs {
		key, value := pair, ""
		for i := 0; i < len(pair); i++ {
			if pair[i] == '=' {
				key, value = pair[:i], pair[i+1:]
				break
			}
		}
		seed[key] = tagscript.NewStringAdapter(value)
	}
	return seed
}
