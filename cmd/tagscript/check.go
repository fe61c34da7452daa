package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagforge/go-tagscript"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse a tag script and dump its node tree",
	Long: `Check parses a script without interpreting it and prints the top-level
node tree. Parsing never fails; malformed spans show up as text nodes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}

	doc, err := tagscript.ParseDocument([]byte(source))
	if err != nil {
		return err
	}

	script := tagscript.Parse(doc.Body)
	fmt.Fprintf(cmd.OutOrStdout(), "%d top-level nodes\n", script.Len())
	fmt.Fprint(cmd.OutOrStdout(), script.Dump())
	return nil
}
