package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tagforge/go-tagscript"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a tag script from a file or stdin",
	Long: `Render reads a script (or a document with YAML frontmatter) from the given
file, or from stdin when no file is passed, interprets it with the standard
block set and prints the rendered body. Recorded actions go to stderr as
JSON when --actions is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringArrayP("var", "v", nil, "Seed variable as key=value (repeatable)")
	renderCmd.Flags().Bool("actions", false, "Print recorded actions as JSON on stderr")
	renderCmd.Flags().Int("max-depth", tagscript.DefaultMaxDepth, "Maximum nested tag resolution depth")
	renderCmd.Flags().Int("char-limit", tagscript.DefaultCharLimit, "Cumulative block output limit (0 = unlimited)")
	renderCmd.Flags().Bool("best-effort", false, "Degrade block failures to raw tag passthrough")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source, err := readSource(args)
	if err != nil {
		return err
	}

	doc, err := tagscript.ParseDocument([]byte(source))
	if err != nil {
		return err
	}

	pairs, _ := cmd.Flags().GetStringArray("var")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	charLimit, _ := cmd.Flags().GetInt("char-limit")
	bestEffort, _ := cmd.Flags().GetBool("best-effort")

	interpreter, err := tagscript.New(standardBlocks(),
		tagscript.WithLogger(logger),
		tagscript.WithMaxDepth(maxDepth),
		tagscript.WithCharLimit(charLimit),
		tagscript.WithBestEffort(bestEffort),
	)
	if err != nil {
		return err
	}

	resp, err := interpreter.Process(cmd.Context(), doc.Body, seedFromPairs(pairs))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Body)

	if printActions, _ := cmd.Flags().GetBool("actions"); printActions && len(resp.Actions) > 0 {
		encoded, err := json.Marshal(resp.Actions)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), string(encoded))
	}
	return nil
}

// readSource loads the script from the file argument or stdin.
func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
