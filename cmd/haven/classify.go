package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Print the sentiment the active backend assigns to a text",
	Example: `  haven classify "I am so happy today!"
  haven classify --verbose "I feel terrible"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := buildCore(ctx, cfg)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	res := c.sentiment.Classify(ctx, text)

	backend := string(c.status.Active)
	if c.status.Degraded {
		backend += " (fallback)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "backend:  %s\n", backend)
	fmt.Fprintf(out, "category: %s\n", res.Category)
	fmt.Fprintf(out, "score:    %.2f\n", res.Score)
	return nil
}
