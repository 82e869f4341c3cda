package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var forceRegenerate bool

var generateCmd = &cobra.Command{
	Use:   "generate <query>",
	Short: "Resolve a query to a guide, generating it on a cache miss",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

// getCmd reads the slug record directly, so inspecting a guide does not count a view.
var getCmd = &cobra.Command{
	Use:   "get <slug>",
	Short: "Print a stored guide",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard stats computed from the recency index",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	defer c.Cleanup()

	result, err := c.GuideService.Resolve(cmd.Context(), args[0], forceRegenerate)
	if err != nil {
		return err
	}

	source := "generated"
	if result.Cached {
		source = "cached"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", source, result.Slug)

	return printJSON(cmd.OutOrStdout(), result.Guide)
}

func runGet(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	defer c.Cleanup()

	guide, err := c.GuideRepo.GetBySlug(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get %s: %w", args[0], err)
	}
	return printJSON(cmd.OutOrStdout(), guide)
}

func runStats(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	defer c.Cleanup()

	stats, err := c.AdminService.Stats(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), stats)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
