package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aweris/sicontent"
)

var existsCmd = &cobra.Command{
	Use:   "exists <file>",
	Short: "Check whether a package is stored",
	Long:  "Look a package up by digest and name and print its URI, or \"not found\".",
	Args:  cobra.ExactArgs(1),
	RunE:  runExists,
}

func init() {
	rootCmd.AddCommand(existsCmd)
}

func runExists(cmd *cobra.Command, args []string) error {
	key, _, err := sicontent.ReadPackage(args[0])
	if err != nil {
		return err
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext(cmd)
	defer cancel()

	uri, ok, err := c.Lookup(ctx, key)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "not found")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), uri)
	return nil
}
