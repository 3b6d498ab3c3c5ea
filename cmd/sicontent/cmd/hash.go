package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aweris/sicontent"
)

var hashCmd = &cobra.Command{
	Use:   "hash <file>...",
	Short: "Print package digests",
	Long:  "Print the digest, its path token and the name each package would be addressed by.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

func runHash(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		key, _, err := sicontent.ReadPackage(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", key.Hash, key.HashToken(), key.Name)
	}
	return nil
}
