package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aweris/sicontent"
	"github.com/aweris/sicontent/internal/archive"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show package archive details",
	Long:  "Read a package archive and print the attributes of its content.xml root element.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	key, data, err := sicontent.ReadPackage(args[0])
	if err != nil {
		return err
	}
	m, err := archive.Inspect(data)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "file:\t%s\n", key.Name)
	fmt.Fprintf(w, "digest:\t%s\n", key.Hash)
	fmt.Fprintf(w, "size:\t%d\n", len(data))
	fmt.Fprintf(w, "entries:\t%d (%d bytes uncompressed)\n", m.Entries, m.UncompressedSize)
	fmt.Fprintf(w, "name:\t%s\n", m.Name)
	fmt.Fprintf(w, "version:\t%s\n", m.Version)
	if m.ID != "" {
		fmt.Fprintf(w, "id:\t%s\n", m.ID)
	}
	if m.Publisher != "" {
		fmt.Fprintf(w, "publisher:\t%s\n", m.Publisher)
	}
	if m.Date != "" {
		fmt.Fprintf(w, "date:\t%s\n", m.Date)
	}
	if m.Language != "" {
		fmt.Fprintf(w, "language:\t%s\n", m.Language)
	}
	return nil
}
