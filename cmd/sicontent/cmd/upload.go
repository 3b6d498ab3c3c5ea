package cmd

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/sicontent"
	"github.com/aweris/sicontent/internal/archive"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload packages unless already stored",
	Long:  "Look each package up by digest and upload the ones the content service does not have yet.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().Bool("no-verify", false, "skip the package archive check")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	noVerify, _ := cmd.Flags().GetBool("no-verify")

	items := make([]sicontent.Item, 0, len(args))
	for _, path := range args {
		key, data, err := sicontent.ReadPackage(path)
		if err != nil {
			return err
		}
		if !noVerify {
			if _, err := archive.Inspect(data); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		items = append(items, sicontent.Item{Key: key, Data: data})
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := operationContext(cmd)
	defer cancel()

	p := newProgressPrinter(cmd.ErrOrStderr(), items)
	results, err := sicontent.UploadAll(ctx, c, items, viper.GetInt("concurrency"), p.report)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	for i, res := range results {
		state := "uploaded"
		if res.AlreadyExists {
			state = "existing"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t(%s)\n", items[i].Key.Name, res.URI, state)
	}
	return nil
}

// progressPrinter writes a line per item whenever its progress moves by at
// least step percent, and always at 0 and 100.
type progressPrinter struct {
	w     io.Writer
	names []string
	last  []int
	mu    sync.Mutex
}

const progressStep = 10

func newProgressPrinter(w io.Writer, items []sicontent.Item) *progressPrinter {
	p := &progressPrinter{
		w:     w,
		names: make([]string, len(items)),
		last:  make([]int, len(items)),
	}
	for i, item := range items {
		p.names[i] = item.Key.Name
		p.last[i] = -1
	}
	return p
}

func (p *progressPrinter) report(i int, sent, total int64) {
	pct := 100
	if total > 0 {
		pct = int(sent * 100 / total)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last[i] >= 0 && pct != 100 && pct-p.last[i] < progressStep {
		return
	}
	if pct == p.last[i] {
		return
	}
	p.last[i] = pct
	fmt.Fprintf(p.w, "[upload] %s %3d%%\n", p.names[i], pct)
}
