package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/winematch/backend/internal/domain"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve a list of wines read from a JSON file",
	Long: `Reads a JSON array of {"name", "winery"} objects and resolves each one against
the catalog with bounded concurrency. Results keep the input order.`,
	Example: `  winematch batch --file toplist.json --out results.json`,
	RunE:    runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("file", "", "JSON file with the wines to resolve")
	f.String("out", "", "output file (default: stdout)")
	_ = batchCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, _ := cmd.Flags().GetString("file")
	outPath, _ := cmd.Flags().GetString("out")

	requests, err := readBatchFile(path)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.Service.ResolveBatch(ctx, requests)
	if err != nil {
		return eris.Wrap(err, "resolve batch")
	}

	accepted := 0
	for _, r := range results {
		if r.Decision == domain.DecisionAccept {
			accepted++
		}
	}
	zap.L().Info("batch complete",
		zap.Int("wines", len(results)),
		zap.Int("accepted", accepted),
	)

	out, err := openOutput(cmd, outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return writeJSON(out, results)
}

// readBatchFile parses the input list, skipping entries without a name
func readBatchFile(path string) ([]domain.ResolveRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}

	var items []domain.ResolveRequest
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}

	requests := make([]domain.ResolveRequest, 0, len(items))
	for i, item := range items {
		if item.Name == "" {
			zap.L().Warn("skipping wine without a name", zap.Int("index", i))
			continue
		}
		requests = append(requests, item)
	}
	return requests, nil
}
