package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/winematch/backend/internal/domain"
)

var resolveCmd = &cobra.Command{
	Use:     "resolve",
	Short:   "Find the catalog product for one wine",
	Example: `  winematch resolve --name "Sauvignon Blanc 2022" --winery "Saint Clair Family Estate"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		winery, _ := cmd.Flags().GetString("winery")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Service.ResolveWine(cmd.Context(), domain.ResolveRequest{Name: name, Winery: winery})
		if err != nil {
			return eris.Wrap(err, "resolve")
		}

		return writeJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	f := resolveCmd.Flags()
	f.String("name", "", "wine name as written by the source")
	f.String("winery", "", "winery or producer, if known")
	_ = resolveCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(resolveCmd)
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openOutput returns stdout for an empty path, else a created file
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "create %s", path)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
