package main

import (
	"github.com/spf13/cobra"

	"github.com/winematch/backend/internal/domain"
)

var compareCmd = &cobra.Command{
	Use:     "compare",
	Short:   "Decide whether two wine names denote the same wine",
	Example: `  winematch compare --a "Casa del Valle Red Blend" --b "Casa del Valle Shiraz"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		nameA, _ := f.GetString("a")
		nameB, _ := f.GetString("b")
		rating, _ := f.GetFloat64("rating")
		country, _ := f.GetString("country")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var pc *domain.PairContext
		if rating > 0 || country != "" {
			pc = &domain.PairContext{Rating: rating, Country: country}
		}

		return writeJSON(cmd.OutOrStdout(), a.Service.CompareWines(cmd.Context(), nameA, nameB, pc))
	},
}

func init() {
	f := compareCmd.Flags()
	f.String("a", "", "first wine name")
	f.String("b", "", "second wine name")
	f.Float64("rating", 0, "source rating out of 5, passed to the judge as context")
	f.String("country", "", "country of origin, passed to the judge as context")
	_ = compareCmd.MarkFlagRequired("a")
	_ = compareCmd.MarkFlagRequired("b")

	rootCmd.AddCommand(compareCmd)
}
