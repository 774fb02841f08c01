package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/tour-diary-generator/service"
)

var allowanceCmd = &cobra.Command{
	Use:   "allowance",
	Short: "Look up the daily allowance for a city",
	Long: `Prints the daily allowance for a pay level and city.

Examples:
  tadiary allowance --basic 56100 --city Surat
  tadiary allowance --level 13 --city Mumbai --json`,
	RunE: runAllowance,
}

func init() {
	allowanceCmd.Flags().Float64("basic", 0, "basic pay")
	allowanceCmd.Flags().Int("level", 0, "pay matrix level (wins over --basic)")
	allowanceCmd.Flags().String("city", "", "destination city")
	allowanceCmd.Flags().Bool("json", false, "print JSON")
	rootCmd.AddCommand(allowanceCmd)
}

func runAllowance(cmd *cobra.Command, _ []string) error {
	basic, _ := cmd.Flags().GetFloat64("basic")
	level, _ := cmd.Flags().GetInt("level")
	city, _ := cmd.Flags().GetString("city")
	asJSON, _ := cmd.Flags().GetBool("json")

	if basic <= 0 && level <= 0 {
		return fmt.Errorf("--basic or --level is required")
	}

	resp, err := service.NewAllowanceService().Lookup(basic, level, city)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprintf(out, "Pay level:  %s\n", resp.PayLevel)
	fmt.Fprintf(out, "City class: %s\n", resp.CityClass)
	fmt.Fprintf(out, "DA per day: Rs. %s\n", resp.Amount.StringFixed(2))
	return nil
}
