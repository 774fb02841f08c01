package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Aashish23092/tour-diary-generator/config"
)

const envPrefix = "TADIARY"

var cfgFile string

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "tadiary",
	Short: "tadiary - TA/DA tour diary generator",
	Long: `tadiary reads tour approvals, salary slips, map screenshots and tickets
and writes the landscape tour diary used for TA/DA claims.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./.tadiary.yaml or $HOME/.tadiary.yaml)")
	rootCmd.PersistentFlags().String("extractor", "", "extraction strategy: auto, gemini, regex")
	rootCmd.PersistentFlags().String("gemini-api-key", "", "Gemini API key")
	rootCmd.PersistentFlags().String("gemini-model", "", "Gemini model name")
	rootCmd.PersistentFlags().String("maps-api-key", "", "directions search API key")
	rootCmd.PersistentFlags().String("tessdata", "", "tesseract tessdata directory")

	for _, name := range []string{"extractor", "gemini-api-key", "gemini-model", "maps-api-key", "tessdata"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".tadiary")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// loadConfig layers flags, TADIARY_* variables and the config file over the
// service environment defaults.
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	applyOverrides(cfg, viper.GetViper())
	return cfg
}

func applyOverrides(cfg *config.Config, v *viper.Viper) {
	set := func(dst *string, key string) {
		if s := strings.TrimSpace(v.GetString(key)); s != "" {
			*dst = s
		}
	}

	set(&cfg.ExtractorMode, "extractor")
	set(&cfg.GeminiAPIKey, "gemini-api-key")
	set(&cfg.GeminiModel, "gemini-model")
	set(&cfg.MapsAPIKey, "maps-api-key")
	set(&cfg.TesseractDataPath, "tessdata")

	set(&cfg.Letterhead.EmployeeName, "letterhead.employee_name")
	set(&cfg.Letterhead.Designation, "letterhead.designation")
	set(&cfg.Letterhead.BudgetHead, "letterhead.budget_head")
	set(&cfg.Letterhead.DeparturePlace, "letterhead.departure_place")
	set(&cfg.Letterhead.Mode, "letterhead.mode")
	set(&cfg.Letterhead.ApprovedBy, "letterhead.approved_by")
}
