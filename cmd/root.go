package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/log"
	checkCmd "github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/cmd/check"
	dashboardCmd "github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/cmd/dashboard"
	replayCmd "github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/cmd/replay"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/config"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/version"
)

const envPrefix = "F1R"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "f1replay",
	Short:   "F1 telemetry dashboard and race replay builder",
	Long:    ``,
	Version: version.FullVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := log.InitLogger(config.LogFormat, config.LogLevel, config.LogFilters)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:funlen // flag definitions in one place
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.f1replay.yml)")

	rootCmd.PersistentFlags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&config.LogFilters,
		"log-filters",
		"",
		"zapfilter rules to silence named loggers")
	rootCmd.PersistentFlags().StringVar(&config.SessionFile,
		"session-file",
		"",
		"path to the session data document")
	rootCmd.PersistentFlags().Float64Var(&config.FullRaceStep,
		"full-race-step",
		2.0,
		"time grid step for full race replays (seconds)")
	rootCmd.PersistentFlags().Float64Var(&config.LapStep,
		"lap-step",
		0.5,
		"time grid step for single lap replays (seconds)")
	rootCmd.PersistentFlags().Float64Var(&config.LapBuffer,
		"lap-buffer",
		5.0,
		"extra seconds appended after the focus lap")
	rootCmd.PersistentFlags().Float64Var(&config.FallbackLapSpan,
		"fallback-lap-span",
		150.0,
		"lap grid span when the focus lap duration is unknown (seconds)")
	rootCmd.PersistentFlags().Float64Var(&config.ViewportPadding,
		"viewport-padding",
		500.0,
		"margin around the track extents (world units)")
	rootCmd.PersistentFlags().Float64Var(&config.GapCalibration,
		"gap-calibration",
		55.0,
		"m/s constant of the approximate gap-to-leader estimate")
	rootCmd.PersistentFlags().IntSliceVar(&config.DRSActiveCodes,
		"drs-active-codes",
		[]int{10, 12, 14},
		"telemetry codes reported while DRS is deployed")
	rootCmd.PersistentFlags().IntVar(&config.DRSOpenThreshold,
		"drs-open-threshold",
		8,
		"codes above this value also count as DRS deployed")
	rootCmd.PersistentFlags().IntVar(&config.MaxParallelResample,
		"max-parallel-resample",
		0,
		"max cars resampled concurrently (0: number of CPUs)")

	// add commands here
	rootCmd.AddCommand(replayCmd.NewReplayCmd())
	rootCmd.AddCommand(dashboardCmd.NewDashboardCmd())
	rootCmd.AddCommand(checkCmd.NewCheckCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".f1replay" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".f1replay")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --favorite-color to F1R_FAVORITE_COLOR
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
