package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/secscope/secscope/internal/scoring"
)

var cfgFile string
var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "secscope",
	Short: "Heuristic phishing, email, and OWASP configuration scanner",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".secscope")
			viper.SetConfigType("yaml")
		}
		viper.SetEnvPrefix("SECSCOPE")
		viper.AutomaticEnv()

		_ = viper.ReadInConfig()

		// init logger
		l, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l.Sugar()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.secscope.yaml)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// scoringConfig builds the scoring weights from defaults plus any overrides
// in the config file. Probe budgets are the only values most deployments
// ever touch.
func scoringConfig() scoring.Config {
	cfg := scoring.DefaultConfig()
	if d := viper.GetDuration("fetch_timeout"); d > 0 {
		cfg.FetchTimeout = d
	}
	if d := viper.GetDuration("whois_timeout"); d > 0 {
		cfg.WhoisTimeout = d
	}
	if d := viper.GetDuration("mx_timeout"); d > 0 {
		cfg.MXTimeout = d
	}
	if v := viper.GetInt("high_threshold"); v > 0 {
		cfg.HighThreshold = v
	}
	if v := viper.GetInt("medium_threshold"); v > 0 {
		cfg.MediumThreshold = v
	}
	if m := viper.GetStringMap("header_penalties"); len(m) > 0 {
		// Viper lowercases config map keys; restore canonical header case so
		// the scanner's catalog lookup matches.
		cfg.HeaderPenalties = make(map[string]int, len(m))
		for name := range m {
			cfg.HeaderPenalties[http.CanonicalHeaderKey(name)] = viper.GetInt("header_penalties." + name)
		}
	}
	return cfg
}
