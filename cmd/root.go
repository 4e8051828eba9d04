package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/finetune-cli/internal/config"
)

var (
	cfg       *config.Config
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "finetune-cli",
	Short: "Build fine-tuning datasets from inference logs",
	Long:  "Extracts model completions from a raw inference log, pairs them by position with the prompts that produced them, and writes a JSON array of {q, a} records.",
	// Input and pattern errors are not usage errors.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configDir)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		zap.L().Debug("config loaded",
			zap.String("config_dir", configDir),
			zap.String("profile", cfg.Extract.Profile),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory searched for config.yaml before the working directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
