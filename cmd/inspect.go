package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/finetune-cli/internal/dataset"
)

var inspectPath string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Read back a generated dataset and report its size",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := firstNonEmpty(inspectPath, cfg.Output.Path, dataset.DefaultOutputFile)

		entries, err := dataset.ReadJSON(path)
		if err != nil {
			return eris.Wrap(err, "inspect dataset")
		}

		empty := 0
		for _, e := range entries {
			if e.Q == "" || e.A == "" {
				empty++
			}
		}
		zap.L().Info("dataset inspected",
			zap.String("path", path),
			zap.Int("entries", len(entries)),
			zap.Int("empty_fields", empty),
		)
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectPath, "file", "", "dataset to inspect (default from config)")
	rootCmd.AddCommand(inspectCmd)
}
