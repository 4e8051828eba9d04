package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/finetune-cli/internal/dataset"
	"github.com/sells-group/finetune-cli/internal/profile"
)

var (
	genLogPath      string
	genPromptPath   string
	genOutPath      string
	genPattern      string
	genProfile      string
	genProfilesFile string
	genEncoding     string
	genDryRun       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Extract completions and write the fine-tuning dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logPath := firstNonEmpty(genLogPath, cfg.Input.LogPath)
		promptPath := firstNonEmpty(genPromptPath, cfg.Input.PromptPath)
		outPath := firstNonEmpty(genOutPath, cfg.Output.Path, dataset.DefaultOutputFile)
		encoding := firstNonEmpty(genEncoding, cfg.Input.Encoding)
		profileName := firstNonEmpty(genProfile, cfg.Extract.Profile, profile.DefaultName)

		if logPath == "" {
			return eris.New("inference log path is required (--log or FINETUNE_INPUT_LOG_PATH)")
		}
		if promptPath == "" {
			return eris.New("prompt file path is required (--prompts or FINETUNE_INPUT_PROMPT_PATH)")
		}

		profiles, err := loadProfiles(firstNonEmpty(genProfilesFile, cfg.Extract.ProfilesFile))
		if err != nil {
			return err
		}
		prof, err := profiles.Get(profileName)
		if err != nil {
			return err
		}
		pattern := firstNonEmpty(genPattern, prof.Pattern)

		log := zap.L().With(
			zap.String("run_id", uuid.NewString()),
			zap.String("profile", profileName),
		)

		builder, err := dataset.NewBuilder(logPath, promptPath,
			dataset.WithSentinel(prof.Sentinel),
			dataset.WithPromptPrefix(prof.PromptPrefix),
			dataset.WithEncoding(encoding),
			dataset.WithMatchTimeout(time.Duration(cfg.Extract.MatchTimeoutSecs)*time.Second),
			dataset.WithLogger(log),
			dataset.WithDryRun(genDryRun),
		)
		if err != nil {
			return eris.Wrap(err, "load inputs")
		}

		report, err := builder.Generate(pattern, outPath)
		if err != nil {
			return eris.Wrap(err, "generate dataset")
		}

		log.Info("generate complete",
			zap.Int("segments", report.Segments),
			zap.Int("dropped", report.Dropped),
			zap.Int("completions", report.Completions),
			zap.Int("prompts", report.Prompts),
			zap.Int("entries", report.Entries),
			zap.Int("unpaired_prompts", report.UnpairedPrompts),
			zap.Int("unpaired_completions", report.UnpairedCompletions),
			zap.String("output", report.OutputPath),
			zap.Bool("dry_run", report.DryRun),
		)
		return nil
	},
}

func loadProfiles(path string) (*profile.Set, error) {
	if path == "" {
		return profile.Builtin(), nil
	}
	return profile.Load(path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	generateCmd.Flags().StringVar(&genLogPath, "log", "", "path to the inference log (default from config)")
	generateCmd.Flags().StringVar(&genPromptPath, "prompts", "", "path to the JSONL prompt file (default from config)")
	generateCmd.Flags().StringVar(&genOutPath, "out", "", "output dataset path (default from config)")
	generateCmd.Flags().StringVar(&genPattern, "pattern", "", "extraction pattern; overrides the profile's pattern")
	generateCmd.Flags().StringVar(&genProfile, "profile", "", "extraction profile name (default from config)")
	generateCmd.Flags().StringVar(&genProfilesFile, "profiles-file", "", "YAML file with extra extraction profiles")
	generateCmd.Flags().StringVar(&genEncoding, "encoding", "", "charset of the input files (default utf-8)")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "report counts without writing the dataset")
	rootCmd.AddCommand(generateCmd)
}
