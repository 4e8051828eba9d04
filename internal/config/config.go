package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// InputConfig points at the inference log and the prompt records.
type InputConfig struct {
	LogPath    string `yaml:"log_path" mapstructure:"log_path"`
	PromptPath string `yaml:"prompt_path" mapstructure:"prompt_path"`
	Encoding   string `yaml:"encoding" mapstructure:"encoding"`
}

// OutputConfig configures where the dataset is written.
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ExtractConfig selects the extraction profile and matcher limits.
type ExtractConfig struct {
	Profile          string `yaml:"profile" mapstructure:"profile"`
	ProfilesFile     string `yaml:"profiles_file" mapstructure:"profiles_file"`
	MatchTimeoutSecs int    `yaml:"match_timeout_secs" mapstructure:"match_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. config.yaml is looked
// up in dirs, in order, and then in the working directory.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		if dir != "" {
			v.AddConfigPath(dir)
		}
	}
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FINETUNE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.log_path", "data/humaneval_qwen.txt")
	v.SetDefault("input.prompt_path", "data/human-eval-v2-20210705_main.jsonl")
	v.SetDefault("input.encoding", "utf-8")
	v.SetDefault("output.path", "finetune_data.json")
	v.SetDefault("extract.profile", "qwen2.5-coder")
	v.SetDefault("extract.profiles_file", "")
	v.SetDefault("extract.match_timeout_secs", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
