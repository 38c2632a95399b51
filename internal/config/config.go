// Package config loads and validates the bot configuration.
package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Telegram      TelegramConfig      `mapstructure:"telegram"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Plan          PlanConfig          `mapstructure:"plan"`
	Weak          WeakConfig          `mapstructure:"weak"`
	Mock          MockConfig          `mapstructure:"mock"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Reports       ReportsConfig       `mapstructure:"reports"`
	Data          DataConfig          `mapstructure:"data"`
}

type TelegramConfig struct {
	Token              string `mapstructure:"token"`
	ChatID             int64  `mapstructure:"chat_id"`
	PollTimeoutSeconds int    `mapstructure:"poll_timeout_seconds" validate:"min=1,max=60"`
}

type DatabaseConfig struct {
	Path          string `mapstructure:"path" validate:"required"`
	BusyTimeoutMs int    `mapstructure:"busy_timeout_ms" validate:"min=0"`
}

// BlockConfig is one template entry of the fixed daily plan.
type BlockConfig struct {
	Label   string  `mapstructure:"label" validate:"required"`
	Paper   int     `mapstructure:"paper" validate:"min=0,max=2"`
	Section string  `mapstructure:"section" validate:"required"`
	Hours   float64 `mapstructure:"hours" validate:"gt=0"`
}

type PlanConfig struct {
	DailyHours float64       `mapstructure:"daily_hours" validate:"gt=0"`
	ExamDate   string        `mapstructure:"exam_date" validate:"omitempty,datetime=2006-01-02"`
	Blocks     []BlockConfig `mapstructure:"blocks" validate:"min=1,dive"`
}

// DailyMinutes returns the configured daily target in whole minutes.
func (c PlanConfig) DailyMinutes() int {
	return int(math.Round(c.DailyHours * 60))
}

type WeakConfig struct {
	CompletionThreshold float64 `mapstructure:"completion_threshold" validate:"gt=0,lte=1"`
	AccuracyThreshold   float64 `mapstructure:"accuracy_threshold" validate:"gt=0,lte=1"`
	LookbackDays        int     `mapstructure:"lookback_days" validate:"min=1"`
}

type MockConfig struct {
	FullSize        int     `mapstructure:"full_size" validate:"min=1"`
	MiniSize        int     `mapstructure:"mini_size" validate:"min=1"`
	Paper1Size      int     `mapstructure:"paper1_size" validate:"min=1"`
	NegativeMarking float64 `mapstructure:"negative_marking" validate:"gte=0,lt=1"`
	HistoryLimit    int     `mapstructure:"history_limit" validate:"min=1"`
	ScorePrecision  int     `mapstructure:"score_precision" validate:"min=0,max=4"`
}

type NotificationsConfig struct {
	Timezone      string `mapstructure:"timezone" validate:"required"`
	Morning       string `mapstructure:"morning" validate:"required"`
	Midday        string `mapstructure:"midday" validate:"required"`
	Night         string `mapstructure:"night" validate:"required"`
	MiddayNagHour float64 `mapstructure:"midday_nag_hours" validate:"gte=0"`
}

type ReportsConfig struct {
	OutputDirectory string `mapstructure:"output_directory" validate:"required"`
}

type DataConfig struct {
	TopicsCSV     string `mapstructure:"topics_csv" validate:"omitempty,file"`
	QuestionsJSON string `mapstructure:"questions_json" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/padhai")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("telegram.poll_timeout_seconds", 30)
	v.SetDefault("database.path", filepath.Join("data", "padhai.db"))
	v.SetDefault("database.busy_timeout_ms", 5000)
	v.SetDefault("plan.daily_hours", 10.5)
	v.SetDefault("plan.blocks", defaultBlockSettings())
	v.SetDefault("weak.completion_threshold", 0.60)
	v.SetDefault("weak.accuracy_threshold", 0.50)
	v.SetDefault("weak.lookback_days", 14)
	v.SetDefault("mock.full_size", 15)
	v.SetDefault("mock.mini_size", 5)
	v.SetDefault("mock.paper1_size", 10)
	v.SetDefault("mock.negative_marking", 1.0/3.0)
	v.SetDefault("mock.history_limit", 5)
	v.SetDefault("mock.score_precision", 2)
	v.SetDefault("notifications.timezone", "Asia/Kolkata")
	v.SetDefault("notifications.morning", "07:00")
	v.SetDefault("notifications.midday", "14:00")
	v.SetDefault("notifications.night", "22:00")
	v.SetDefault("notifications.midday_nag_hours", 2.0)
	v.SetDefault("reports.output_directory", "reports")

	// Bind Telegram credentials to environment variables only (not from config file)
	if err := v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind TELEGRAM_BOT_TOKEN environment variable: %w", err)
	}
	if err := v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind TELEGRAM_CHAT_ID environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	if err := validateBlockHours(cfg.Plan); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateBlockHours checks that the block template covers the configured
// daily total exactly.
func validateBlockHours(plan PlanConfig) error {
	var total float64
	for _, b := range plan.Blocks {
		total += b.Hours
	}
	if math.Abs(total-plan.DailyHours) > 1e-9 {
		return fmt.Errorf("invalid configuration: plan blocks sum to %.2fh, expected daily_hours %.2fh", total, plan.DailyHours)
	}
	return nil
}

// defaultBlockSettings is the 10.5h daily template as viper defaults.
func defaultBlockSettings() []map[string]any {
	blocks := []BlockConfig{
		{Label: "Paper II - SrSec Biology", Paper: 2, Section: "SrSec", Hours: 2.5},
		{Label: "Paper II - Grad Biology", Paper: 2, Section: "Grad", Hours: 2.0},
		{Label: "Paper II - Pedagogy", Paper: 2, Section: "Pedagogy", Hours: 1.0},
		{Label: "Paper II - ICT", Paper: 2, Section: "ICT", Hours: 1.0},
		{Label: "Paper I - GK & Rajasthan", Paper: 1, Section: "History", Hours: 2.0},
		{Label: "MCQ Practice", Paper: 0, Section: "MCQ", Hours: 1.5},
		{Label: "Daily Review & Notes", Paper: 0, Section: "Review", Hours: 0.5},
	}

	settings := make([]map[string]any, 0, len(blocks))
	for _, b := range blocks {
		settings = append(settings, map[string]any{
			"label":   b.Label,
			"paper":   b.Paper,
			"section": b.Section,
			"hours":   b.Hours,
		})
	}
	return settings
}
