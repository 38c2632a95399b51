package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name       string
		configYAML string
		wantErr    string
		assertCfg  func(t *testing.T, cfg *Config)
	}{
		{
			name:       "defaults only",
			configYAML: "",
			assertCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10.5, cfg.Plan.DailyHours)
				assert.Equal(t, 630, cfg.Plan.DailyMinutes())
				assert.Len(t, cfg.Plan.Blocks, 7)
				assert.Equal(t, 0.60, cfg.Weak.CompletionThreshold)
				assert.Equal(t, 0.50, cfg.Weak.AccuracyThreshold)
				assert.Equal(t, 15, cfg.Mock.FullSize)
				assert.Equal(t, 5, cfg.Mock.MiniSize)
				assert.InDelta(t, 1.0/3.0, cfg.Mock.NegativeMarking, 1e-9)
				assert.Equal(t, "07:00", cfg.Notifications.Morning)
				assert.Equal(t, "22:00", cfg.Notifications.Night)
				assert.Equal(t, "Asia/Kolkata", cfg.Notifications.Timezone)
			},
		},
		{
			name: "overrides",
			configYAML: `plan:
  daily_hours: 3.0
  blocks:
    - label: Reading
      paper: 2
      section: SrSec
      hours: 2.0
    - label: Review
      paper: 0
      section: Review
      hours: 1.0
mock:
  full_size: 20
`,
			assertCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 180, cfg.Plan.DailyMinutes())
				assert.Len(t, cfg.Plan.Blocks, 2)
				assert.Equal(t, 20, cfg.Mock.FullSize)
				// untouched defaults survive overrides
				assert.Equal(t, 5, cfg.Mock.MiniSize)
			},
		},
		{
			name: "blocks not summing to daily hours",
			configYAML: `plan:
  daily_hours: 5.0
  blocks:
    - label: Reading
      paper: 2
      section: SrSec
      hours: 2.0
`,
			wantErr: "plan blocks sum to 2.00h",
		},
		{
			name: "invalid threshold",
			configYAML: `weak:
  completion_threshold: 1.5
`,
			wantErr: "invalid configuration",
		},
		{
			name: "block without label",
			configYAML: `plan:
  daily_hours: 1.0
  blocks:
    - paper: 2
      section: SrSec
      hours: 1.0
`,
			wantErr: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			cfgPath := filepath.Join(tmpDir, "config.yml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(tt.configYAML), 0644))

			loader, err := NewConfigLoader(cfgPath)
			require.NoError(t, err)

			cfg, err := loader.Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.assertCfg(t, cfg)
		})
	}
}

func TestConfigLoader_Load_tokenFromEnvironment(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(""), 0644))

	loader, err := NewConfigLoader(cfgPath)
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
}
