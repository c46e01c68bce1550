package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// validConfig returns a StructuredConfig that passes validate().
func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  "sign",
			TokenIssuer:   "door-keeper",
			TokenDuration: time.Hour,
			HashKey:       "hash",
		},
		Storage: Storage{DB: DB{Driver: DriverSQLite, DSN: "door.db"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validConfig(),
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{Notifier: Notifier{WebhookURL: "http://hooks.local/door"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "door-keeper", cfg.App.TokenIssuer)
	assert.Equal(t, "http://hooks.local/door", cfg.Notifier.WebhookURL)
}

// TestBuild_FirstNonZeroFieldWins verifies mergo's merge semantics: a field
// already set by an earlier source is not overwritten by a later one.
func TestBuild_FirstNonZeroFieldWins(t *testing.T) {
	b := newConfigBuilder()
	first := validConfig()
	first.Server.HTTPAddress = "localhost:9000"
	b.configs = append(b.configs,
		first,
		&StructuredConfig{Server: Server{HTTPAddress: "localhost:8080"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", cfg.Server.HTTPAddress)
}

// TestBuild_ValidationFailure verifies that an invalid merged config is
// rejected by validate().
func TestBuild_ValidationFailure(t *testing.T) {
	b := newConfigBuilder()
	invalid := validConfig()
	invalid.Storage.DB.Driver = "oracle"
	b.configs = append(b.configs, invalid)

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_LoadsFileWhenPathSet verifies that a JSON file referenced from
// an earlier source is parsed and appended.
func TestWithJSON_LoadsFileWhenPathSet(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{
			"http_address":    "0.0.0.0:8080",
			"request_timeout": "30s",
		},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b = b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "0.0.0.0:8080", b.configs[1].Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, b.configs[1].Server.RequestTimeout)
}

// TestWithJSON_NoPathIsNoop verifies that withJSON does nothing when no
// source set a JSON path.
func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b = b.withJSON()

	require.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

// TestWithJSON_BadFileSetsError verifies that an unreadable JSON path is
// recorded as a builder error.
func TestWithJSON_BadFileSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/no/such/file.json"})
	b = b.withJSON()

	assert.Error(t, b.err)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{"valid", func(cfg *StructuredConfig) {}, nil},
		{"empty dsn", func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, ErrInvalidStorageConfigs},
		{"unknown driver", func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "oracle" }, ErrInvalidStorageConfigs},
		{"missing address", func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
		{"missing sign key", func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, ErrInvalidAppConfigs},
		{"missing hash key", func(cfg *StructuredConfig) { cfg.App.HashKey = "" }, ErrInvalidAppConfigs},
		{"unknown bolt driver", func(cfg *StructuredConfig) { cfg.Hardware.BoltDriver = "servo" }, ErrInvalidHardwareConfigs},
		{"mock bolt driver", func(cfg *StructuredConfig) { cfg.Hardware.BoltDriver = BoltDriverMock }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
