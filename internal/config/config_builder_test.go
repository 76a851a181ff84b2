package config

import (
	"encoding/json"
	"os"
	"runtime"
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

// validBase is the smallest config set that passes validation.
func validBase() []*StructuredConfig {
	return []*StructuredConfig{
		defaultConfig(),
		{Session: Session{Secret: "s3cret"}},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that an empty builder fails validation
// because no signing secret is configured.
func TestBuild_EmptyBuilder(t *testing.T) {
	_, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidSessionConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_DefaultsWithSecret verifies the default values after merging.
func TestBuild_DefaultsWithSecret(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validBase()...)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, SessionLifetime, cfg.Session.Lifetime)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.Lifetime)
	assert.Equal(t, 24*time.Hour, cfg.Session.UpdateAge)
	assert.Equal(t, "chronos.session-token", cfg.Session.CookieName)
	assert.Equal(t, "/auth/login", cfg.Session.LoginPath)
	assert.Equal(t, "/", cfg.Session.HomePath)
	assert.Equal(t, 12, cfg.Hasher.Cost)
	assert.Equal(t, runtime.NumCPU(), cfg.Hasher.Workers)
	assert.Equal(t, DriverMemory, cfg.Storage.DB.Driver)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// configs replace earlier ones while zero fields keep earlier values.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validBase()...)
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{Session: Session{Issuer: "issuer"}, Server: Server{HTTPAddress: "127.0.0.1:9000"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.Session.Issuer)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
}

func TestBuild_ResolvesPostgresDriverFromDSN(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validBase()...)
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "postgres://u:p@localhost/chronos"}},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
}

func TestBuild_RejectsLowHashCost(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validBase()...)
	b.configs = append(b.configs, &StructuredConfig{Hasher: Hasher{Cost: 10}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidHasherConfigs)
}

func TestBuildSeed_NeedsNoSessionSecret(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, defaultConfig())

	cfg, err := b.buildSeed()
	require.NoError(t, err)
	assert.Empty(t, cfg.Session.Secret)
	assert.Equal(t, DriverMemory, cfg.Storage.DB.Driver)
}

func TestBuildSeed_ValidatesHasherAndStorage(t *testing.T) {
	tests := []struct {
		name    string
		extra   *StructuredConfig
		wantErr error
	}{
		{name: "low cost", extra: &StructuredConfig{Hasher: Hasher{Cost: 10}}, wantErr: ErrInvalidHasherConfigs},
		{name: "sqlite without dsn", extra: &StructuredConfig{Storage: Storage{DB: DB{Driver: DriverSQLite}}}, wantErr: ErrInvalidStorageConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			b.configs = append(b.configs, defaultConfig(), tt.extra)

			_, err := b.buildSeed()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── validation ────────────────────────────────────────────────────────────────

func TestSessionValidate(t *testing.T) {
	valid := defaultConfig().Session
	valid.Secret = "s"

	tests := []struct {
		name    string
		mutate  func(s *Session)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *Session) {}},
		{name: "empty secret", mutate: func(s *Session) { s.Secret = "" }, wantErr: true},
		{name: "lifetime differs", mutate: func(s *Session) { s.Lifetime = time.Hour }, wantErr: true},
		{name: "no cookie name", mutate: func(s *Session) { s.CookieName = "" }, wantErr: true},
		{name: "update age beyond lifetime", mutate: func(s *Session) { s.UpdateAge = 8 * 24 * time.Hour }, wantErr: true},
		{name: "zero update age", mutate: func(s *Session) { s.UpdateAge = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSessionConfigs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHasherValidate(t *testing.T) {
	assert.NoError(t, Hasher{Cost: 12, Workers: 1}.Validate())
	assert.NoError(t, Hasher{Cost: MinHashCost, Workers: 4}.Validate())
	assert.ErrorIs(t, Hasher{Cost: 3, Workers: 1}.Validate(), ErrInvalidHasherConfigs)
	assert.ErrorIs(t, Hasher{Cost: 32, Workers: 1}.Validate(), ErrInvalidHasherConfigs)
	assert.ErrorIs(t, Hasher{Cost: 12}.Validate(), ErrInvalidHasherConfigs)
}

func TestDBValidate(t *testing.T) {
	assert.NoError(t, DB{Driver: DriverMemory}.Validate())
	assert.NoError(t, DB{Driver: DriverSQLite, DSN: "chronos.db"}.Validate())
	assert.ErrorIs(t, DB{Driver: DriverPostgres}.Validate(), ErrInvalidStorageConfigs)
	assert.ErrorIs(t, DB{Driver: "mongo", DSN: "x"}.Validate(), ErrInvalidStorageConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("SESSION_ISSUER", "env-issuer")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].Session.Issuer)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("HASHER_COST", "twelve")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_AppendsDefaults(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	require.Len(t, b.configs, 1)
	assert.Equal(t, SessionLifetime, b.configs[0].Session.Lifetime)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Session.Issuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-issuer", b.configs[1].Session.Issuer)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}
