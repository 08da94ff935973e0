package config

import (
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/condgen/compiler/gen"
	"github.com/syssam/condgen/dialect"
	"github.com/syssam/condgen/internal/testutil"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("condgen", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)
	assert.Empty(t, cfg.File)
	assert.Empty(t, cfg.Schemas)
	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.Equal(t, dialect.MySQL, cfg.Dialect)
	assert.True(t, cfg.OrderHelpers)
	assert.Equal(t, FormatGo, cfg.Format)
	assert.Equal(t, gen.DefaultHeader, cfg.Header)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteFile(t, dir, DefaultFile, `schemas: [schema/books.yaml]
target: internal/query
dialect: postgres
order_helpers: false
workers: 2
`)

	t.Run("file", func(t *testing.T) {
		cfg, err := Load("", newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, DefaultFile, cfg.File)
		assert.Equal(t, []string{"schema/books.yaml"}, cfg.Schemas)
		assert.Equal(t, "internal/query", cfg.Target)
		assert.Equal(t, dialect.Postgres, cfg.Dialect)
		assert.False(t, cfg.OrderHelpers)
		assert.Equal(t, 2, cfg.Workers)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("CONDGEN_DIALECT", "sqlite")
		t.Setenv("CONDGEN_WORKERS", "8")
		cfg, err := Load("", newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, dialect.SQLite, cfg.Dialect)
		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, "internal/query", cfg.Target)
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("CONDGEN_DIALECT", "sqlite")
		cfg, err := Load("", newFlags(t, "--dialect", "mysql", "-s", "a.yaml", "-s", "b.yaml", "--order-helpers=true"))
		require.NoError(t, err)
		assert.Equal(t, dialect.MySQL, cfg.Dialect)
		assert.Equal(t, []string{"a.yaml", "b.yaml"}, cfg.Schemas)
		assert.True(t, cfg.OrderHelpers)
	})

	t.Run("unset flags keep lower layers", func(t *testing.T) {
		cfg, err := Load("", newFlags(t, "--format", "json"))
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, cfg.Format)
		assert.False(t, cfg.OrderHelpers)
		assert.Equal(t, "internal/query", cfg.Target)
	})
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(t.TempDir())
	path := testutil.WriteFile(t, dir, "custom.yaml", "package: example.com/library/query\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "example.com/library/query", cfg.Package)

	_, err = Load(dir+"/missing.yaml", nil)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"dialect", []string{"--dialect", "oracle"}, "unsupported dialect"},
		{"format", []string{"--format", "xml"}, "must be go, json or msgpack"},
		{"log level", []string{"--log-level", "loud"}, "log_level"},
		{"log format", []string{"--log-format", "yaml"}, "must be text or json"},
		{"workers", []string{"--workers=-1"}, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("", newFlags(t, tt.args...))
			require.Error(t, err)
			assert.True(t, gen.IsConfigError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := &Config{
		Target:          "out",
		Package:         "example.com/library/query",
		Dialect:         dialect.Postgres,
		OrderHelpers:    false,
		Workers:         3,
		ContinueOnError: true,
		Header:          "generated",
	}
	gcfg, err := gen.NewConfig(cfg.Options(slog.New(slog.DiscardHandler))...)
	require.NoError(t, err)
	assert.Equal(t, "out", gcfg.Target)
	assert.Equal(t, "example.com/library/query", gcfg.Package)
	assert.Equal(t, dialect.Postgres, gcfg.Dialect)
	assert.False(t, gcfg.OrderHelpers)
	assert.Equal(t, 3, gcfg.Workers)
	assert.True(t, gcfg.ContinueOnError)
	assert.Equal(t, "generated", gcfg.Header)
	assert.NotNil(t, gcfg.Logger)
}
