package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-schemaflat/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.Options{Dirs: []string{t.TempDir()}})
	require.NoError(t, err)

	assert.Equal(t, "openapi.json", cfg.Input)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "", cfg.Root)
	assert.Equal(t, "", cfg.DefaultRoot)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	content := "root: Pet\ninput: petstore.yaml\nformat: yaml\nlog:\n  level: debug\nhttp:\n  timeout: 5s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schemaflat.yaml"), []byte(content), 0o644))

	t.Setenv("SCHEMAFLAT_FORMAT", "table")
	t.Setenv("SCHEMAFLAT_LOG_FORMAT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root", "", "")
	flags.Bool("strict", false, "")
	require.NoError(t, flags.Parse([]string{"--root", "Order", "--strict"}))

	cfg, err := config.Load(config.Options{Dirs: []string{dir}, Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, "Order", cfg.Root, "flags win over the file")
	assert.True(t, cfg.Strict)
	assert.Equal(t, "petstore.yaml", cfg.Input)
	assert.Equal(t, "table", cfg.Format, "env wins over the file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
}

func TestLoad_DefaultRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schemaflat.yaml"), []byte("default_root: Pet\n"), 0o644))

	cfg, err := config.Load(config.Options{Dirs: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "Pet", cfg.DefaultRoot)
	assert.Equal(t, "", cfg.Root)

	t.Setenv("SCHEMAFLAT_DEFAULT_ROOT", "Order")
	cfg, err = config.Load(config.Options{Dirs: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "Order", cfg.DefaultRoot)
}

func TestLoad_UnchangedFlagsKeepDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load(config.Options{Dirs: []string{t.TempDir()}, Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := config.Load(config.Options{File: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestDefaultOutput(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, "Pet_fields.json", cfg.DefaultOutput("Pet", ".json"))

	cfg.Output = "out.yaml"
	assert.Equal(t, "out.yaml", cfg.DefaultOutput("Pet", ".json"))
}
