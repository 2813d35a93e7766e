package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileConfig_YAML(t *testing.T) {
	path := writeFile(t, "experiment.yaml", "num_doors: 5\nseed: 11\ntrial: doors\n")

	cfg, err := LoadFileConfig(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.NumDoors)
	assert.Equal(t, 5, *cfg.NumDoors)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(11), *cfg.Seed)
	assert.Equal(t, "doors", *cfg.Trial)
	assert.Nil(t, cfg.NumSimulations, "absent keys stay nil")
}

func TestLoadFileConfig_TOML(t *testing.T) {
	path := writeFile(t, "experiment.toml", "num_doors = 6\nnum_doors_opened_by_host = 3\nworkers = 4\n")

	cfg, err := LoadFileConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 6, *cfg.NumDoors)
	assert.Equal(t, 3, *cfg.NumDoorsOpenedByHost)
	assert.Equal(t, 4, *cfg.Workers)
	assert.Nil(t, cfg.Seed)
}

func TestLoadFileConfig_RejectsUnknownKeys(t *testing.T) {
	// Typos must cause errors in both formats.
	_, err := LoadFileConfig(writeFile(t, "bad.yaml", "num_door: 5\n"))
	assert.Error(t, err)

	_, err = LoadFileConfig(writeFile(t, "bad.toml", "num_door = 5\n"))
	assert.ErrorContains(t, err, "num_door")
}

func TestLoadFileConfig_Errors(t *testing.T) {
	_, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	_, err = LoadFileConfig(writeFile(t, "experiment.json", "{}"))
	assert.ErrorContains(t, err, "unsupported config file extension")
}

func TestResolveOptions_Precedence(t *testing.T) {
	// GIVEN env, a config file and a flag that overlap
	t.Setenv("MONTYHALL_NUM_DOORS", "4")
	t.Setenv("MONTYHALL_NUM_SIMULATIONS", "500")
	t.Setenv("MONTYHALL_TRIAL", "doors")
	path := writeFile(t, "experiment.yaml", "num_doors: 5\nseed: 11\nworkers: 2\n")

	resetFlags(t)
	require.NoError(t, rootCmd.ParseFlags([]string{"--config", path, "--num_doors", "9"}))

	// WHEN resolved
	opts, err := resolveOptions(rootCmd)
	require.NoError(t, err)

	// THEN flag > file > env > default
	assert.Equal(t, 9, opts.Config.NumDoors, "flag wins")
	assert.Equal(t, int64(11), opts.Run.Seed, "file seed used")
	assert.True(t, opts.SeedSet)
	assert.Equal(t, 2, opts.Run.Workers, "file workers used")
	assert.Equal(t, 500, opts.Config.NumSimulations, "env used when file and flag are silent")
	assert.Equal(t, "doors", opts.Run.Trial, "env used when file and flag are silent")
	assert.Equal(t, 1, opts.Config.NumDoorsOpenedByHost, "built-in default")
}

func TestResolveOptions_EnvSeedAndDefaults(t *testing.T) {
	t.Setenv("MONTYHALL_SEED", "-3")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

	resetFlags(t)
	require.NoError(t, rootCmd.ParseFlags(nil))

	opts, err := resolveOptions(rootCmd)
	require.NoError(t, err)

	assert.Equal(t, int64(-3), opts.Run.Seed)
	assert.True(t, opts.SeedSet)
	assert.Equal(t, filepath.Join("/tmp/xdg", "montyhall", "runs.db"), opts.DBPath)
	assert.Equal(t, "error", opts.LogLevel)
}

func TestResolveOptions_NoSeed_UsesClock(t *testing.T) {
	resetFlags(t)
	require.NoError(t, rootCmd.ParseFlags(nil))

	opts, err := resolveOptions(rootCmd)
	require.NoError(t, err)

	assert.False(t, opts.SeedSet)
	assert.NotZero(t, opts.Run.Seed)
}

func TestResolveOptions_BadEnv(t *testing.T) {
	t.Setenv("MONTYHALL_NUM_DOORS", "three")

	resetFlags(t)
	require.NoError(t, rootCmd.ParseFlags(nil))

	_, err := resolveOptions(rootCmd)
	assert.ErrorContains(t, err, "parse env")
}
