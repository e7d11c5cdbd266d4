package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/clientdesk/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CLIENTDESK_CONFIG", "CLIENTDESK_STORE", "CLIENTDESK_DB", "CLIENTDESK_ADDR",
		"CLIENTDESK_PUBLIC_URL", "CLIENTDESK_LOG_LEVEL", "CLIENTDESK_LOG_USE_CASES",
		"CLIENTDESK_LLM_ENABLED", "CLIENTDESK_LLM_MODEL", "CLIENTDESK_LLM_MAX_RETRIES",
		"CLIENTDESK_LLM_TIMEOUT_MS", "CLIENTDESK_LLM_MODULE_BREAKDOWN_TIMEOUT_MS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
store:
  backend: json
  path: /var/lib/clientdesk
http:
  addr: ":9090"
  public_url: https://desk.example.com
log:
  use_cases: true
llm:
  enabled: true
  model: mistral
  max_retries: 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/clientdesk", cfg.Store.Path)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "https://desk.example.com", cfg.HTTP.PublicURL)
	assert.True(t, cfg.Log.UseCases)
	assert.Equal(t, "info", cfg.Log.Level)

	llmCfg := cfg.LLMSettings()
	assert.True(t, llmCfg.Enabled)
	assert.Equal(t, "mistral", llmCfg.Model)
	assert.Equal(t, 0, llmCfg.MaxRetries)
	assert.Equal(t, 30000, llmCfg.TimeoutMs)
}

func TestLoad_MissingImplicitFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "clientdesk.db", filepath.Base(cfg.Store.Path))
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.False(t, cfg.LLMSettings().Enabled)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "store:\n  backend: sqlite\n  path: file.db\nllm:\n  model: mistral\n")
	t.Setenv("CLIENTDESK_STORE", "JSON")
	t.Setenv("CLIENTDESK_DB", "/tmp/data")
	t.Setenv("CLIENTDESK_LOG_USE_CASES", "true")
	t.Setenv("CLIENTDESK_LLM_MODEL", "llama3.1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Store.Backend)
	assert.Equal(t, "/tmp/data", cfg.Store.Path)
	assert.True(t, cfg.Log.UseCases)
	assert.Equal(t, "llama3.1", cfg.LLMSettings().Model)
}

func TestLoad_LLMTimeoutReachesModuleBreakdown(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "llm:\n  enabled: true\n  timeout_ms: 5000\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.LLMSettings().TaskTimeout(llm.TaskModuleBreakdown))

	t.Setenv("CLIENTDESK_LLM_TIMEOUT_MS", "1000")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.LLMSettings().TaskTimeout(llm.TaskModuleBreakdown))

	t.Setenv("CLIENTDESK_LLM_MODULE_BREAKDOWN_TIMEOUT_MS", "2500")
	assert.Equal(t, 2500, cfg.LLMSettings().TaskTimeout(llm.TaskModuleBreakdown))
}

func TestLoad_ConfigEnvSelectsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLIENTDESK_CONFIG", writeConfig(t, "http:\n  addr: \":7000\"\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
}

func TestLoad_JSONBackendDefaultsToDirectory(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "store:\n  backend: json\n"))
	require.NoError(t, err)
	assert.Equal(t, ".clientdesk", filepath.Base(cfg.Store.Path))
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	tests := map[string]string{
		"unknown backend": "store:\n  backend: postgres\n",
		"bad level":       "log:\n  level: loud\n",
		"bad yaml":        "store: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}

	t.Setenv("CLIENTDESK_LOG_USE_CASES", "sometimes")
	_, err := Load(writeConfig(t, ""))
	require.Error(t, err)
}
