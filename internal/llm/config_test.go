package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_ModuleBreakdownTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.MaxRetries)
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskModuleBreakdown))
}

func TestTaskTimeout_InheritsGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 7000
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskModuleBreakdown))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CLIENTDESK_LLM_ENABLED", "true")
	t.Setenv("CLIENTDESK_LLM_MODEL", "qwen2.5")
	t.Setenv("CLIENTDESK_LLM_TIMEOUT_MS", "9000")
	t.Setenv("CLIENTDESK_LLM_MODULE_BREAKDOWN_TIMEOUT_MS", "45000")

	cfg := LoadConfig(DefaultConfig())

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 45000, cfg.TaskTimeout(TaskModuleBreakdown))
	assert.Equal(t, 9000, cfg.TaskTimeout("unknown"))
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("CLIENTDESK_LLM_ENABLED", "maybe")
	t.Setenv("CLIENTDESK_LLM_MAX_RETRIES", "-3")
	t.Setenv("CLIENTDESK_LLM_MODULE_BREAKDOWN_TIMEOUT_MS", "soon")

	cfg := LoadConfig(DefaultConfig())

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.MaxRetries)
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskModuleBreakdown))
}

func TestLoadConfig_DoesNotMutateBase(t *testing.T) {
	t.Setenv("CLIENTDESK_LLM_MODULE_BREAKDOWN_TIMEOUT_MS", "1000")
	base := DefaultConfig()

	_ = LoadConfig(base)

	assert.Equal(t, 30000, base.TaskTimeout(TaskModuleBreakdown))
}
