package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

// TaskModuleBreakdown turns a project description into proposed modules.
const TaskModuleBreakdown TaskType = "module_breakdown"

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns the built-in settings. The generator is off until
// an endpoint is explicitly enabled.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskModuleBreakdown: {Temperature: 0.3, MaxTokens: 4096},
		},
	}
}

// LoadConfig applies CLIENTDESK_LLM_* environment overrides to base.
func LoadConfig(base LLMConfig) LLMConfig {
	cfg := base
	cfg.Tasks = make(map[TaskType]TaskConfig, len(base.Tasks))
	for k, v := range base.Tasks {
		cfg.Tasks[k] = v
	}

	if v, ok := envBool("CLIENTDESK_LLM_ENABLED"); ok {
		cfg.Enabled = v
	}
	if v, ok := envBool("CLIENTDESK_LLM_LOG_CALLS"); ok {
		cfg.LogCalls = v
	}
	if v := os.Getenv("CLIENTDESK_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("CLIENTDESK_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if n, ok := envInt("CLIENTDESK_LLM_TIMEOUT_MS"); ok && n > 0 {
		cfg.TimeoutMs = n
	}
	if n, ok := envInt("CLIENTDESK_LLM_MAX_RETRIES"); ok && n >= 0 {
		cfg.MaxRetries = n
	}
	if n, ok := envInt("CLIENTDESK_LLM_MODULE_BREAKDOWN_TIMEOUT_MS"); ok && n > 0 {
		tc := cfg.Tasks[TaskModuleBreakdown]
		tc.TimeoutMs = n
		cfg.Tasks[TaskModuleBreakdown] = tc
	}
	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func envBool(name string) (bool, bool) {
	v := os.Getenv(name)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	return b, err == nil
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}
