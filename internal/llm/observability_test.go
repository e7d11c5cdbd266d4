package llm

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewSlogObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.OnCallComplete(LLMCallEvent{Task: TaskModuleBreakdown, Model: "llama3.2", Attempts: 1, Success: true})
	assert.Contains(t, buf.String(), "level=INFO msg=llm_call task=module_breakdown")
	assert.Contains(t, buf.String(), "status=ok")

	buf.Reset()
	obs.OnCallComplete(LLMCallEvent{Task: TaskModuleBreakdown, Attempts: 2, ErrorCode: "RETRY_EXHAUSTED"})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "error_code=RETRY_EXHAUSTED")
}
