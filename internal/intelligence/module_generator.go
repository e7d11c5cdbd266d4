package intelligence

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/llm"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// GeneratedModule is one proposed module as returned by the model.
type GeneratedModule struct {
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description"`
	Deadline       string  `json:"deadline" validate:"required,datetime=2006-01-02"`
	Owner          string  `json:"owner"`
	EstimatedHours float64 `json:"estimatedHours" validate:"gte=0"`
}

type moduleBreakdown struct {
	Modules []GeneratedModule `json:"modules" validate:"required,min=1,dive"`
}

// ModuleGenerator proposes modules for a project description. It never
// touches stored state; callers decide what to persist.
type ModuleGenerator interface {
	Generate(ctx context.Context, projectDescription string) ([]GeneratedModule, error)
}

type moduleGenerator struct {
	client llm.LLMClient
}

// NewModuleGenerator creates a ModuleGenerator backed by an LLM client.
func NewModuleGenerator(client llm.LLMClient) ModuleGenerator {
	return &moduleGenerator{client: client}
}

func (g *moduleGenerator) Generate(ctx context.Context, projectDescription string) ([]GeneratedModule, error) {
	desc := strings.TrimSpace(projectDescription)
	if desc == "" {
		return nil, domain.Validation("project description is required")
	}

	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskModuleBreakdown,
		SystemPrompt: moduleBreakdownSystemPrompt,
		UserPrompt:   "Project description: " + desc,
		JSONMode:     true,
	})
	if err != nil {
		return nil, externalError("generating modules", err)
	}

	out, err := llm.ExtractJSON(resp.Text, validateBreakdown)
	if err != nil {
		return nil, externalError("reading generated modules", err)
	}
	return out.Modules, nil
}

// validateBreakdown trims names in place so blank names fail "required".
func validateBreakdown(b moduleBreakdown) error {
	for i := range b.Modules {
		b.Modules[i].Name = strings.TrimSpace(b.Modules[i].Name)
		b.Modules[i].Owner = strings.TrimSpace(b.Modules[i].Owner)
	}
	return validate.Struct(b)
}

// externalError maps llm failures onto the domain error kinds.
func externalError(op string, err error) error {
	if errors.Is(err, llm.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return domain.ExternalTimeout(op, err)
	}
	return domain.ExternalFailure(op, err)
}
