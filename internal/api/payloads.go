package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type createProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
	Deadline    string `json:"deadline" validate:"required,datetime=2006-01-02"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type moduleRequest struct {
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description"`
	Status         string  `json:"status" validate:"omitempty,oneof=pending in_progress in_review completed"`
	Deadline       string  `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Owner          string  `json:"owner"`
	EstimatedHours float64 `json:"estimatedHours" validate:"gte=0"`
}

type generateRequest struct {
	Description string `json:"description" validate:"required"`
}

type partRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name" validate:"required"`
	Status string `json:"status"`
}

type partsRequest struct {
	Parts []partRequest `json:"parts" validate:"dive"`
}

type deliverableRequest struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

type requirementRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"omitempty,url"`
}

type documentRequest struct {
	Name     string `json:"name" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	Type     string `json:"type" validate:"omitempty,oneof=brief observations meeting_minutes other"`
	ModuleID string `json:"moduleId"`
}

type leadRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company"`
}

type changeRequestRequest struct {
	Details string `json:"details" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parses the JSON body into dst and checks its validate tags.
func (s *server) bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.Validation("invalid request body: %v", err)
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return domain.Validation("%s", strings.Join(msgs, "; "))
		}
		return domain.Validation("%v", err)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "datetime":
		return fe.Field() + " must be a YYYY-MM-DD date"
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	case "email", "url":
		return fe.Field() + " must be a valid " + fe.Tag()
	}
	return fe.Field() + " failed " + fe.Tag()
}

// optionalDate parses an already validated, possibly empty date.
func optionalDate(s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(s)
}

func (r moduleRequest) input() (service.ModuleInput, error) {
	deadline, err := optionalDate(r.Deadline)
	if err != nil {
		return service.ModuleInput{}, err
	}
	return service.ModuleInput{
		Name:           r.Name,
		Description:    r.Description,
		Status:         domain.ModuleStatus(r.Status),
		Deadline:       deadline,
		Owner:          r.Owner,
		EstimatedHours: r.EstimatedHours,
	}, nil
}

// parts maps the payload; an empty status is left for the service to default.
func (r partsRequest) parts() ([]*domain.Part, error) {
	out := make([]*domain.Part, 0, len(r.Parts))
	for _, p := range r.Parts {
		part := &domain.Part{ID: p.ID, Name: p.Name}
		if p.Status != "" {
			st, err := domain.ParsePartStatus(p.Status)
			if err != nil {
				return nil, err
			}
			part.Status = st
		}
		out = append(out, part)
	}
	return out, nil
}
