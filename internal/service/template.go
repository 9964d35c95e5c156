package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/repo"
)

// TemplateService manages the default items copied into every new trip.
type TemplateService struct {
	templates repo.TemplateRepo
}

// NewTemplateService constructs a TemplateService backed by the provided repo.
func NewTemplateService(templates repo.TemplateRepo) *TemplateService {
	return &TemplateService{templates: templates}
}

// List returns the owner's templates of kind.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TemplateService) List(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind) ([]domain.DefaultItem, error) {
	if err := requireTemplateKind(kind); err != nil {
		return nil, err
	}
	out, err := s.templates.List(ctx, ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("service.TemplateService.List: %w", err)
	}
	if out == nil {
		return []domain.DefaultItem{}, nil
	}
	return out, nil
}

// Create validates and stores a template.
func (s *TemplateService) Create(ctx context.Context, tpl domain.DefaultItem) (domain.DefaultItem, error) {
	if err := requireTemplateKind(tpl.Kind); err != nil {
		return domain.DefaultItem{}, err
	}
	tpl.Text = strings.TrimSpace(tpl.Text)
	if tpl.Text == "" {
		return domain.DefaultItem{}, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}
	tpl.Person = strings.TrimSpace(tpl.Person)
	if !tpl.Kind.HasPerson() {
		tpl.Person = ""
	}
	result, err := s.templates.Create(ctx, tpl)
	if err != nil {
		return domain.DefaultItem{}, fmt.Errorf("service.TemplateService.Create: %w", err)
	}
	return result, nil
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, ownerID uuid.UUID, kind domain.ListKind, id uuid.UUID) error {
	if err := requireTemplateKind(kind); err != nil {
		return err
	}
	if err := s.templates.Delete(ctx, ownerID, kind, id); err != nil {
		return fmt.Errorf("service.TemplateService.Delete: %w", err)
	}
	return nil
}

func requireTemplateKind(kind domain.ListKind) error {
	if !kind.HasTemplates() {
		return fmt.Errorf("%w: list kind %q has no templates", domain.ErrValidation, kind)
	}
	return nil
}
