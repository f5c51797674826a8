package contacts

import (
	"context"
	"errors"
	"strings"

	"github.com/fleetlinehq/fleetline-backend/internal/companies"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes business rules for company contacts.
type Service interface {
	Create(ctx context.Context, input CreateContactInput) (*ContactDTO, error)
	GetByID(ctx context.Context, id int64) (*ContactDTO, error)
	Update(ctx context.Context, id int64, input UpdateContactInput) (*ContactDTO, error)
	ListByCompany(ctx context.Context, companyID int64) ([]ContactDTO, error)
}

type service struct {
	repo      *Repository
	companies *companies.Repository
}

// NewService builds a contacts service with the required dependencies.
func NewService(repo *Repository, companiesRepo *companies.Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contacts repo is required")
	}
	if companiesRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "companies repo is required")
	}
	return &service{repo: repo, companies: companiesRepo}, nil
}

// Create validates the company reference and persists a new contact. A
// primary contact demotes the company's existing primary in the same
// transaction as the insert.
func (s *service) Create(ctx context.Context, input CreateContactInput) (*ContactDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	if err := s.ensureCompanyExists(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	contact, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contact")
	}
	return FromModel(contact), nil
}

// GetByID loads a single contact.
func (s *service) GetByID(ctx context.Context, id int64) (*ContactDTO, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "contact not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contact")
	}
	return FromModel(contact), nil
}

// Update applies a partial update. Promoting a contact to primary demotes the
// company's other contacts inside the same transaction as the write.
func (s *service) Update(ctx context.Context, id int64, input UpdateContactInput) (*ContactDTO, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "contact not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contact")
	}

	fields := map[string]any{}
	if input.Name.Set {
		name := strings.TrimSpace(input.Name.Value)
		if !input.Name.Valid || name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		fields["name"] = name
	}
	if input.Position.Set {
		fields["position"] = input.Position.Ptr()
	}
	if input.Phone.Set {
		fields["phone"] = input.Phone.Ptr()
	}
	if input.Email.Set {
		fields["email"] = input.Email.Ptr()
	}
	if input.Notes.Set {
		fields["notes"] = input.Notes.Ptr()
	}
	if input.IsPrimary.Set {
		if !input.IsPrimary.Valid {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "is_primary must not be null")
		}
		fields["is_primary"] = input.IsPrimary.Value
	}

	if err := s.repo.UpdateFields(ctx, contact, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contact")
	}
	return s.GetByID(ctx, id)
}

// ListByCompany returns all contacts of a company, primary first.
func (s *service) ListByCompany(ctx context.Context, companyID int64) ([]ContactDTO, error) {
	if err := s.ensureCompanyExists(ctx, companyID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contacts")
	}
	dtos := make([]ContactDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *FromModel(&records[i]))
	}
	return dtos, nil
}

func (s *service) ensureCompanyExists(ctx context.Context, companyID int64) error {
	exists, err := s.companies.Exists(ctx, companyID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check company")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
	}
	return nil
}
