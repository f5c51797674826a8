package companies

import (
	"context"
	"errors"
	"strings"

	"github.com/fleetlinehq/fleetline-backend/internal/users"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/fleetlinehq/fleetline-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes business rules for company accounts.
type Service interface {
	Create(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error)
	GetByID(ctx context.Context, id int64) (*CompanyDTO, error)
	Update(ctx context.Context, id int64, input UpdateCompanyInput) (*CompanyDTO, error)
	List(ctx context.Context, cursor string, limit int) (*CompanyPage, error)
}

type service struct {
	repo  *Repository
	users *users.Repository
}

// NewService builds a companies service with the required dependencies.
func NewService(repo *Repository, usersRepo *users.Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "companies repo is required")
	}
	if usersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	return &service{repo: repo, users: usersRepo}, nil
}

// Create validates references and persists a new company.
func (s *service) Create(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.FleetSize != nil && *input.FleetSize < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fleet_size must not be negative")
	}
	if input.AnnualRevenue != nil && input.AnnualRevenue.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "annual_revenue must not be negative")
	}

	if err := s.ensureUserExists(ctx, input.CreatedBy, "created_by user not found"); err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(ctx, input.AssignedBDM, "assigned_bdm user not found"); err != nil {
		return nil, err
	}

	company, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create company")
	}
	return FromModel(company), nil
}

// GetByID loads a single company.
func (s *service) GetByID(ctx context.Context, id int64) (*CompanyDTO, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "company not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}
	return FromModel(company), nil
}

// Update applies a partial update. Fields absent from the request keep their
// current values; present nulls clear nullable columns.
func (s *service) Update(ctx context.Context, id int64, input UpdateCompanyInput) (*CompanyDTO, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields, err := s.updateFields(ctx, input)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update company")
		}
	}
	return s.GetByID(ctx, id)
}

func (s *service) updateFields(ctx context.Context, input UpdateCompanyInput) (map[string]any, error) {
	fields := map[string]any{}

	if input.Name.Set {
		name := strings.TrimSpace(input.Name.Value)
		if !input.Name.Valid || name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		fields["name"] = name
	}
	if input.Industry.Set {
		fields["industry"] = input.Industry.Ptr()
	}
	if input.Address.Set {
		fields["address"] = input.Address.Ptr()
	}
	if input.Phone.Set {
		fields["phone"] = input.Phone.Ptr()
	}
	if input.Email.Set {
		fields["email"] = input.Email.Ptr()
	}
	if input.Website.Set {
		fields["website"] = input.Website.Ptr()
	}
	if input.Notes.Set {
		fields["notes"] = input.Notes.Ptr()
	}
	if input.FleetSize.Set {
		if input.FleetSize.Valid && input.FleetSize.Value < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "fleet_size must not be negative")
		}
		fields["fleet_size"] = input.FleetSize.Ptr()
	}
	if input.AnnualRevenue.Set {
		if !input.AnnualRevenue.Valid {
			fields["annual_revenue"] = decimal.NullDecimal{}
		} else {
			if input.AnnualRevenue.Value.IsNegative() {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "annual_revenue must not be negative")
			}
			fields["annual_revenue"] = decimal.NewNullDecimal(input.AnnualRevenue.Value)
		}
	}
	if input.AssignedBDM.Set {
		if !input.AssignedBDM.Valid {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "assigned_bdm must not be null")
		}
		if err := s.ensureUserExists(ctx, input.AssignedBDM.Value, "assigned_bdm user not found"); err != nil {
			return nil, err
		}
		fields["assigned_bdm"] = input.AssignedBDM.Value
	}

	return fields, nil
}

// List returns a cursor page of companies.
func (s *service) List(ctx context.Context, cursor string, limit int) (*CompanyPage, error) {
	if _, err := pagination.ParseCursor(cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	records, nextCursor, err := s.repo.List(ctx, cursor, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list companies")
	}

	page := &CompanyPage{
		Items:      make([]CompanyDTO, 0, len(records)),
		NextCursor: nextCursor,
	}
	for i := range records {
		page.Items = append(page.Items, *FromModel(&records[i]))
	}
	return page, nil
}

func (s *service) ensureUserExists(ctx context.Context, userID int64, msg string) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	}
	return nil
}
