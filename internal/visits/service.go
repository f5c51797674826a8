package visits

import (
	"context"
	"errors"
	"strings"

	"github.com/fleetlinehq/fleetline-backend/internal/companies"
	"github.com/fleetlinehq/fleetline-backend/internal/contacts"
	"github.com/fleetlinehq/fleetline-backend/internal/users"
	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes business rules for customer visits.
type Service interface {
	Create(ctx context.Context, input CreateVisitInput) (*VisitDTO, error)
	GetByID(ctx context.Context, id int64) (*VisitDTO, error)
	Update(ctx context.Context, id int64, input UpdateVisitInput) (*VisitDTO, error)
	ListByCompany(ctx context.Context, companyID int64) ([]VisitDTO, error)
	ListByUser(ctx context.Context, userID int64) ([]VisitDTO, error)
}

type service struct {
	repo      *Repository
	companies *companies.Repository
	contacts  *contacts.Repository
	users     *users.Repository
}

// NewService builds a visits service with the required dependencies.
func NewService(repo *Repository, companiesRepo *companies.Repository, contactsRepo *contacts.Repository, usersRepo *users.Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visits repo is required")
	}
	if companiesRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "companies repo is required")
	}
	if contactsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contacts repo is required")
	}
	if usersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	return &service{repo: repo, companies: companiesRepo, contacts: contactsRepo, users: usersRepo}, nil
}

// Create validates references and persists a new visit. A contact reference
// must belong to the visited company.
func (s *service) Create(ctx context.Context, input CreateVisitInput) (*VisitDTO, error) {
	input.Summary = strings.TrimSpace(input.Summary)
	if input.Summary == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "summary is required")
	}
	if !input.VisitType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid visit_type")
	}
	if input.VisitDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visit_date is required")
	}
	if input.DurationMinutes != nil && *input.DurationMinutes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration_minutes must be positive")
	}

	if err := s.ensureCompanyExists(ctx, input.CompanyID); err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(ctx, input.UserID); err != nil {
		return nil, err
	}
	if input.ContactID != nil {
		if err := s.ensureContactInCompany(ctx, *input.ContactID, input.CompanyID); err != nil {
			return nil, err
		}
	}

	visit, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create visit")
	}
	return FromModel(visit), nil
}

// GetByID loads a single visit.
func (s *service) GetByID(ctx context.Context, id int64) (*VisitDTO, error) {
	visit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "visit not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load visit")
	}
	return FromModel(visit), nil
}

// Update applies a partial update. A new contact reference is checked against
// the visit's company before the write.
func (s *service) Update(ctx context.Context, id int64, input UpdateVisitInput) (*VisitDTO, error) {
	visit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "visit not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load visit")
	}

	fields := map[string]any{}
	if input.Summary.Set {
		summary := strings.TrimSpace(input.Summary.Value)
		if !input.Summary.Valid || summary == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "summary must not be empty")
		}
		fields["summary"] = summary
	}
	if input.VisitType.Set {
		if !input.VisitType.Valid || !input.VisitType.Value.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid visit_type")
		}
		fields["visit_type"] = input.VisitType.Value
	}
	if input.VisitDate.Set {
		if !input.VisitDate.Valid || input.VisitDate.Value.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "visit_date must not be null")
		}
		fields["visit_date"] = input.VisitDate.Value
	}
	if input.ContactID.Set {
		if input.ContactID.Valid {
			if err := s.ensureContactInCompany(ctx, input.ContactID.Value, visit.CompanyID); err != nil {
				return nil, err
			}
		}
		fields["contact_id"] = input.ContactID.Ptr()
	}
	if input.DurationMinutes.Set {
		if input.DurationMinutes.Valid && input.DurationMinutes.Value <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration_minutes must be positive")
		}
		fields["duration_minutes"] = input.DurationMinutes.Ptr()
	}
	if input.Objectives.Set {
		fields["objectives"] = input.Objectives.Ptr()
	}
	if input.Outcomes.Set {
		fields["outcomes"] = input.Outcomes.Ptr()
	}
	if input.NextSteps.Set {
		fields["next_steps"] = input.NextSteps.Ptr()
	}
	if input.Location.Set {
		fields["location"] = input.Location.Ptr()
	}
	if input.FollowUpDate.Set {
		fields["follow_up_date"] = input.FollowUpDate.Ptr()
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update visit")
	}
	return s.GetByID(ctx, id)
}

// ListByCompany returns the visits logged against a company.
func (s *service) ListByCompany(ctx context.Context, companyID int64) ([]VisitDTO, error) {
	if err := s.ensureCompanyExists(ctx, companyID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list visits")
	}
	return toDTOs(records), nil
}

// ListByUser returns the visits logged by a user.
func (s *service) ListByUser(ctx context.Context, userID int64) ([]VisitDTO, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list visits")
	}
	return toDTOs(records), nil
}

func toDTOs(records []models.Visit) []VisitDTO {
	dtos := make([]VisitDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *FromModel(&records[i]))
	}
	return dtos
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

func (s *service) ensureUserExists(ctx context.Context, userID int64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}

func (s *service) ensureContactInCompany(ctx context.Context, contactID, companyID int64) error {
	ok, err := s.contacts.ExistsInCompany(ctx, contactID, companyID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check contact")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "contact not found or does not belong to the specified company")
	}
	return nil
}
