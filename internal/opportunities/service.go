package opportunities

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fleetlinehq/fleetline-backend/internal/companies"
	"github.com/fleetlinehq/fleetline-backend/internal/contacts"
	"github.com/fleetlinehq/fleetline-backend/internal/users"
	"github.com/fleetlinehq/fleetline-backend/pkg/db/models"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes business rules for sales opportunities.
type Service interface {
	Create(ctx context.Context, input CreateOpportunityInput) (*OpportunityDTO, error)
	GetByID(ctx context.Context, id int64) (*OpportunityDTO, error)
	Update(ctx context.Context, id int64, input UpdateOpportunityInput) (*OpportunityDTO, error)
	ListByCompany(ctx context.Context, companyID int64) ([]OpportunityDTO, error)
	ListByUser(ctx context.Context, userID int64) ([]OpportunityDTO, error)
}

type service struct {
	repo      *Repository
	companies *companies.Repository
	contacts  *contacts.Repository
	users     *users.Repository
	now       func() time.Time
}

// NewService builds an opportunities service with the required dependencies.
// The clock is injectable so close-date stamping is deterministic in tests.
func NewService(repo *Repository, companiesRepo *companies.Repository, contactsRepo *contacts.Repository, usersRepo *users.Repository, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "opportunities repo is required")
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
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:      repo,
		companies: companiesRepo,
		contacts:  contactsRepo,
		users:     usersRepo,
		now:       now,
	}, nil
}

// Create validates references and persists a new opportunity. Stage defaults
// to LEAD; creating directly in a terminal stage stamps the close date.
func (s *service) Create(ctx context.Context, input CreateOpportunityInput) (*OpportunityDTO, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.Stage == "" {
		input.Stage = enums.PipelineStageLead
	}
	if !input.Stage.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stage")
	}
	if input.Probability != nil && (*input.Probability < 0 || *input.Probability > 100) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "probability must be between 0 and 100")
	}
	if input.Value != nil && input.Value.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "value must not be negative")
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

	opp := input.ToModel()
	if opp.Stage.IsTerminal() && opp.ActualCloseDate == nil {
		closedAt := s.now()
		opp.ActualCloseDate = &closedAt
	}

	if err := s.repo.Create(ctx, opp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create opportunity")
	}
	return FromModel(opp), nil
}

// GetByID loads a single opportunity.
func (s *service) GetByID(ctx context.Context, id int64) (*OpportunityDTO, error) {
	opp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "opportunity not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load opportunity")
	}
	return FromModel(opp), nil
}

// Update applies a partial update. Moving the stage to CLOSED_WON or
// CLOSED_LOST stamps actual_close_date with the current time unless the
// request carries an explicit value or null; an explicit value always wins.
// Moving to a non-terminal stage never clears an existing close date.
func (s *service) Update(ctx context.Context, id int64, input UpdateOpportunityInput) (*OpportunityDTO, error) {
	opp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "opportunity not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load opportunity")
	}

	fields, err := s.updateFields(ctx, opp, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update opportunity")
	}
	return s.GetByID(ctx, id)
}

func (s *service) updateFields(ctx context.Context, opp *models.SalesOpportunity, input UpdateOpportunityInput) (map[string]any, error) {
	fields := map[string]any{}

	if input.Title.Set {
		title := strings.TrimSpace(input.Title.Value)
		if !input.Title.Valid || title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must not be empty")
		}
		fields["title"] = title
	}
	if input.Description.Set {
		fields["description"] = input.Description.Ptr()
	}
	if input.ContactID.Set {
		if input.ContactID.Valid {
			if err := s.ensureContactInCompany(ctx, input.ContactID.Value, opp.CompanyID); err != nil {
				return nil, err
			}
		}
		fields["contact_id"] = input.ContactID.Ptr()
	}
	if input.Value.Set {
		if !input.Value.Valid {
			fields["value"] = decimal.NullDecimal{}
		} else {
			if input.Value.Value.IsNegative() {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "value must not be negative")
			}
			fields["value"] = decimal.NewNullDecimal(input.Value.Value)
		}
	}
	if input.Probability.Set {
		if !input.Probability.Valid {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "probability must not be null")
		}
		if input.Probability.Value < 0 || input.Probability.Value > 100 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "probability must be between 0 and 100")
		}
		fields["probability"] = input.Probability.Value
	}
	if input.ExpectedCloseDate.Set {
		fields["expected_close_date"] = input.ExpectedCloseDate.Ptr()
	}
	if input.ActualCloseDate.Set {
		fields["actual_close_date"] = input.ActualCloseDate.Ptr()
	}

	if input.Stage.Set {
		if !input.Stage.Valid || !input.Stage.Value.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stage")
		}
		fields["stage"] = input.Stage.Value

		// Stamp the close date on entry into a terminal stage, but only
		// when the request did not set actual_close_date itself and no
		// close date is already recorded.
		if input.Stage.Value.IsTerminal() && !input.ActualCloseDate.Set && opp.ActualCloseDate == nil {
			closedAt := s.now()
			fields["actual_close_date"] = &closedAt
		}
	}

	return fields, nil
}

// ListByCompany returns the opportunities of a company.
func (s *service) ListByCompany(ctx context.Context, companyID int64) ([]OpportunityDTO, error) {
	if err := s.ensureCompanyExists(ctx, companyID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list opportunities")
	}
	return toDTOs(records), nil
}

// ListByUser returns the opportunities owned by a user.
func (s *service) ListByUser(ctx context.Context, userID int64) ([]OpportunityDTO, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list opportunities")
	}
	return toDTOs(records), nil
}

func toDTOs(records []models.SalesOpportunity) []OpportunityDTO {
	dtos := make([]OpportunityDTO, 0, len(records))
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
