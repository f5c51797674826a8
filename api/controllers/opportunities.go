package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/fleetlinehq/fleetline-backend/api/middleware"
	"github.com/fleetlinehq/fleetline-backend/api/responses"
	"github.com/fleetlinehq/fleetline-backend/api/validators"
	"github.com/fleetlinehq/fleetline-backend/internal/opportunities"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/fleetlinehq/fleetline-backend/pkg/logger"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type opportunityCreateRequest struct {
	CompanyID         int64            `json:"company_id" validate:"required"`
	ContactID         *int64           `json:"contact_id"`
	Title             string           `json:"title" validate:"required"`
	Description       *string          `json:"description"`
	Value             *decimal.Decimal `json:"value"`
	Probability       *int             `json:"probability"`
	Stage             string           `json:"stage"`
	ExpectedCloseDate *time.Time       `json:"expected_close_date"`
	ActualCloseDate   *time.Time       `json:"actual_close_date"`
}

type opportunityUpdateRequest struct {
	ContactID         types.Optional[int64]               `json:"contact_id"`
	Title             types.Optional[string]              `json:"title"`
	Description       types.Optional[string]              `json:"description"`
	Value             types.Optional[decimal.Decimal]     `json:"value"`
	Probability       types.Optional[int]                 `json:"probability"`
	Stage             types.Optional[enums.PipelineStage] `json:"stage"`
	ExpectedCloseDate types.Optional[time.Time]           `json:"expected_close_date"`
	ActualCloseDate   types.Optional[time.Time]           `json:"actual_close_date"`
}

// OpportunityCreate opens a pipeline deal owned by the acting user.
func OpportunityCreate(svc opportunities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "opportunities service unavailable"))
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		if actorID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "acting user missing"))
			return
		}

		var payload opportunityCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stage := enums.PipelineStage(strings.TrimSpace(payload.Stage))

		created, err := svc.Create(r.Context(), opportunities.CreateOpportunityInput{
			CompanyID:         payload.CompanyID,
			ContactID:         payload.ContactID,
			UserID:            actorID,
			Title:             payload.Title,
			Description:       payload.Description,
			Value:             payload.Value,
			Probability:       payload.Probability,
			Stage:             stage,
			ExpectedCloseDate: payload.ExpectedCloseDate,
			ActualCloseDate:   payload.ActualCloseDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// OpportunityGet returns one opportunity by id.
func OpportunityGet(svc opportunities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "opportunityID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		opp, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, opp)
	}
}

// OpportunityUpdate applies a partial update, including stage transitions.
func OpportunityUpdate(svc opportunities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "opportunityID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload opportunityUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, opportunities.UpdateOpportunityInput{
			ContactID:         payload.ContactID,
			Title:             payload.Title,
			Description:       payload.Description,
			Value:             payload.Value,
			Probability:       payload.Probability,
			Stage:             payload.Stage,
			ExpectedCloseDate: payload.ExpectedCloseDate,
			ActualCloseDate:   payload.ActualCloseDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// OpportunityList lists the acting user's opportunities.
func OpportunityList(svc opportunities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID := middleware.ActorIDFromContext(r.Context())
		if actorID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "acting user missing"))
			return
		}
		list, err := svc.ListByUser(r.Context(), actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OpportunitiesByCompany lists the opportunities of one company.
func OpportunitiesByCompany(svc opportunities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := validators.PathID(r, "companyID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListByCompany(r.Context(), companyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
