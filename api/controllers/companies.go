package controllers

import (
	"net/http"

	"github.com/fleetlinehq/fleetline-backend/api/middleware"
	"github.com/fleetlinehq/fleetline-backend/api/responses"
	"github.com/fleetlinehq/fleetline-backend/api/validators"
	"github.com/fleetlinehq/fleetline-backend/internal/companies"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/fleetlinehq/fleetline-backend/pkg/logger"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type companyCreateRequest struct {
	Name          string           `json:"name" validate:"required"`
	Industry      *string          `json:"industry"`
	Address       *string          `json:"address"`
	Phone         *string          `json:"phone"`
	Email         *string          `json:"email"`
	Website       *string          `json:"website"`
	FleetSize     *int             `json:"fleet_size"`
	AnnualRevenue *decimal.Decimal `json:"annual_revenue"`
	Notes         *string          `json:"notes"`
	AssignedBDM   int64            `json:"assigned_bdm" validate:"required"`
}

type companyUpdateRequest struct {
	Name          types.Optional[string]          `json:"name"`
	Industry      types.Optional[string]          `json:"industry"`
	Address       types.Optional[string]          `json:"address"`
	Phone         types.Optional[string]          `json:"phone"`
	Email         types.Optional[string]          `json:"email"`
	Website       types.Optional[string]          `json:"website"`
	FleetSize     types.Optional[int]             `json:"fleet_size"`
	AnnualRevenue types.Optional[decimal.Decimal] `json:"annual_revenue"`
	Notes         types.Optional[string]          `json:"notes"`
	AssignedBDM   types.Optional[int64]           `json:"assigned_bdm"`
}

// CompanyCreate registers a company account. The acting user is recorded as
// the creator.
func CompanyCreate(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "companies service unavailable"))
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		if actorID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "acting user missing"))
			return
		}

		var payload companyCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), companies.CreateCompanyInput{
			Name:          payload.Name,
			Industry:      payload.Industry,
			Address:       payload.Address,
			Phone:         payload.Phone,
			Email:         payload.Email,
			Website:       payload.Website,
			FleetSize:     payload.FleetSize,
			AnnualRevenue: payload.AnnualRevenue,
			Notes:         payload.Notes,
			CreatedBy:     actorID,
			AssignedBDM:   payload.AssignedBDM,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// CompanyGet returns one company by id.
func CompanyGet(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "companyID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		company, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, company)
	}
}

// CompanyUpdate applies a partial update to a company.
func CompanyUpdate(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "companyID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload companyUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, companies.UpdateCompanyInput{
			Name:          payload.Name,
			Industry:      payload.Industry,
			Address:       payload.Address,
			Phone:         payload.Phone,
			Email:         payload.Email,
			Website:       payload.Website,
			FleetSize:     payload.FleetSize,
			AnnualRevenue: payload.AnnualRevenue,
			Notes:         payload.Notes,
			AssignedBDM:   payload.AssignedBDM,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// CompanyList returns a cursor page of companies.
func CompanyList(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.QueryLimit(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.List(r.Context(), validators.QueryCursor(r), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
