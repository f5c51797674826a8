package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/fleetlinehq/fleetline-backend/api/middleware"
	"github.com/fleetlinehq/fleetline-backend/api/responses"
	"github.com/fleetlinehq/fleetline-backend/api/validators"
	"github.com/fleetlinehq/fleetline-backend/internal/visits"
	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/fleetlinehq/fleetline-backend/pkg/logger"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
)

type visitCreateRequest struct {
	CompanyID       int64      `json:"company_id" validate:"required"`
	ContactID       *int64     `json:"contact_id"`
	VisitType       string     `json:"visit_type" validate:"required"`
	VisitDate       time.Time  `json:"visit_date" validate:"required"`
	Summary         string     `json:"summary" validate:"required"`
	Objectives      *string    `json:"objectives"`
	Outcomes        *string    `json:"outcomes"`
	NextSteps       *string    `json:"next_steps"`
	Location        *string    `json:"location"`
	DurationMinutes *int       `json:"duration_minutes"`
	FollowUpDate    *time.Time `json:"follow_up_date"`
}

type visitUpdateRequest struct {
	ContactID       types.Optional[int64]           `json:"contact_id"`
	VisitType       types.Optional[enums.VisitType] `json:"visit_type"`
	VisitDate       types.Optional[time.Time]       `json:"visit_date"`
	Summary         types.Optional[string]          `json:"summary"`
	Objectives      types.Optional[string]          `json:"objectives"`
	Outcomes        types.Optional[string]          `json:"outcomes"`
	NextSteps       types.Optional[string]          `json:"next_steps"`
	Location        types.Optional[string]          `json:"location"`
	DurationMinutes types.Optional[int]             `json:"duration_minutes"`
	FollowUpDate    types.Optional[time.Time]       `json:"follow_up_date"`
}

// VisitCreate logs a customer visit for the acting user.
func VisitCreate(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "visits service unavailable"))
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		if actorID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "acting user missing"))
			return
		}

		var payload visitCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		visitType, err := enums.ParseVisitType(strings.TrimSpace(payload.VisitType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid visit_type"))
			return
		}

		created, err := svc.Create(r.Context(), visits.CreateVisitInput{
			CompanyID:       payload.CompanyID,
			ContactID:       payload.ContactID,
			UserID:          actorID,
			VisitType:       visitType,
			VisitDate:       payload.VisitDate,
			Summary:         payload.Summary,
			Objectives:      payload.Objectives,
			Outcomes:        payload.Outcomes,
			NextSteps:       payload.NextSteps,
			Location:        payload.Location,
			DurationMinutes: payload.DurationMinutes,
			FollowUpDate:    payload.FollowUpDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// VisitGet returns one visit by id.
func VisitGet(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "visitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		visit, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, visit)
	}
}

// VisitUpdate applies a partial update to a visit.
func VisitUpdate(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "visitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload visitUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, visits.UpdateVisitInput{
			ContactID:       payload.ContactID,
			VisitType:       payload.VisitType,
			VisitDate:       payload.VisitDate,
			Summary:         payload.Summary,
			Objectives:      payload.Objectives,
			Outcomes:        payload.Outcomes,
			NextSteps:       payload.NextSteps,
			Location:        payload.Location,
			DurationMinutes: payload.DurationMinutes,
			FollowUpDate:    payload.FollowUpDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// VisitList lists the acting user's visits, most recent first.
func VisitList(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
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

// VisitsByCompany lists the visits of one company, most recent first.
func VisitsByCompany(svc visits.Service, logg *logger.Logger) http.HandlerFunc {
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
