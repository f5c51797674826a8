package controllers

import (
	"net/http"

	"github.com/fleetlinehq/fleetline-backend/api/responses"
	"github.com/fleetlinehq/fleetline-backend/api/validators"
	"github.com/fleetlinehq/fleetline-backend/internal/contacts"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/fleetlinehq/fleetline-backend/pkg/logger"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
)

type contactCreateRequest struct {
	CompanyID int64   `json:"company_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Position  *string `json:"position"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Notes     *string `json:"notes"`
	IsPrimary bool    `json:"is_primary"`
}

type contactUpdateRequest struct {
	Name      types.Optional[string] `json:"name"`
	Position  types.Optional[string] `json:"position"`
	Phone     types.Optional[string] `json:"phone"`
	Email     types.Optional[string] `json:"email"`
	Notes     types.Optional[string] `json:"notes"`
	IsPrimary types.Optional[bool]   `json:"is_primary"`
}

// ContactCreate registers a contact at a company.
func ContactCreate(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contacts service unavailable"))
			return
		}

		var payload contactCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), contacts.CreateContactInput{
			CompanyID: payload.CompanyID,
			Name:      payload.Name,
			Position:  payload.Position,
			Phone:     payload.Phone,
			Email:     payload.Email,
			Notes:     payload.Notes,
			IsPrimary: payload.IsPrimary,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ContactGet returns one contact by id.
func ContactGet(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "contactID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contact, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, contact)
	}
}

// ContactUpdate applies a partial update to a contact.
func ContactUpdate(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathID(r, "contactID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload contactUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, contacts.UpdateContactInput{
			Name:      payload.Name,
			Position:  payload.Position,
			Phone:     payload.Phone,
			Email:     payload.Email,
			Notes:     payload.Notes,
			IsPrimary: payload.IsPrimary,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// ContactsByCompany lists the contacts of one company, primary first.
func ContactsByCompany(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
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
