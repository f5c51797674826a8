package controllers

import (
	"net/http"

	"github.com/fleetlinehq/fleetline-backend/api/middleware"
	"github.com/fleetlinehq/fleetline-backend/api/responses"
	"github.com/fleetlinehq/fleetline-backend/internal/dashboard"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/fleetlinehq/fleetline-backend/pkg/logger"
)

// DashboardSnapshot returns the acting user's role-scoped pipeline snapshot.
func DashboardSnapshot(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		role := middleware.ActorRoleFromContext(r.Context())
		if actorID == 0 || role == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "acting user missing"))
			return
		}

		snapshot, err := svc.Snapshot(r.Context(), actorID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
