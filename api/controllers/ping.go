package controllers

import (
	"net/http"
	"strconv"

	"github.com/fleetlinehq/fleetline-backend/api/middleware"
	"github.com/fleetlinehq/fleetline-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if actorID := middleware.ActorIDFromContext(r.Context()); actorID != 0 {
			payload["actor_id"] = strconv.FormatInt(actorID, 10)
		}
		responses.WriteSuccess(w, payload)
	}
}
