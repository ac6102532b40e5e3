package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/middleware"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	"github.com/RayuduBharani/meetocure-hs/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	defaultPage  = 1
	defaultLimit = 50
)

// hospitalScope resolves the hospital a request reads from. An explicit
// hospitalName must name the session's hospital; without one the session's
// hospital is used. It writes the error response itself and reports false.
func hospitalScope(w http.ResponseWriter, r *http.Request) (string, bool) {
	requested := strings.TrimSpace(r.URL.Query().Get("hospitalName"))
	session, hasSession := middleware.GetHospitalNameFromContext(r.Context())

	if requested == "" {
		if !hasSession || session == "" {
			response.BadRequest(w, "hospitalName is required")
			return "", false
		}
		return session, true
	}

	if !hasSession || session == "" {
		return requested, true
	}
	if !entity.SameHospital(requested, session) {
		response.Forbidden(w, "Access to another hospital's data is not allowed")
		return "", false
	}
	return session, true
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// pathID parses a uuid path variable, answering 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
