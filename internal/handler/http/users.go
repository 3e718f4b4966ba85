package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

const msgRecordsRetrieved = "Records retrieved successfully."

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if users == nil {
		users = []models.UserListItem{}
	}

	utils.WriteJSON(w, models.UsersResponse{
		Message:   msgRecordsRetrieved,
		Results:   users,
		UserCount: len(users),
	}, http.StatusOK)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{
		Message: fmt.Sprintf("Welcome %s, your id is %s", identity.Name, identity.UserID),
	}, http.StatusOK)
}
