package chserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openrport/sysdash/server/api"
	errors2 "github.com/openrport/sysdash/server/api/errors"
	"github.com/openrport/sysdash/server/windows"
)

const routeParamWindowID = "window_id"

// handleGetWindows handles GET /windows
func (al *APIListener) handleGetWindows(w http.ResponseWriter, r *http.Request) {
	al.writeJSONResponse(w, http.StatusOK, api.NewSuccessPayload(al.windows.List()))
}

// handlePostDetachedWindow handles POST /windows/detached
func (al *APIListener) handlePostDetachedWindow(w http.ResponseWriter, r *http.Request) {
	var input api.OpenDetachedWindowInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		al.jsonError(w, errors2.NewBadRequest(errors2.ErrCodeInvalidRequest, "Invalid JSON data.", err))
		return
	}

	window, err := al.windows.OpenDetached(r.Context(), input.Component, input.Width, input.Height)
	if err != nil {
		al.jsonError(w, windowError(err))
		return
	}

	al.writeJSONResponse(w, http.StatusCreated, api.NewSuccessPayload(window))
}

// handleDeleteWindow handles DELETE /windows/{window_id}
func (al *APIListener) handleDeleteWindow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[routeParamWindowID]
	if err := al.windows.Close(r.Context(), id); err != nil {
		al.jsonError(w, windowError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handlePostWindowDrag handles POST /windows/{window_id}/drag
func (al *APIListener) handlePostWindowDrag(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[routeParamWindowID]
	if err := al.windows.StartDrag(r.Context(), id); err != nil {
		al.jsonError(w, windowError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func windowError(err error) error {
	var validationErr *windows.ValidationError
	var rejectedErr *windows.RejectedError
	switch {
	case errors.As(err, &validationErr):
		return errors2.NewBadRequest(errors2.ErrCodeInvalidRequest, "", err)
	case errors.Is(err, windows.ErrWindowExists):
		return errors2.NewAPIError(http.StatusConflict, errors2.ErrCodeWindowExists, "", err)
	case errors.Is(err, windows.ErrWindowNotFound):
		return errors2.NewAPIError(http.StatusNotFound, errors2.ErrCodeWindowNotFound, "", err)
	case errors.As(err, &rejectedErr):
		return errors2.NewAPIError(http.StatusBadGateway, errors2.ErrCodeShellRejected, "", err)
	case errors.Is(err, windows.ErrShellNotConnected):
		return errors2.NewAPIError(http.StatusServiceUnavailable, errors2.ErrCodeShellOffline, "", err)
	case errors.Is(err, windows.ErrShellAttached):
		return errors2.NewAPIError(http.StatusServiceUnavailable, errors2.ErrCodeShellAttached, "", err)
	case errors.Is(err, windows.ErrShellTimeout):
		return errors2.NewAPIError(http.StatusGatewayTimeout, errors2.ErrCodeShellTimeout, "", err)
	default:
		return err
	}
}
