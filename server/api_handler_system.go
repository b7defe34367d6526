package chserver

import (
	"net/http"
	"runtime"

	"github.com/openrport/sysdash/server/api"
	errors2 "github.com/openrport/sysdash/server/api/errors"
	chshare "github.com/openrport/sysdash/share"
)

// handleGetStatus handles GET /status
func (al *APIListener) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	al.writeJSONResponse(w, http.StatusOK, api.NewSuccessPayload(api.StatusPayload{
		Version:        chshare.BuildVersion,
		Platform:       runtime.GOOS,
		ShellConnected: al.shell.Connected(),
	}))
}

// handleGetSystemInfo handles GET /system-info
func (al *APIListener) handleGetSystemInfo(w http.ResponseWriter, r *http.Request) {
	snapshot, err := al.telemetry.CollectSnapshot(r.Context())
	if err != nil {
		al.jsonError(w, errors2.NewAPIError(http.StatusInternalServerError, errors2.ErrCodeTelemetry, "Failed to collect system info.", err))
		return
	}

	al.writeJSONResponse(w, http.StatusOK, api.NewSuccessPayload(snapshot))
}

// handleGetTopProcesses handles GET /processes/top
func (al *APIListener) handleGetTopProcesses(w http.ResponseWriter, r *http.Request) {
	procs, err := al.telemetry.ListTopProcesses(r.Context(), al.config.Telemetry.TopProcessesLimit)
	if err != nil {
		al.jsonError(w, errors2.NewAPIError(http.StatusInternalServerError, errors2.ErrCodeTelemetry, "Failed to list processes.", err))
		return
	}

	al.writeJSONResponse(w, http.StatusOK, api.NewSuccessPayload(procs))
}
