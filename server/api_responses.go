package chserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openrport/sysdash/server/api"
	errors2 "github.com/openrport/sysdash/server/api/errors"
	"github.com/openrport/sysdash/share/logger"
)

func (al *APIListener) writeErrorPayloadLog(errPayload api.ErrorPayload) {
	if al.Level == logger.LogLevelDebug {
		al.Debugf("payload: %+v", errPayload)
	}
}

func (al *APIListener) writeJSONResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	b, err := json.Marshal(response)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write(b); err != nil {
		al.Errorf("error writing response: %s", err)
	}
}

func (al *APIListener) jsonError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	var errPayload api.ErrorPayload
	var apiErr errors2.APIError
	if errors.As(err, &apiErr) {
		statusCode = apiErr.HTTPStatus
		errPayload = api.NewAPIErrorPayload(apiErr)
	} else {
		errPayload = api.NewErrorPayload(err)
	}

	if statusCode >= http.StatusInternalServerError {
		al.Errorf("%v", err)
	}
	al.writeErrorPayloadLog(errPayload)
	al.writeJSONResponse(w, statusCode, errPayload)
}

func (al *APIListener) jsonErrorResponseWithTitle(w http.ResponseWriter, statusCode int, title string) {
	errPayload := api.NewErrorPayloadWithCode("", title, "")
	al.writeErrorPayloadLog(errPayload)
	al.writeJSONResponse(w, statusCode, errPayload)
}
