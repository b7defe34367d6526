package chserver

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jpillora/requestlog"
	"github.com/rs/cors"

	"github.com/openrport/sysdash/server/api/middleware"
)

const AllRoutesPrefix = "/api/v1"

func (al *APIListener) initRouter() {
	r := mux.NewRouter()
	api := r.PathPrefix(AllRoutesPrefix).Subrouter()
	api.Use(middleware.MaxBytes(al.config.API.MaxRequestBytes))

	api.HandleFunc("/status", al.handleGetStatus).Methods(http.MethodGet)
	api.HandleFunc("/system-info", al.handleGetSystemInfo).Methods(http.MethodGet)
	api.HandleFunc("/processes/top", al.handleGetTopProcesses).Methods(http.MethodGet)

	api.HandleFunc("/windows", al.handleGetWindows).Methods(http.MethodGet)
	api.HandleFunc("/windows/detached", al.handlePostDetachedWindow).Methods(http.MethodPost)
	api.HandleFunc("/windows/{window_id}", al.handleDeleteWindow).Methods(http.MethodDelete)
	api.HandleFunc("/windows/{window_id}/drag", al.handlePostWindowDrag).Methods(http.MethodPost)

	// web sockets
	api.HandleFunc("/ws/shell", al.handleShellWS).Methods(http.MethodGet)

	api.NotFoundHandler = http.HandlerFunc(al.handleNotFound)

	docRoot := al.config.API.DocRoot
	if docRoot != "" {
		// unknown paths serve the dashboard index so client side routes survive a reload
		r.PathPrefix("/").Handler(middleware.Rewrite404(http.FileServer(http.Dir(docRoot)), "/", AllRoutesPrefix+"/"))
	}

	if al.requestLogOptions != nil {
		r.Use(func(next http.Handler) http.Handler { return requestlog.WrapWith(next, *al.requestLogOptions) })
	}

	r.Use(handlers.CompressHandler)
	r.Use(handlers.RecoveryHandler(
		handlers.PrintRecoveryStack(true),
		handlers.RecoveryLogger(middleware.NewRecoveryLogger(al.Logger)),
	))

	// outside of mux so preflight requests reach it for any route
	al.router = cors.New(cors.Options{
		AllowedOrigins: al.config.API.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

func (al *APIListener) handleNotFound(w http.ResponseWriter, r *http.Request) {
	al.jsonErrorResponseWithTitle(w, http.StatusNotFound, "Not found")
}
