package v1

import (
	"net/http"
	"os"

	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/middleware"
	"github.com/bookbazaar/bookbazaar/store"
	"github.com/bookbazaar/bookbazaar/worker"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	store     *store.Store
	coverPool worker.WorkPool
}

func Server(router *mux.Router, store *store.Store, coverPool worker.WorkPool) {
	handler := &Handler{
		store:     store,
		coverPool: coverPool,
	}

	sr := router.PathPrefix("/api").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)
	sr.Use(middleware.Compress)

	sSetting, err := store.GetOrUpsertSystemSecuritySetting()
	if err != nil {
		log.Logger.Error("Error getting security setting", zap.Error(err))
		os.Exit(1)
	}
	jwtSecret := sSetting.JWTSecret
	sr.Use(NewAuthInterceptor(store, jwtSecret).AuthenticationInterceptor)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/register", handler.register).Methods(http.MethodPost)
	sr.HandleFunc("/login", handler.login).Methods(http.MethodPost)
	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.uploadBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/{uid}/cover", handler.getCover).Methods(http.MethodGet)
	sr.HandleFunc("/books/{uid}/approve", handler.approveBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/{uid}", handler.rejectBook).Methods(http.MethodDelete)
	sr.HandleFunc("/pending", handler.listPending).Methods(http.MethodGet)
}
