package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	appmw "github.com/prasetyowira/barqr/api/middleware"
	"github.com/prasetyowira/barqr/constant"
	appLogger "github.com/prasetyowira/barqr/infrastructure/logger"
)

// Router represents the application router
type Router struct {
	handler  *Handler
	router   *chi.Mux
	username string
	password string
}

// NewRouter creates a new router
func NewRouter(handler *Handler, username, password string) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appmw.RequestLogger())

	return &Router{
		handler:  handler,
		router:   r,
		username: username,
		password: password,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	creds := map[string]string{
		r.username: r.password,
	}
	// Mutating routes with Basic Auth
	r.router.With(
		middleware.BasicAuth("barqr", creds),
	).Post(constant.RouteGenerateCode, r.handler.GenerateCode)

	r.router.With(
		middleware.BasicAuth("barqr", creds),
	).Post(constant.RouteBatchCodes, r.handler.BatchCodes)

	// Public routes
	r.router.Post(constant.RoutePreviewCode, r.handler.PreviewCode)
	r.router.Post(constant.RouteNormalizeEAN13, r.handler.NormalizeEAN13)
	r.router.Get(constant.RouteListCodes, r.handler.ListCodes)
	r.router.Get(constant.RouteCodeByID, r.handler.GetCode)
	r.router.Get(constant.RouteCodeImage, r.handler.GetCodeImage)

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, r *http.Request) {
		appLogger.CtxDebug(r.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
