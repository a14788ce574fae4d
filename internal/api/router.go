package api

import (
	"dept-dashboard/internal/api/handler"
	"dept-dashboard/internal/dashboard"
	"dept-dashboard/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires the dashboard service into a fully routed server
func NewRouter(svc *dashboard.Service) *router.Router {
	handler.Init(svc)

	r := router.New()
	RegisterRoutes(r)
	r.Static("/static/", svc.Static.Dir)
	r.Handle("/swagger/", httpSwagger.Handler())
	return r
}

func RegisterRoutes(r *router.Router) {
	r.GET("/", handler.Index)
	r.GET("/healthz", handler.Health)
	r.GET("/api/v1/renders", handler.ListRenders)
	r.GET("/api/v1/renders/*/errors", handler.GetRenderErrors)
}
