package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/weeks/{week}/teams/{team}/roster", handler.GetTeamRoster)
	mux.HandleFunc("GET /v1/weeks/{week}/free-agents", handler.ListFreeAgents)
	mux.HandleFunc("POST /v1/weeks/{week}/refresh", handler.RefreshWeek)
}

// View routes shape data the client already holds and never call upstream.
func registerViewRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/view/rows", handler.ShapeRows)
	mux.HandleFunc("GET /v1/view/heatmap", handler.GetHeatmapLegend)
}
