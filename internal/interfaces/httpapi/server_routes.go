package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/weeks/current", handler.GetCurrentWeek)
}

// registerScoringRoutes leaves the trigger open when no job token is
// configured, which is the local development mode.
func registerScoringRoutes(mux *http.ServeMux, handler *Handler, jobToken string) {
	score := http.Handler(http.HandlerFunc(handler.ScoreWeek))
	if jobToken != "" {
		score = RequireJobToken(jobToken, score)
	}
	mux.Handle("POST /score-week", score)
}
