package routes

import (
	"context"
	"net/http"

	"github.com/advdv/bapi"
)

// RegisterHealth registers the health check for GET and POST.
func RegisterHealth(r bapi.Router) {
	r.HandleFunc("GET /health", health, "health")
	r.HandleFunc("POST /health", health)
}

func health(_ context.Context, w bapi.ResponseWriter, _ *http.Request) error {
	return bapi.WriteEnvelope(w, bapi.Empty().WithMessage("ok"))
}
