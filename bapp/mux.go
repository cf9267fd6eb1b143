package bapp

import (
	"net/http"

	"github.com/advdv/bapi"
	"go.uber.org/zap"
)

// Mux is an alias for bapi.ServeMux.
type Mux = bapi.ServeMux

// NewMux creates a Mux that buffers up to BODY_LIMIT bytes per response and reports to the app logger.
func NewMux(env Environment, logger *zap.Logger) *Mux {
	return bapi.NewServeMuxWith(
		env.Base().BodyLimit,
		newZapBapiLogger(logger),
		http.NewServeMux(),
		bapi.NewReverser(),
	)
}
