// Package routes implements the demo endpoints of the service.
package routes

import (
	"github.com/advdv/bapi"
	"github.com/advdv/bapi/bapp"
)

// Register registers every feature on 'r'. Demo routes that only serve development are included when
// 'dev' is set.
func Register(r bapi.Router, dev bool) {
	RegisterHealth(r)
	RegisterExamples(r.Group("/examples"), dev)
	RegisterEvalImage(r)
	RegisterAnalyzeAnswers(r)
}

// Mount registers every feature below the API prefix of the environment. It is the routing function of
// the app.
func Mount(m *bapp.Mux, env bapp.Environment) {
	s := env.Base()
	Register(m.Group(s.APIV1Str), s.IsDev())
}
