package routes

import (
	"context"
	"net/http"

	"github.com/advdv/bapi"
	"github.com/advdv/bapi/internal/schema"
)

// RegisterEvalImage registers the image evaluation endpoints. Scoring is not implemented, both answer
// with an empty success envelope.
func RegisterEvalImage(r bapi.Router) {
	r.HandleFunc("POST /eval_single_image", evalSingleImage, "eval-single-image")
	r.HandleFunc("POST /eval_batch_image", evalBatchImage, "eval-batch-image")
}

func evalSingleImage(_ context.Context, w bapi.ResponseWriter, r *http.Request) error {
	var in schema.EvalImageRequest
	if err := bapi.Bind(r, &in); err != nil {
		return err
	}

	return bapi.WriteEnvelope(w, bapi.Empty())
}

func evalBatchImage(_ context.Context, w bapi.ResponseWriter, _ *http.Request) error {
	return bapi.WriteEnvelope(w, bapi.Empty())
}
