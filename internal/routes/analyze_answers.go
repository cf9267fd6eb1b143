package routes

import (
	"context"
	"net/http"

	"github.com/advdv/bapi"
	"github.com/advdv/bapi/bapp"
	"github.com/advdv/bapi/internal/schema"
	"go.uber.org/zap"
)

// RegisterAnalyzeAnswers registers the answer analysis endpoint. Analysis is not implemented, it answers
// with an empty success envelope.
func RegisterAnalyzeAnswers(r bapi.Router) {
	r.HandleFunc("POST /analyze_answers", analyzeAnswers, "analyze-answers")
}

func analyzeAnswers(ctx context.Context, w bapi.ResponseWriter, r *http.Request) error {
	items, err := bapi.BindSlice[schema.AnalyzeAnswersItem](r)
	if err != nil {
		return err
	}

	bapp.Log(ctx).Debug("analyzing answers", zap.Int("items", len(items)))
	return bapi.WriteEnvelope(w, bapi.Empty())
}
