package bapi_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/bapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveBlogPost(ctx context.Context, w bapi.ResponseWriter, r *http.Request) error {
	fmt.Fprintf(w, `hello %v, %s`, ctx.Value(userKey{}), r.PathValue("slug"))
	return nil
}

// renderCodes turns any error into the status code it carries, so tests can observe what the mux produced.
func renderCodes(next bapi.BareHandler) bapi.BareHandler {
	return bapi.BareHandlerFunc(func(w bapi.ResponseWriter, r *http.Request) error {
		err := next.ServeBareBHTTP(w, r)
		if herr, ok := bapi.AsError(err); ok {
			w.Reset()
			return bapi.WriteEnvelope(w, bapi.Envelope[any]{Code: int(herr.Code()), Message: herr.Detail()})
		}
		return err
	})
}

func TestServeMux(t *testing.T) {
	mux := bapi.NewServeMux()
	mux.Use(withUser)
	mux.HandleFunc("GET /blog/{slug}", serveBlogPost, "blog_post")

	loc, err := mux.Reverse("blog_post", "foo")
	require.NoError(t, err)
	require.Equal(t, `/blog/foo`, loc)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/blog/111", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `hello foo, 111`, rec.Body.String())
}

func TestServeMuxGroups(t *testing.T) {
	mux := bapi.NewServeMux()
	api := mux.Group("/api/v1/")
	api.HandleFunc("GET /health", func(_ context.Context, w bapi.ResponseWriter, r *http.Request) error {
		fmt.Fprint(w, r.URL.Path)
		return nil
	}, "health")
	api.Group("examples").HandleFunc("DELETE /users/{user_id}", func(_ context.Context, w bapi.ResponseWriter, r *http.Request) error {
		fmt.Fprint(w, "deleted ", r.PathValue("user_id"))
		return nil
	}, "delete-user")

	assert.Equal(t, "/api/v1", api.Prefix())
	assert.Equal(t, []bapi.Route{
		{Pattern: "GET /api/v1/health", Name: "health"},
		{Pattern: "DELETE /api/v1/examples/users/{user_id}", Name: "delete-user"},
	}, mux.Routes())

	loc, err := mux.Reverse("delete-user", "5")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/examples/users/5", loc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, "/api/v1/health", rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/examples/users/5", nil))
	assert.Equal(t, "deleted 5", rec.Body.String())
}

func TestServeMuxUnmatched(t *testing.T) {
	var seen []string
	mux := bapi.NewServeMux()
	mux.Use(renderCodes, func(next bapi.BareHandler) bapi.BareHandler {
		return bapi.BareHandlerFunc(func(w bapi.ResponseWriter, r *http.Request) error {
			seen = append(seen, r.Method+" "+r.URL.Path)
			return next.ServeBareBHTTP(w, r)
		})
	})
	mux.HandleFunc("GET /health", func(_ context.Context, w bapi.ResponseWriter, _ *http.Request) error {
		return bapi.WriteEnvelope(w, bapi.Empty().WithMessage("ok"))
	})
	mux.HandleFunc("GET /docs/", func(_ context.Context, w bapi.ResponseWriter, _ *http.Request) error {
		return bapi.WriteEnvelope(w, bapi.Empty().WithMessage("docs"))
	})

	for _, tt := range []struct {
		method, path string
		want         string
	}{
		{http.MethodGet, "/nope", `{"code":404,"message":"Not Found","data":null}`},
		{http.MethodPut, "/health", `{"code":405,"message":"Method Not Allowed","data":null}`},
		{http.MethodGet, "/health", `{"code":200,"message":"ok","data":null}`},
		{http.MethodGet, "//health", `{"code":404,"message":"Not Found","data":null}`},
		{http.MethodGet, "/docs/../health", `{"code":404,"message":"Not Found","data":null}`},
		{http.MethodGet, "/docs", `{"code":404,"message":"Not Found","data":null}`},
	} {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("Location"))
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}

	assert.Equal(t, []string{
		"GET /nope", "PUT /health", "GET /health",
		"GET //health", "GET /docs/../health", "GET /docs",
	}, seen, "unmatched requests pass the middleware")
}

func TestHandleStd(t *testing.T) {
	mux := bapi.NewServeMux()
	mux.Use(withUser)
	mux.HandleStd("GET /metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "val:%v", r.Context().Value(userKey{}))
	}), "metrics")

	loc, err := mux.Reverse("metrics")
	require.NoError(t, err)
	require.Equal(t, "/metrics", loc)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	require.Equal(t, "val:foo", rec.Body.String())
}

func TestUseAfterHandle(t *testing.T) {
	mux := bapi.NewServeMux()
	mux.HandleFunc("GET /blog/{slug}", serveBlogPost, "blog_post")
	require.PanicsWithValue(t, "bapi: cannot call Use() after calling Handle", func() {
		mux.Use(withUser)
	})
}
