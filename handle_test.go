package bapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/bapi"
	"github.com/stretchr/testify/require"
)

type userKey struct{}

func handleHello(ctx context.Context, w bapi.ResponseWriter, r *http.Request) error {
	w.Header().Set("Is-Bar", "rab")
	w.WriteHeader(http.StatusCreated)

	fmt.Fprintf(w, `hello %s, at %s`, ctx.Value(userKey{}), r.URL.Path)

	if r.URL.Path == "/trigger-error" {
		return errors.New("triggered error")
	}

	return nil
}

func withUser(next bapi.BareHandler) bapi.BareHandler {
	return bapi.BareHandlerFunc(func(w bapi.ResponseWriter, r *http.Request) error {
		return next.ServeBareBHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, "foo")))
	})
}

func TestHandleBasic(t *testing.T) {
	logs := bapi.NewTestLogger(t)
	shdlr := bapi.ToStd(bapi.Wrap(bapi.HandlerFunc(handleHello), withUser), -1, logs)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bar", nil)
	shdlr.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, `rab`, rec.Header().Get("Is-Bar"))
	require.Equal(t, `hello foo, at /bar`, rec.Body.String())
}

func TestHandleUnhandledErrorRendersEnvelope(t *testing.T) {
	logs := bapi.NewTestLogger(t)
	shdlr := bapi.ToStd(bapi.Wrap(bapi.HandlerFunc(handleHello), withUser), -1, logs)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/trigger-error", nil)
	shdlr.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Is-Bar"))
	require.JSONEq(t, `{"code":500,"message":"Internal Server Error","data":null}`, rec.Body.String())
	require.Equal(t, int64(1), logs.NumLogUnhandledServeError)
}

func TestWrapOrder(t *testing.T) {
	var res string
	inner := bapi.HandlerFunc(func(context.Context, bapi.ResponseWriter, *http.Request) error {
		res += "inner"
		return errors.New("inner error")
	})

	mw := func(n string) bapi.Middleware {
		return func(next bapi.BareHandler) bapi.BareHandler {
			return bapi.BareHandlerFunc(func(w bapi.ResponseWriter, r *http.Request) error {
				res += n + "("
				err := next.ServeBareBHTTP(w, r)
				res += ")" + n
				return fmt.Errorf("%s(%w)", n, err)
			})
		}
	}

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)
	w := bapi.NewResponseWriter(rec, -1)
	defer w.Free()

	err := bapi.Wrap(inner, mw("1"), mw("2"), mw("3")).ServeBareBHTTP(w, req)
	require.Equal(t, "1(2(3(inner)3)2)1", res)
	require.EqualError(t, err, "1(2(3(inner error)))")
}
