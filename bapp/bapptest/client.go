package bapptest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/advdv/bapi"
	"github.com/advdv/bapi/bapp"
	"github.com/carlmjohnson/requests"
	"github.com/tidwall/gjson"
)

// Response is a response of the app under test.
type Response struct {
	Header http.Header
	Body   []byte
}

// Get reads a field of the JSON body using gjson path syntax, e.g. "data.username".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// Code returns the business code of the envelope.
func (r *Response) Code() int64 { return r.Get("code").Int() }

// Message returns the message of the envelope.
func (r *Response) Message() string { return r.Get("message").String() }

// TraceID returns the trace identifier echoed by the app.
func (r *Response) TraceID() string { return r.Header.Get(bapp.TraceHeader) }

// Client calls an app started on localhost. Every response must have transport status 200.
type Client struct {
	base string
}

// NewClient creates a client for the app listening on 'port'.
func NewClient(port int) *Client {
	return &Client{base: fmt.Sprintf("http://localhost:%d", port)}
}

// Do sends a request with an optional JSON body. Extra headers are given as key/value pairs.
func (c *Client) Do(ctx context.Context, method, path string, body any, header ...string) (*Response, error) {
	resp := &Response{Header: http.Header{}}
	var buf bytes.Buffer

	b := requests.URL(c.base + path).
		Method(method).
		CopyHeaders(resp.Header).
		ToBytesBuffer(&buf)
	if body != nil {
		b = b.BodyJSON(body)
	}
	for i := 0; i+1 < len(header); i += 2 {
		b = b.Header(header[i], header[i+1])
	}

	if err := b.Fetch(ctx); err != nil {
		return nil, err
	}

	resp.Body = buf.Bytes()
	return resp, nil
}

// CallHandler invokes a [bapi.HandlerFunc] behind the error mapping of the app and returns the
// recorded response.
func CallHandler(handler bapi.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	bapi.ToStd(bapi.Wrap(handler, bapp.MapErrors()), -1, bapi.NewStdLogger(nil)).ServeHTTP(rec, req)
	return rec
}
