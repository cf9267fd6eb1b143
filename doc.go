// Package bapi provides buffered HTTP handling with error-returning handlers and a uniform JSON envelope.
//
// # Overview
//
// Every response of a bapi service is an [Envelope] of the shape
//
//	{"code": 200, "message": "success", "data": ...}
//
// sent with transport status 200. Failures are signalled through the business code in the envelope,
// so clients can parse every response the same way.
//
// A minimal example:
//
//	mux := bapi.NewServeMux()
//	mux.HandleFunc("GET /items/{id}", func(ctx context.Context, w bapi.ResponseWriter, r *http.Request) error {
//	    id, err := bapi.PathInt(r, "id", 1)
//	    if err != nil {
//	        return err
//	    }
//	    if id > 100 {
//	        return bapi.NotFound(fmt.Sprintf("item %d not found", id))
//	    }
//	    return bapi.Render(w, Item{ID: id}, "")
//	}, "get-item")
//
// # Handler Signature
//
// Handlers receive the request context as first argument, write to a [ResponseWriter] that buffers
// output and return an error instead of rendering failures themselves:
//
//	func(ctx context.Context, w bapi.ResponseWriter, r *http.Request) error
//
// # Buffered Response Writer
//
// All writes are held in memory until the handler returns. [ResponseWriter.Reset] discards what was
// written so middleware can replace a half-written response with an error envelope.
//
// # Errors
//
// Three kinds of errors are understood by the error mapping of the bapp package:
//
//   - [*APIError]: business failures such as [BadRequest], [NotFound], [Unauthorized] and [Forbidden]
//   - [*ValidationError]: rejected request input, produced by [Bind], [BindSlice] and [PathInt]
//   - [*Error]: HTTP faults; the mux returns them for unmatched routes (404) and methods (405)
//
// Anything else is an unclassified fault. When no middleware handles an error, [ToStd] still answers
// with a 500 envelope.
//
// # Middleware
//
// The [Middleware] type operates on [BareHandler]:
//
//	func timing(next bapi.BareHandler) bapi.BareHandler {
//	    return bapi.BareHandlerFunc(func(w bapi.ResponseWriter, r *http.Request) error {
//	        start := time.Now()
//	        err := next.ServeBareBHTTP(w, r)
//	        log.Printf("%s %s took %v", r.Method, r.URL.Path, time.Since(start))
//	        return err
//	    })
//	}
//
// Middleware registered with [ServeMux.Use] also runs for requests that match no route.
//
// # Groups and Named Routes
//
// [ServeMux.Group] registers routes below a path prefix. Both [ServeMux] and [Group] implement
// [Router], so features can register themselves without knowing where they are mounted:
//
//	api := mux.Group("/api/v1")
//	api.HandleFunc("GET /users/{id}", getUser, "get-user")
//
//	url, err := mux.Reverse("get-user", "123") // "/api/v1/users/123"
//
// [ServeMux.Routes] lists everything that was registered.
package bapi
