// Package wirehttp provides HTTP middleware that creates a [wirebox.Registry]
// child scope for each request.
package wirehttp

import (
	"log/slog"
	"net/http"

	"github.com/jmorgan/wirebox"
	"github.com/jmorgan/wirebox/wirecontext"
)

// RequestScopeMiddleware creates a new child registry scope for each request.
//
// The current [*http.Request] is registered with the scope, so request-scoped
// providers can depend on it.
//
// The scope is stored on the request context and can be accessed using
// [wirecontext.FromContext], [wirecontext.Resolve], or [wirecontext.MustResolve].
//
// Available options:
//   - [WithScopeOptions] sets [wirebox.RegistryOption]s to use when creating each request scope.
//   - [WithNewScopeErrorHandler] sets the error handler for when there is an error creating a new scope.
func RequestScopeMiddleware(r *wirebox.Registry, opts ...ScopeMiddlewareOption) func(http.Handler) http.Handler {
	mw := &scopeMiddleware{
		registry:        r,
		newScopeHandler: defaultNewScopeErrorHandler,
	}
	for _, opt := range opts {
		opt.applyScopeMiddleware(mw)
	}

	return func(next http.Handler) http.Handler {
		mw.next = next
		return mw
	}
}

// NewScopeErrorHandler is a function that writes an error response to the
// client. It is called by the scope middleware when there is an error
// creating the request scope.
//
// The default handler logs the error to [slog.Default] and writes a
// 500 Internal Server Error response.
type NewScopeErrorHandler = func(w http.ResponseWriter, r *http.Request, err error)

func defaultNewScopeErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "error creating new HTTP request scope", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

type scopeMiddleware struct {
	registry        *wirebox.Registry
	opts            []wirebox.RegistryOption
	newScopeHandler NewScopeErrorHandler
	next            http.Handler
}

func (m *scopeMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts := make([]wirebox.RegistryOption, 0, len(m.opts)+1)
	opts = append(opts, m.opts...)
	// Register the *http.Request with the new scope
	opts = append(opts, wirebox.WithValue(r))

	scope, err := m.registry.NewScope(opts...)
	if err != nil {
		if m.newScopeHandler != nil {
			m.newScopeHandler(w, r, err)
		}
		return
	}

	ctx := wirecontext.WithResolver(r.Context(), scope)
	m.next.ServeHTTP(w, r.WithContext(ctx))
}
