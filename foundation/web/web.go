package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler is the signature every application handler implements. Returning
// an error means the handler already responded (or failed to); the error is
// only logged here.
type Handler func(c *Context) error

// Middleware is a function designed to run some code before and/or after
// another Handler.
type Middleware func(Handler) Handler

// App is the entrypoint into our application. It wraps a gin engine so the
// router can still reach raw gin handlers like the media file server
// while application handlers use *web.Context.
type App struct {
	*gin.Engine
}

func NewApp() *App {
	return &App{Engine: gin.Default()}
}

// wrapMiddleware creates a new handler by wrapping middleware around a final
// handler. The middlewares' Handlers will be executed by requests in the
// order they are provided.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h := mw[i]
		if h != nil {
			handler = h(handler)
		}
	}
	return handler
}

func (a *App) handle(method, path string, handler Handler, mw ...Middleware) {
	h := wrapMiddleware(mw, handler)

	a.Engine.Handle(method, path, func(c *gin.Context) {
		ctx := NewContext(c)
		if err := h(ctx); err != nil {
			log.Println("handler error:", method, path, err)
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodDelete, path, handler, mw...)
}
