package http

import (
	"net/http"

	"github.com/blink-new/listalia/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// Listalia API. It applies JSON content-type enforcement and request
// logging, and mounts the session endpoints publicly and everything
// else behind bearer-token authentication.
//
// Routes:
//
//	POST   /api/auth/login                       → auth.Login
//	POST   /api/auth/signup                      → auth.Signup
//	POST   /api/auth/logout                      → auth.Logout      (token)
//	GET    /api/auth/me                          → auth.Me          (token)
//	PATCH  /api/auth/me                          → auth.UpdateProfile (token)
//	GET    /api/state                            → lists.State      (token)
//	POST   /api/lists                            → lists.CreateList (token)
//	GET    /api/lists/{listID}                   → lists.GetList    (token)
//	PATCH  /api/lists/{listID}                   → lists.UpdateList (token)
//	DELETE /api/lists/{listID}                   → lists.DeleteList (token)
//	POST   /api/folders                          → lists.CreateFolder (token)
//	PATCH  /api/folders/{folderID}               → lists.UpdateFolder (token)
//	DELETE /api/folders/{folderID}               → lists.DeleteFolder (token)
//	POST   /api/lists/{listID}/items             → lists.AddItem    (token)
//	PATCH  /api/lists/{listID}/items/{itemID}    → lists.UpdateItem (token)
//	DELETE /api/lists/{listID}/items/{itemID}    → lists.DeleteItem (token)
//	PUT    /api/lists/{listID}/items/order       → lists.ReorderItems (token)
//	GET    /api/preferences                      → prefs.Get        (token)
//	PATCH  /api/preferences                      → prefs.Update     (token)
//	POST   /api/preferences/reset                → prefs.Reset      (token)
func NewRouter(
	authHandler *AuthHandler,
	listsHandler *ListsHandler,
	prefsHandler *PreferencesHandler,
	tokens middleware.TokenValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/signup", authHandler.Signup)

		// Protected group: requires the session token issued at login
		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(tokens))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)
			r.Patch("/auth/me", authHandler.UpdateProfile)

			r.Get("/state", listsHandler.State)
			r.Post("/lists", listsHandler.CreateList)
			r.Get("/lists/{listID}", listsHandler.GetList)
			r.Patch("/lists/{listID}", listsHandler.UpdateList)
			r.Delete("/lists/{listID}", listsHandler.DeleteList)

			r.Post("/folders", listsHandler.CreateFolder)
			r.Patch("/folders/{folderID}", listsHandler.UpdateFolder)
			r.Delete("/folders/{folderID}", listsHandler.DeleteFolder)

			r.Post("/lists/{listID}/items", listsHandler.AddItem)
			r.Put("/lists/{listID}/items/order", listsHandler.ReorderItems)
			r.Patch("/lists/{listID}/items/{itemID}", listsHandler.UpdateItem)
			r.Delete("/lists/{listID}/items/{itemID}", listsHandler.DeleteItem)

			r.Get("/preferences", prefsHandler.Get)
			r.Patch("/preferences", prefsHandler.Update)
			r.Post("/preferences/reset", prefsHandler.Reset)
		})
	})

	return r
}
