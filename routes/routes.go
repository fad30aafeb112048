package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/casting-agency/app"
	"github.com/upb/casting-agency/handlers"
	"github.com/upb/casting-agency/middleware"
	"github.com/upb/casting-agency/utils"
)

// Permissions granted through the access token's permissions claim
const (
	PermGetMovies    = "get:movies"
	PermPostMovies   = "post:movies"
	PermPatchMovies  = "patch:movies"
	PermDeleteMovies = "delete:movies"

	PermGetActors    = "get:actors"
	PermPostActors   = "post:actors"
	PermPatchActors  = "patch:actors"
	PermDeleteActors = "delete:actors"

	PermGetRoles    = "get:roles"
	PermPostRoles   = "post:roles"
	PermPatchRoles  = "patch:roles"
	PermDeleteRoles = "delete:roles"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(deps.Config.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	health := handlers.NewHealthHandler(deps.DB.DB, deps.Logger)
	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)

	mountCasting(r, deps)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, r, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteProblem(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", r.URL.Path)
	})

	return r
}

// mountCasting registers the movie, actor and role endpoints. Every one of
// them sits behind the guard with its own permission.
func mountCasting(r chi.Router, deps *app.Dependencies) {
	guard := deps.Guard
	movies := handlers.NewMovieHandler(deps.MovieService, deps.Logger)
	actors := handlers.NewActorHandler(deps.ActorService, deps.Logger)
	roles := handlers.NewRoleHandler(deps.RoleService, deps.Logger)

	r.Route("/movies", func(r chi.Router) {
		r.Method(http.MethodGet, "/", guard.Require(PermGetMovies, movies.HandleList))
		r.Method(http.MethodPost, "/", guard.Require(PermPostMovies, movies.HandleCreate))
		r.Method(http.MethodPost, "/search", guard.Require(PermGetMovies, movies.HandleSearch))
		r.Method(http.MethodGet, "/{id}", guard.Require(PermGetMovies, movies.HandleGet))
		r.Method(http.MethodGet, "/{id}/actors", guard.Require(PermGetMovies, movies.HandleListActors))
		r.Method(http.MethodPatch, "/{id}", guard.Require(PermPatchMovies, movies.HandleUpdate))
		r.Method(http.MethodDelete, "/{id}", guard.Require(PermDeleteMovies, movies.HandleDelete))
	})

	r.Route("/actors", func(r chi.Router) {
		r.Method(http.MethodGet, "/", guard.Require(PermGetActors, actors.HandleList))
		r.Method(http.MethodPost, "/", guard.Require(PermPostActors, actors.HandleCreate))
		r.Method(http.MethodPost, "/search", guard.Require(PermGetActors, actors.HandleSearch))
		r.Method(http.MethodGet, "/{id}", guard.Require(PermGetActors, actors.HandleGet))
		r.Method(http.MethodGet, "/{id}/roles", guard.Require(PermGetActors, actors.HandleListRoles))
		r.Method(http.MethodPatch, "/{id}", guard.Require(PermPatchActors, actors.HandleUpdate))
		r.Method(http.MethodDelete, "/{id}", guard.Require(PermDeleteActors, actors.HandleDelete))
	})

	r.Route("/roles", func(r chi.Router) {
		r.Method(http.MethodGet, "/", guard.Require(PermGetRoles, roles.HandleList))
		r.Method(http.MethodPost, "/", guard.Require(PermPostRoles, roles.HandleCreate))
		r.Method(http.MethodGet, "/{id}", guard.Require(PermGetRoles, roles.HandleGet))
		r.Method(http.MethodPatch, "/{id}", guard.Require(PermPatchRoles, roles.HandleUpdate))
		r.Method(http.MethodDelete, "/{id}", guard.Require(PermDeleteRoles, roles.HandleDelete))
		r.Method(http.MethodPut, "/{id}/actors/{actorID}", guard.Require(PermPatchRoles, roles.HandleCastActor))
		r.Method(http.MethodDelete, "/{id}/actors/{actorID}", guard.Require(PermPatchRoles, roles.HandleUncastActor))
	})
}
