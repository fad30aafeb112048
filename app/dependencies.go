package app

import (
	"context"
	"fmt"

	"github.com/upb/casting-agency/auth"
	"github.com/upb/casting-agency/config"
	"github.com/upb/casting-agency/middleware"
	"github.com/upb/casting-agency/repositories"
	"github.com/upb/casting-agency/repositories/postgres"
	"github.com/upb/casting-agency/services/casting"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Movies    repositories.MovieRepository
	Actors    repositories.ActorRepository
	Roles     repositories.RoleRepository
	TxManager repositories.TransactionManager

	// Authorization
	KeySet   auth.KeySetFetcher
	Verifier *auth.Verifier
	Guard    *middleware.Guard

	// Services
	MovieService *casting.MovieService
	ActorService *casting.ActorService
	RoleService  *casting.RoleService
}

// NewDependencies opens the database and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := NewDependenciesWithFactory(ctx, cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}
	return deps, nil
}

// NewDependenciesWithFactory wires the application on top of an existing repository factory
func NewDependenciesWithFactory(ctx context.Context, cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	if cfg.Database.MigrateOnStart {
		if err := factory.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	deps.initRepositories()

	if err := deps.initAuth(cfg.Auth); err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deps.initServices()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Movies = repos.Movies
	d.Actors = repos.Actors
	d.Roles = repos.Roles
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

// initAuth builds the key-set fetcher, token verifier and guard
func (d *Dependencies) initAuth(cfg config.AuthConfig) error {
	fetcher := auth.NewHTTPKeySetFetcher(cfg.FetcherConfig(), d.Logger)
	d.KeySet = fetcher
	if cfg.JWKSCacheTTL > 0 {
		d.KeySet = auth.NewCachingKeySetFetcher(fetcher, cfg.JWKSCacheTTL)
	}

	verifier, err := auth.NewVerifier(cfg.VerifierConfig(), d.KeySet, d.Logger)
	if err != nil {
		return err
	}
	d.Verifier = verifier
	d.Guard = middleware.NewGuard(verifier, d.Logger)

	d.Logger.Info("authorization initialized",
		zap.String("issuer", verifier.Config().Issuer()),
		zap.String("audience", cfg.Audience),
		zap.String("jwks_url", fetcher.URL()),
		zap.Duration("jwks_cache_ttl", cfg.JWKSCacheTTL))
	return nil
}

// initServices initializes the domain services
func (d *Dependencies) initServices() {
	d.MovieService = casting.NewMovieService(d.Movies, d.Actors, d.Logger)
	d.ActorService = casting.NewActorService(d.Actors, d.Roles, d.Logger)
	d.RoleService = casting.NewRoleService(d.Roles, d.Movies, d.Actors, d.TxManager, d.Logger)
}

// Close releases resources held by the dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("closing dependencies")

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
