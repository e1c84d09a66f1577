// Package service contains the business logic.
//
// It sits between callers (the CLI) and the repository layer: it validates
// input, applies limits and caching, and calls repository methods to interact
// with the data.
package service

import (
	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/rs/zerolog"
)

// Services is a container for all service instances.
type Services struct {
	Properties   *PropertyService
	Users        *UserService
	Reservations *ReservationService
}

// Deps are the optional collaborators of the services. Nil fields disable
// the matching feature.
type Deps struct {
	Cache SearchCache
	Jobs  WelcomeEnqueuer
}

// NewServices wires the services over repos.
func NewServices(repos *repository.Repositories, cfg config.RepositoryConfig, deps Deps, logger *zerolog.Logger) *Services {
	limits := limits{defaultLimit: cfg.DefaultLimit, maxLimit: cfg.MaxLimit}

	return &Services{
		Properties: &PropertyService{
			store:  repos.Properties,
			cache:  deps.Cache,
			limits: limits,
			logger: logger,
		},
		Users: &UserService{
			store:    repos.Users,
			jobs:     deps.Jobs,
			hashCost: PasswordHashCost,
			logger:   logger,
		},
		Reservations: &ReservationService{
			store:  repos.Reservations,
			limits: limits,
		},
	}
}

// limits clamps caller supplied result counts.
type limits struct {
	defaultLimit int
	maxLimit     int
}

func (l limits) clamp(limit int) int {
	if limit <= 0 {
		limit = l.defaultLimit
	}
	if l.maxLimit > 0 && limit > l.maxLimit {
		limit = l.maxLimit
	}
	if limit <= 0 {
		limit = repository.DefaultSearchLimit
	}
	return limit
}
