package db

import (
	"github.com/pkg/errors"

	"github.com/inquora/inquora/internal/profile"
	"github.com/inquora/inquora/store"
	"github.com/inquora/inquora/store/db/postgres"
	"github.com/inquora/inquora/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
// SQLite covers development and single-user deployments; PostgreSQL is the
// production driver.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'sqlite' and 'postgres' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
