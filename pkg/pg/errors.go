package pg

import "errors"

var (
	ErrInvalidConfig           = errors.New("pg.errors.invalid_config")
	ErrConnectionFailed        = errors.New("pg.errors.connection_failed")
	ErrHealthcheckFailed       = errors.New("pg.errors.healthcheck_failed")
	ErrMigrationsPathMissing   = errors.New("pg.errors.migrations_path_missing")
	ErrMigrationsDirNotFound   = errors.New("pg.errors.migrations_dir_not_found")
	ErrFailedToApplyMigrations = errors.New("pg.errors.failed_to_apply_migrations")
)
