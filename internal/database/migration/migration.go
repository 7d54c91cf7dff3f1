package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file:// source
)

// Up applies pending migrations from sourceURL and logs the resulting schema
// version. A dirty schema is reported as an error and left for manual repair.
func Up(dbURL, sourceURL string, verbose bool, log *zap.Logger) error {
	log.Info("Applying dashboard migrations", zap.String("source", sourceURL))

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()

	m.Log = &Logger{logger: log.Named("migrate"), verbose: verbose}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("Database migration failed", zap.Error(err))
		return err
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info("Database has no migrations applied")
		return nil
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case dirty:
		return fmt.Errorf("schema version %d is dirty", version)
	}

	log.Info("Database schema is up to date", zap.Uint("version", version))
	return nil
}

// Logger forwards migrate output to zap.
type Logger struct {
	logger  *zap.Logger
	verbose bool
}

func (l *Logger) Printf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *Logger) Verbose() bool {
	return l.verbose
}
