package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"tablediff/core/compare"
	"tablediff/core/config"
	"tablediff/core/database"
	"tablediff/core/logger"
	"tablediff/core/storage"
	"tablediff/feature/sheetsource"
	"tablediff/feature/sqlsource"

	"go.uber.org/zap"
)

// session carries what one command needs to open locations.
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	cache   *sheetsource.Cache
	store   storage.Client
	closers []func()
}

func newSession() (*session, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &session{
		cfg:    cfg,
		logger: l,
		cache:  sheetsource.NewCache(time.Duration(cfg.Compare.CacheTTLSeconds) * time.Second),
	}, nil
}

// close releases every opened database and flushes the logger.
func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
	_ = s.logger.Sync()
}

func (s *session) storage() (storage.Client, error) {
	if s.store == nil {
		client, err := storage.NewClient(s.cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		s.store = client
	}
	return s.store, nil
}

// locationKind tells which provider serves a location.
type locationKind int

const (
	locationUnknown locationKind = iota
	locationDatabase
	locationSQLiteFile
	locationWorkbook
	locationObject
)

func classifyLocation(location string) locationKind {
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "mysql://"), strings.HasPrefix(lower, "sqlite://"):
		return locationDatabase
	case storage.IsLocation(location):
		if strings.HasSuffix(lower, sheetsource.Extension) {
			return locationObject
		}
		return locationUnknown
	case strings.HasSuffix(lower, sheetsource.Extension):
		return locationWorkbook
	}
	switch filepath.Ext(lower) {
	case ".db", ".sqlite", ".sqlite3":
		return locationSQLiteFile
	}
	return locationUnknown
}

// open resolves a location into a provider.
func (s *session) open(location string) (compare.Provider, error) {
	switch classifyLocation(location) {
	case locationDatabase, locationSQLiteFile:
		raw := location
		if classifyLocation(location) == locationSQLiteFile {
			raw = database.DriverSQLite + "://" + location
		}
		dbCfg, err := database.ParseURL(raw, s.cfg.Database)
		if err != nil {
			return nil, err
		}
		db, err := database.Connect(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", redact(location), err)
		}
		if sqlDB, err := db.DB(); err == nil {
			s.closers = append(s.closers, func() { _ = sqlDB.Close() })
		}
		return sqlsource.New(db, redact(location), s.logger, sqlsource.Options{IdleConns: dbCfg.MaxIdleConns}), nil
	case locationWorkbook:
		return sheetsource.New(location, nil, s.cache, s.logger), nil
	case locationObject:
		client, err := s.storage()
		if err != nil {
			return nil, err
		}
		return sheetsource.New(location, client, s.cache, s.logger).WithObjectLimit(s.cfg.Storage.MaxObjectBytes()), nil
	}
	return nil, fmt.Errorf("unsupported location %q", location)
}

// endpoints opens the source and target named by args, falling back to the last used
// locations.
func (s *session) endpoints(args []string) (source, target compare.Provider, err error) {
	sourceLoc, targetLoc := s.cfg.Compare.Source, s.cfg.Compare.Target
	if len(args) > 0 {
		sourceLoc = args[0]
	}
	if len(args) > 1 {
		targetLoc = args[1]
	}
	if sourceLoc == "" || targetLoc == "" {
		return nil, nil, errors.New("a source and a target location are required")
	}

	if source, err = s.open(sourceLoc); err != nil {
		return nil, nil, fmt.Errorf("source: %w", err)
	}
	if target, err = s.open(targetLoc); err != nil {
		return nil, nil, fmt.Errorf("target: %w", err)
	}

	s.cfg.Compare.Source, s.cfg.Compare.Target = sourceLoc, targetLoc
	return source, target, nil
}

func (s *session) scheduler(source, target compare.Provider) *compare.Scheduler {
	return compare.New(source, target, s.cfg.Compare.CustomKeys, s.logger)
}

// remember stores the locations in use as the defaults of the next run.
func (s *session) remember() {
	file := s.cfg.Compare.SettingsFile
	if file == "" {
		return
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(configDir, file)
	}
	if err := config.SaveSettings(file, s.cfg.Compare.Source, s.cfg.Compare.Target); err != nil {
		s.logger.Warn("Failed to save settings", zap.String("file", file), zap.Error(err))
	}
}

// redact hides the password of a database URL.
func redact(location string) string {
	u, err := url.Parse(location)
	if err != nil || u.User == nil {
		return location
	}
	return u.Redacted()
}
