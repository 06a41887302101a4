package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nrrscope/nrrscope/internal/logging"
	"github.com/nrrscope/nrrscope/internal/tablestore"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

// TableRepository is the SQL side of persistence. tablestore.Repository
// implements it; Latest returns tablestore.ErrEmpty when nothing is stored.
type TableRepository interface {
	Save(ctx context.Context, version string, table standings.Table) error
	Latest(ctx context.Context) (standings.Table, string, time.Time, error)
}

// Source names where a bootstrapped table came from.
type Source string

const (
	SourceDatabase Source = "database"
	SourceBlob     Source = "blob"
	SourceSeed     Source = "seed"
)

// Service owns writes to the points table: every change is published to the
// store and then written to the configured backends.
type Service struct {
	store   *standings.Store
	blob    StorageClient
	repo    TableRepository
	fetcher *Fetcher
	log     *logrus.Entry

	mu sync.Mutex // serializes publish + persist
}

// NewService creates a new ingestion Service. blob, repo and fetcher may be nil.
func NewService(store *standings.Store, blob StorageClient, repo TableRepository, fetcher *Fetcher) *Service {
	return &Service{
		store:   store,
		blob:    blob,
		repo:    repo,
		fetcher: fetcher,
		log:     logging.Log.WithField("component", "ingestion"),
	}
}

// Store returns the store the service publishes to.
func (s *Service) Store() *standings.Store {
	return s.store
}

// Bootstrap loads the persisted table into the store. The database is tried
// first, then blob storage; when neither holds a table, seed is published and
// written to both so later restarts agree.
func (s *Service) Bootstrap(ctx context.Context, seed standings.Table) (Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		table, version, at, err := s.repo.Latest(ctx)
		switch {
		case err == nil:
			if _, err := s.store.Restore(version, at, table); err != nil {
				return "", fmt.Errorf("restore table from database: %w", err)
			}
			s.log.WithFields(logrus.Fields{"version": version, "teams": len(table)}).Info("loaded points table from database")
			return SourceDatabase, nil
		case errors.Is(err, tablestore.ErrEmpty):
		default:
			return "", fmt.Errorf("load table from database: %w", err)
		}
	}

	if s.blob != nil {
		data, err := s.blob.GetTable(ctx)
		switch {
		case err == nil:
			table, err := standings.Decode(data)
			if err != nil {
				return "", fmt.Errorf("decode stored table: %w", err)
			}
			snap, err := s.store.Replace(table)
			if err != nil {
				return "", err
			}
			s.log.WithFields(logrus.Fields{"version": snap.Version, "teams": len(table)}).Info("loaded points table from blob storage")
			return SourceBlob, nil
		case errors.Is(err, ErrNotFound):
		default:
			return "", fmt.Errorf("load table from blob storage: %w", err)
		}
	}

	snap, err := s.store.Replace(seed)
	if err != nil {
		return "", fmt.Errorf("seed table: %w", err)
	}
	if err := s.persist(ctx, snap); err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{"version": snap.Version, "teams": len(seed)}).Info("seeded points table")
	return SourceSeed, nil
}

// Replace publishes table as the new current version and persists it.
// Invalid tables are rejected before anything is published.
func (s *Service) Replace(ctx context.Context, table standings.Table) (*standings.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Replace(table)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, snap); err != nil {
		return snap, err
	}
	s.log.WithFields(logrus.Fields{"version": snap.Version, "teams": len(table)}).Info("points table replaced")
	return snap, nil
}

// ImportHTML parses an HTML page and replaces the table with its contents.
func (s *Service) ImportHTML(ctx context.Context, r io.Reader) (*standings.Snapshot, error) {
	table, err := standings.ParseHTML(r)
	if err != nil {
		return nil, err
	}
	return s.Replace(ctx, table)
}

// ImportURL fetches an HTML page and replaces the table with its contents.
func (s *Service) ImportURL(ctx context.Context, url string) (*standings.Snapshot, error) {
	if s.fetcher == nil {
		return nil, errors.New("url import is not configured")
	}
	table, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"url": url, "teams": len(table)}).Debug("fetched points table")
	return s.Replace(ctx, table)
}

func (s *Service) persist(ctx context.Context, snap *standings.Snapshot) error {
	if s.repo != nil {
		if err := s.repo.Save(ctx, snap.Version, snap.Entries); err != nil {
			return fmt.Errorf("persist table to database: %w", err)
		}
	}
	if s.blob != nil {
		data, err := standings.Encode(snap.Entries)
		if err != nil {
			return err
		}
		if err := s.blob.PutTable(ctx, data); err != nil {
			return fmt.Errorf("persist table to blob storage: %w", err)
		}
	}
	return nil
}
