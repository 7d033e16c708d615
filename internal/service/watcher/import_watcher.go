// Package watcher implements automatic ingestion: XML documents dropped into
// a watched directory are fed through the ingestion pipeline without an HTTP
// upload.
package watcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Nofexxx/pet-f/config"
	"github.com/Nofexxx/pet-f/internal/database"
	apperrors "github.com/Nofexxx/pet-f/internal/errors"
	"github.com/Nofexxx/pet-f/internal/logger"
)

// Ingestor is the slice of the file service the watcher needs.
type Ingestor interface {
	IngestFile(name string, r io.Reader) (*database.File, error)
}

// ImportWatcherService watches the configured drop directory and ingests the
// XML files appearing in it.
type ImportWatcherService interface {
	// Start launches the scan loop and the import worker. It is a no-op
	// when watching is disabled in the configuration.
	Start(ctx context.Context) error

	// Stop shuts the workers down and waits for the in-flight import to
	// finish.
	Stop() error

	// TriggerImport queues one file for ingestion immediately, bypassing
	// the scan loop.
	TriggerImport(path string) error
}

// maxImportAttempts bounds retries of imports that failed on storage errors.
// Parse failures and duplicates are never retried.
const maxImportAttempts = 3

// importItem is one queued unit of work.
type importItem struct {
	path     string
	attempts int
}

// importWatcherService is the ImportWatcherService implementation.
type importWatcherService struct {
	cfg      config.IngestConfig
	ingestor Ingestor

	queue    chan importItem
	stopChan chan struct{}
	wg       sync.WaitGroup

	mu        sync.Mutex
	running   bool
	processed map[string]bool // paths already handled in this process
}

// NewImportWatcherService creates an import watcher over the given ingestor.
func NewImportWatcherService(cfg config.IngestConfig, ingestor Ingestor) ImportWatcherService {
	return &importWatcherService{
		cfg:       cfg,
		ingestor:  ingestor,
		queue:     make(chan importItem, 64),
		stopChan:  make(chan struct{}),
		processed: make(map[string]bool),
	}
}

// Start launches the scan loop and the worker.
func (s *importWatcherService) Start(ctx context.Context) error {
	if !s.cfg.WatchEnabled {
		logger.Info("import watcher disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("import watcher already started")
	}

	if err := os.MkdirAll(s.cfg.WatchDir, 0o755); err != nil {
		return fmt.Errorf("failed to create watch directory: %w", err)
	}

	s.running = true
	s.wg.Add(2)
	go s.scanLoop(ctx)
	go s.worker(ctx)

	logger.Infof("import watcher started on %s", s.cfg.WatchDir)
	return nil
}

// Stop shuts down the workers.
func (s *importWatcherService) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
	return nil
}

// TriggerImport queues one file directly.
func (s *importWatcherService) TriggerImport(path string) error {
	select {
	case s.queue <- importItem{path: path}:
		return nil
	default:
		return fmt.Errorf("import queue is full")
	}
}

// scanLoop polls the watch directory on the configured interval.
func (s *importWatcherService) scanLoop(ctx context.Context) {
	defer s.wg.Done()

	interval := time.Duration(s.cfg.ScanInterval) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.scan()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.scan()
		}
	}
}

// scan enqueues every not-yet-handled XML file in the watch directory.
func (s *importWatcherService) scan() {
	entries, err := os.ReadDir(s.cfg.WatchDir)
	if err != nil {
		logger.Errorf("failed to scan watch directory: %v", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		path := filepath.Join(s.cfg.WatchDir, entry.Name())

		s.mu.Lock()
		seen := s.processed[path]
		if !seen {
			s.processed[path] = true
		}
		s.mu.Unlock()
		if seen {
			continue
		}

		select {
		case s.queue <- importItem{path: path}:
		default:
			// Queue full: forget the path so the next scan retries it.
			s.mu.Lock()
			delete(s.processed, path)
			s.mu.Unlock()
			return
		}
	}
}

// worker drains the import queue.
func (s *importWatcherService) worker(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case item := <-s.queue:
			s.process(item)
		}
	}
}

// process ingests one file. Storage failures are retried a bounded number of
// times; duplicates and malformed documents are final.
func (s *importWatcherService) process(item importItem) {
	name := filepath.Base(item.path)

	src, err := os.Open(item.path)
	if err != nil {
		logger.Errorf("failed to open import file %s: %v", item.path, err)
		return
	}
	defer src.Close()

	_, err = s.ingestor.IngestFile(name, src)
	if err == nil {
		logger.WithFields(logrus.Fields{
			"file": name,
			"path": item.path,
		}).Info("file imported from watch directory")
		return
	}

	switch {
	case apperrors.IsCode(err, apperrors.ErrFileAlreadyExists):
		logger.Debugf("skipping already ingested file %s", name)
	case apperrors.IsCode(err, apperrors.ErrFileParseFailed):
		logger.Warnf("import of %s failed: %v", name, err)
	default:
		item.attempts++
		if item.attempts >= maxImportAttempts {
			logger.Errorf("giving up on import of %s after %d attempts: %v", name, item.attempts, err)
			return
		}
		logger.Warnf("import of %s failed (attempt %d), requeueing: %v", name, item.attempts, err)
		s.requeue(item)
	}
}

// requeue puts a failed item back on the queue after a short backoff.
func (s *importWatcherService) requeue(item importItem) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		select {
		case <-s.stopChan:
		case <-time.After(time.Duration(item.attempts) * 5 * time.Second):
			select {
			case s.queue <- item:
			case <-s.stopChan:
			}
		}
	}()
}
