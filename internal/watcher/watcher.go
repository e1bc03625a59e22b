package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"costbook/internal/config"
	"costbook/internal/pipeline"
)

var scopeExtensions = map[string]struct{}{
	".txt": {}, ".xlsx": {}, ".xls": {}, ".pdf": {}, ".eml": {}, ".html": {}, ".htm": {},
}

// Service polls the inbox directory for scope documents dropped by the
// upload layer, batch-translates each, and writes a review workbook to the
// output directory.
type Service struct {
	batch *pipeline.BatchService
	cfg   config.Config
}

func NewService(batch *pipeline.BatchService, cfg config.Config) *Service {
	return &Service{batch: batch, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			fmt.Printf("watch cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.WatchIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	paths, err := s.pendingDocuments()
	if err != nil {
		return err
	}

	processed := 0
	for _, path := range paths {
		outputPath := filepath.Join(s.cfg.OutputDir, "watch", outputName(path))
		result, err := s.batch.RunFile(path, outputPath)
		if err != nil {
			fmt.Printf("watch skip %s: %v\n", filepath.Base(path), err)
			if err := s.moveProcessed(path); err != nil {
				return err
			}
			continue
		}

		processed++
		fmt.Printf("watch done %s lines=%d matched=%d tookMs=%d\n",
			filepath.Base(path), len(result.Rows), result.Matched, result.TookMs)
		if err := s.moveProcessed(path); err != nil {
			return err
		}
	}

	if processed > 0 {
		fmt.Printf("watch cycle done processed=%d\n", processed)
	}
	return nil
}

func (s *Service) pendingDocuments() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.WatchInboxDir)
	if os.IsNotExist(err) {
		return nil, os.MkdirAll(s.cfg.WatchInboxDir, 0o755)
	}
	if err != nil {
		return nil, err
	}

	out := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := scopeExtensions[ext]; !ok {
			continue
		}
		out = append(out, filepath.Join(s.cfg.WatchInboxDir, entry.Name()))
		if len(out) >= s.cfg.WatchBatchMax {
			break
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *Service) moveProcessed(path string) error {
	if !s.cfg.WatchMoveDone {
		return nil
	}
	if err := os.MkdirAll(s.cfg.WatchProcessedDir, 0o755); err != nil {
		return err
	}
	return os.Rename(path, filepath.Join(s.cfg.WatchProcessedDir, filepath.Base(path)))
}

func outputName(inputPath string) string {
	base := filepath.Base(inputPath)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return fmt.Sprintf("%s_%d.xlsx", base, time.Now().Unix())
}
