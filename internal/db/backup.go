package db

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// BackupService periodically copies the audit database aside and prunes
// both stale backup files and audit rows past the retention window.
type BackupService struct {
	db            *DB
	dbPath        string
	storagePath   string
	interval      time.Duration
	retentionDays int
	logger        *zerolog.Logger
}

func NewBackupService(database *DB, dbPath, storagePath string, intervalHours, retentionDays int, logger *zerolog.Logger) *BackupService {
	return &BackupService{
		db:            database,
		dbPath:        dbPath,
		storagePath:   storagePath,
		interval:      time.Duration(intervalHours) * time.Hour,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

func (s *BackupService) Start(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("backup service started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if err := s.PerformBackup(); err != nil {
		s.logger.Error().Err(err).Msg("initial backup failed")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.PerformBackup(); err != nil {
				s.logger.Error().Err(err).Msg("scheduled backup failed")
			}
			s.CleanupOldBackups()
			s.pruneAuditLog(ctx)
		}
	}
}

func (s *BackupService) PerformBackup() error {
	if _, err := os.Stat(s.storagePath); os.IsNotExist(err) {
		if err := os.MkdirAll(s.storagePath, 0755); err != nil {
			return fmt.Errorf("failed to create backup directory: %w", err)
		}
	}

	timestamp := time.Now().Format("20060102_150405")
	backupPath := filepath.Join(s.storagePath, fmt.Sprintf("backup_%s.db", timestamp))

	s.logger.Info().Str("path", backupPath).Msg("performing database backup")

	source, err := os.Open(s.dbPath)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(backupPath)
	if err != nil {
		return err
	}
	defer destination.Close()

	if _, err = io.Copy(destination, source); err != nil {
		return err
	}

	s.logger.Info().Msg("backup completed")
	return nil
}

func (s *BackupService) CleanupOldBackups() {
	if s.retentionDays <= 0 {
		return
	}

	files, err := os.ReadDir(s.storagePath)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read backup directory for cleanup")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			s.logger.Info().Str("file", file.Name()).Msg("deleting old backup")
			os.Remove(filepath.Join(s.storagePath, file.Name()))
		}
	}
}

func (s *BackupService) pruneAuditLog(ctx context.Context) {
	if s.retentionDays <= 0 {
		return
	}
	deleted, err := s.db.DeleteOldActions(ctx, time.Duration(s.retentionDays)*24*time.Hour)
	if err != nil {
		s.logger.Error().Err(err).Msg("pruning audit log failed")
		return
	}
	if deleted > 0 {
		s.logger.Info().Int64("rows", deleted).Msg("pruned old audit records")
	}
}
