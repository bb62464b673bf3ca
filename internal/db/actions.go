package db

import (
	"context"
	"database/sql"
	"time"
)

// AuditAction is one recorded operator action.
type AuditAction struct {
	ID         int64
	Actor      int64
	Action     string
	BranchID   string
	BranchName string
	Details    string
	CreatedAt  time.Time
}

// RecordAction appends an operator action to the log.
func (db *DB) RecordAction(ctx context.Context, actor int64, action, branchID, branchName, details string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO actions (actor, action, branch_id, branch_name, details)
		VALUES (?, ?, ?, ?, ?)`,
		actor, action, branchID, branchName, details)
	return err
}

// RecentActions returns the newest actions, most recent first.
func (db *DB) RecentActions(ctx context.Context, limit int) ([]AuditAction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, actor, action, branch_id, branch_name, details, created_at
		FROM actions
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []AuditAction
	for rows.Next() {
		var a AuditAction
		var branchID, branchName, details sql.NullString
		if err := rows.Scan(&a.ID, &a.Actor, &a.Action, &branchID, &branchName, &details, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.BranchID = branchID.String
		a.BranchName = branchName.String
		a.Details = details.String
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// DeleteOldActions removes log entries older than the given duration and
// returns the number of deleted rows.
func (db *DB) DeleteOldActions(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := db.ExecContext(ctx, `DELETE FROM actions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
