package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/registry"
)

var terminalStatuses = []any{
	string(models.JobStatusSucceeded),
	string(models.JobStatusFailed),
	string(models.JobStatusKilled),
	string(models.JobStatusInvalid),
}

func (s *Store) SaveJobRequest(ctx context.Context, request models.JobRequest) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return wrapf(err, "failed to encode job request %s", request.ID)
	}
	return s.withTx(ctx, "SaveJobRequest", func(ctx context.Context, tx SQLClient) error {
		err := s.exists(ctx, tx, "jobs", request.ID)
		if err == nil {
			return registry.NewErrAlreadyExists("job", request.ID)
		}
		if !genieerrors.IsErrorWithCode(err, genieerrors.NotFoundError) {
			return err
		}
		now := s.nowNano()
		_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO jobs (id, request, status, status_msg, created, updated)
			VALUES (?, ?, ?, ?, ?, ?)`),
			request.ID, string(payload), string(models.JobStatusAccepted), "Job accepted", now, now)
		return err
	})
}

// UpdateJobStatus uses an optimistic version check so that concurrent writers
// surface as a retryable conflict instead of silently overwriting each other.
func (s *Store) UpdateJobStatus(ctx context.Context, jobID string, status models.JobStatus, message string) error {
	return s.updateJob(ctx, "UpdateJobStatus", jobID, `status = ?, status_msg = ?`, string(status), message)
}

func (s *Store) SetJobResolution(ctx context.Context, jobID, clusterID, commandID string) error {
	return s.updateJob(ctx, "SetJobResolution", jobID, `cluster_id = ?, command_id = ?`, clusterID, commandID)
}

func (s *Store) updateJob(ctx context.Context, op, jobID, set string, args ...any) error {
	return s.withConn(ctx, op, func(ctx context.Context, c SQLClient) error {
		var version int64
		err := c.QueryRowContext(ctx, s.rebind(`SELECT version FROM jobs WHERE id = ?`), jobID).Scan(&version)
		if errors.Is(err, sql.ErrNoRows) {
			return registry.NewErrNotFound("job", jobID)
		}
		if err != nil {
			return err
		}
		query := `UPDATE jobs SET ` + set + `, version = version + 1, updated = ? WHERE id = ? AND version = ?`
		queryArgs := append(args, s.nowNano(), jobID, version)
		res, err := c.ExecContext(ctx, s.rebind(query), queryArgs...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return registry.NewTransientError(registry.OptimisticLock, op,
				errors.New("job "+jobID+" was modified concurrently"))
		}
		return nil
	})
}

func (s *Store) GetJob(ctx context.Context, jobID string) (models.JobRecord, error) {
	var record models.JobRecord
	err := s.withConn(ctx, "GetJob", func(ctx context.Context, c SQLClient) error {
		var payload string
		var status string
		var created, updated int64
		err := c.QueryRowContext(ctx, s.rebind(`SELECT request, status, status_msg, cluster_id, command_id, created, updated
			FROM jobs WHERE id = ?`), jobID).
			Scan(&payload, &status, &record.StatusMessage, &record.ClusterID, &record.CommandID, &created, &updated)
		if errors.Is(err, sql.ErrNoRows) {
			return registry.NewErrNotFound("job", jobID)
		}
		if err != nil {
			return err
		}
		if err = json.Unmarshal([]byte(payload), &record.Request); err != nil {
			return wrapf(err, "failed to decode job request %s", jobID)
		}
		record.Status = models.JobStatus(status)
		record.Created = fromNano(created)
		record.Updated = fromNano(updated)
		return nil
	})
	return record, err
}

func (s *Store) DeleteJobsCreatedBefore(ctx context.Context, before time.Time, limit int) (int, error) {
	if limit <= 0 {
		limit = -1
	}
	var deleted int
	err := s.withConn(ctx, "DeleteJobsCreatedBefore", func(ctx context.Context, c SQLClient) error {
		query := `DELETE FROM jobs WHERE id IN (
			SELECT id FROM jobs WHERE status IN (` + placeholders(len(terminalStatuses)) + `) AND created < ?
			ORDER BY created LIMIT ?)`
		args := append(append([]any{}, terminalStatuses...), before.UTC().UnixNano(), limit)
		if s.dialect == DialectPostgres && limit < 0 {
			query = `DELETE FROM jobs WHERE status IN (` + placeholders(len(terminalStatuses)) + `) AND created < ?`
			args = args[:len(args)-1]
		}
		res, err := c.ExecContext(ctx, s.rebind(query), args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		deleted = int(n)
		return err
	})
	return deleted, err
}
