package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"writerdesk-backend/internal/domains/autosave"
	"writerdesk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) autosave.Repository {
	return &postgresRepository{pool: pool}
}

const versionColumns = `id, project_id, scene_id, version_number, content, word_count, created_at`

func scanVersion(row pgx.Row) (*autosave.AutosaveVersion, error) {
	var v autosave.AutosaveVersion
	err := row.Scan(&v.ID, &v.ProjectID, &v.SceneID, &v.VersionNumber, &v.Content, &v.WordCount, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Save serializes writers on the stream key with a transaction-scoped
// advisory lock, so the dedup check, the version number and the prune
// all happen under one exclusive section per key.
func (r *postgresRepository) Save(ctx context.Context, v *autosave.AutosaveVersion, dedupWindow time.Duration, maxVersions int) (*autosave.SaveResult, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*autosave.SaveResult, error) {
		_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, v.Key())
		if err != nil {
			return nil, fmt.Errorf("autosave lock: %w", err)
		}

		latest, err := latestForKeyTx(ctx, tx, v.ProjectID, v.SceneID)
		if err != nil && !errors.Is(err, autosave.ErrVersionNotFound) {
			return nil, err
		}

		if latest != nil && latest.IsDuplicateOf(v.Content, time.Now(), dedupWindow) {
			return &autosave.SaveResult{Version: latest, Deduplicated: true}, nil
		}

		query := `
      INSERT INTO autosave_versions (project_id, scene_id, version_number, content, word_count, created_at)
      VALUES ($1, $2,
              (SELECT COALESCE(MAX(version_number), 0) + 1
               FROM autosave_versions
               WHERE project_id = $1 AND scene_id IS NOT DISTINCT FROM $2),
              $3, $4, NOW())
      RETURNING ` + versionColumns

		created, err := scanVersion(tx.QueryRow(ctx, query, v.ProjectID, v.SceneID, v.Content, v.WordCount))
		if err != nil {
			return nil, fmt.Errorf("insert autosave version: %w", err)
		}

		// Retention is project-wide: only the newest maxVersions rows
		// survive, regardless of which stream they belong to.
		if maxVersions > 0 {
			_, err = tx.Exec(ctx, `
        DELETE FROM autosave_versions
        WHERE project_id = $1
          AND id NOT IN (
            SELECT id FROM autosave_versions
            WHERE project_id = $1
            ORDER BY created_at DESC, version_number DESC
            LIMIT $2
          )`, v.ProjectID, maxVersions)
			if err != nil {
				return nil, fmt.Errorf("prune autosave versions: %w", err)
			}
		}

		return &autosave.SaveResult{Version: created, Deduplicated: false}, nil
	})
}

func (r *postgresRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*autosave.AutosaveVersion, error) {
	query := `
    SELECT ` + versionColumns + `
    FROM autosave_versions
    WHERE project_id = $1
    ORDER BY created_at DESC, version_number DESC`
	args := []interface{}{projectID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list autosave versions: %w", err)
	}
	defer rows.Close()

	var versions []*autosave.AutosaveVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan autosave version: %w", err)
		}
		versions = append(versions, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list autosave versions: %w", err)
	}

	return versions, nil
}

func (r *postgresRepository) Latest(ctx context.Context, projectID uuid.UUID) (*autosave.AutosaveVersion, error) {
	query := `
    SELECT ` + versionColumns + `
    FROM autosave_versions
    WHERE project_id = $1
    ORDER BY created_at DESC, version_number DESC
    LIMIT 1`

	v, err := scanVersion(r.pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, autosave.ErrVersionNotFound
		}
		return nil, fmt.Errorf("latest autosave version: %w", err)
	}

	return v, nil
}

func (r *postgresRepository) LatestForKey(ctx context.Context, projectID uuid.UUID, sceneID *uuid.UUID) (*autosave.AutosaveVersion, error) {
	v, err := latestForKeyQuerier(ctx, r.pool, projectID, sceneID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func latestForKeyTx(ctx context.Context, tx pgx.Tx, projectID uuid.UUID, sceneID *uuid.UUID) (*autosave.AutosaveVersion, error) {
	return latestForKeyQuerier(ctx, tx, projectID, sceneID)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func latestForKeyQuerier(ctx context.Context, q querier, projectID uuid.UUID, sceneID *uuid.UUID) (*autosave.AutosaveVersion, error) {
	query := `
    SELECT ` + versionColumns + `
    FROM autosave_versions
    WHERE project_id = $1 AND scene_id IS NOT DISTINCT FROM $2
    ORDER BY version_number DESC
    LIMIT 1`

	v, err := scanVersion(q.QueryRow(ctx, query, projectID, sceneID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, autosave.ErrVersionNotFound
		}
		return nil, fmt.Errorf("latest autosave version for key: %w", err)
	}

	return v, nil
}
