package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"writerdesk-backend/internal/domains/annotation"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) annotation.Repository {
	return &postgresRepository{pool: pool}
}

const annotationColumns = `id, scene_id, draft_id, start_offset, end_offset, content, priority, is_resolved, created_at, updated_at`

func scanAnnotation(row pgx.Row) (*annotation.Annotation, error) {
	var a annotation.Annotation
	err := row.Scan(&a.ID, &a.SceneID, &a.DraftID, &a.StartOffset, &a.EndOffset,
		&a.Content, &a.Priority, &a.IsResolved, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *annotation.Annotation) (*annotation.Annotation, error) {
	query := `
    INSERT INTO annotations (scene_id, draft_id, start_offset, end_offset, content, priority, is_resolved, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW(), NOW())
    RETURNING ` + annotationColumns

	created, err := scanAnnotation(r.pool.QueryRow(ctx, query,
		a.SceneID, a.DraftID, a.StartOffset, a.EndOffset, a.Content, a.Priority))
	if err != nil {
		return nil, fmt.Errorf("create annotation: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*annotation.Annotation, error) {
	query := `SELECT ` + annotationColumns + ` FROM annotations WHERE id = $1`

	a, err := scanAnnotation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, annotation.ErrAnnotationNotFound
		}
		return nil, fmt.Errorf("find annotation: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) ListByScene(ctx context.Context, sceneID uuid.UUID) ([]*annotation.Annotation, error) {
	return r.list(ctx, `SELECT `+annotationColumns+` FROM annotations WHERE scene_id = $1 ORDER BY created_at`, sceneID)
}

func (r *postgresRepository) ListByDraft(ctx context.Context, draftID uuid.UUID) ([]*annotation.Annotation, error) {
	return r.list(ctx, `SELECT `+annotationColumns+` FROM annotations WHERE draft_id = $1 ORDER BY created_at`, draftID)
}

func (r *postgresRepository) list(ctx context.Context, query string, id uuid.UUID) ([]*annotation.Annotation, error) {
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}
	defer rows.Close()

	var annotations []*annotation.Annotation
	for rows.Next() {
		a, err := scanAnnotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan annotation: %w", err)
		}
		annotations = append(annotations, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list annotations: %w", err)
	}

	return annotations, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *annotation.Annotation) (*annotation.Annotation, error) {
	query := `
    UPDATE annotations
    SET content = $1, priority = $2, updated_at = NOW()
    WHERE id = $3
    RETURNING ` + annotationColumns

	updated, err := scanAnnotation(r.pool.QueryRow(ctx, query, a.Content, a.Priority, a.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, annotation.ErrAnnotationNotFound
		}
		return nil, fmt.Errorf("update annotation: %w", err)
	}

	return updated, nil
}

// Resolve is idempotent: resolving twice leaves the row as is
func (r *postgresRepository) Resolve(ctx context.Context, id uuid.UUID) (*annotation.Annotation, error) {
	query := `
    UPDATE annotations
    SET is_resolved = TRUE,
        updated_at = CASE WHEN is_resolved THEN updated_at ELSE NOW() END
    WHERE id = $1
    RETURNING ` + annotationColumns

	resolved, err := scanAnnotation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, annotation.ErrAnnotationNotFound
		}
		return nil, fmt.Errorf("resolve annotation: %w", err)
	}

	return resolved, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM annotations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete annotation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return annotation.ErrAnnotationNotFound
	}

	return nil
}
