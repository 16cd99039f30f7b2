package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"writerdesk-backend/internal/domains/scene"
	"writerdesk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) scene.Repository {
	return &postgresRepository{pool: pool}
}

// The annotation subquery rides along on every read and RETURNING clause
const sceneColumns = `id, chapter_id, title, content, "order", scene_type, point_of_view,
  location, time_of_day, status, notes, tags, is_draft_mode, draft_content, created_at, updated_at,
  (SELECT COUNT(*) FROM annotations a WHERE a.scene_id = scenes.id) AS annotation_count`

func scanScene(row pgx.Row) (*scene.Scene, error) {
	var s scene.Scene
	err := row.Scan(&s.ID, &s.ChapterID, &s.Title, &s.Content, &s.Order, &s.SceneType,
		&s.PointOfView, &s.Location, &s.TimeOfDay, &s.Status, &s.Notes, &s.Tags,
		&s.IsDraftMode, &s.DraftContent, &s.CreatedAt, &s.UpdatedAt, &s.AnnotationCount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts the scene at the caller's order, or appends it after
// the chapter's current maximum when none was given
func (r *postgresRepository) Create(ctx context.Context, s *scene.Scene) (*scene.Scene, error) {
	query := `
    INSERT INTO scenes (chapter_id, title, content, "order", scene_type, point_of_view,
                        location, time_of_day, status, notes, tags, is_draft_mode, draft_content,
                        created_at, updated_at)
    VALUES ($1, $2, $3,
            CASE WHEN $4 > 0 THEN $4
                 ELSE (SELECT COALESCE(MAX("order"), 0) + 1 FROM scenes WHERE chapter_id = $1)
            END,
            $5, $6, $7, $8, $9, $10, $11, FALSE, '', NOW(), NOW())
    RETURNING ` + sceneColumns

	created, err := scanScene(r.pool.QueryRow(ctx, query,
		s.ChapterID, s.Title, s.Content, s.Order, s.SceneType, s.PointOfView,
		s.Location, s.TimeOfDay, s.Status, s.Notes, s.Tags))
	if err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*scene.Scene, error) {
	query := `SELECT ` + sceneColumns + ` FROM scenes WHERE id = $1`

	s, err := scanScene(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scene.ErrSceneNotFound
		}
		return nil, fmt.Errorf("find scene: %w", err)
	}

	return s, nil
}

func (r *postgresRepository) ListByChapter(ctx context.Context, chapterID uuid.UUID) ([]*scene.Scene, error) {
	query := `SELECT ` + sceneColumns + ` FROM scenes WHERE chapter_id = $1 ORDER BY "order", created_at`

	rows, err := r.pool.Query(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer rows.Close()

	var scenes []*scene.Scene
	for rows.Next() {
		s, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		scenes = append(scenes, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}

	return scenes, nil
}

func (r *postgresRepository) Update(ctx context.Context, s *scene.Scene) (*scene.Scene, error) {
	query := `
    UPDATE scenes
    SET title = $1, content = $2, "order" = $3, scene_type = $4, point_of_view = $5,
        location = $6, time_of_day = $7, status = $8, notes = $9, tags = $10,
        is_draft_mode = $11, draft_content = $12, updated_at = NOW()
    WHERE id = $13
    RETURNING ` + sceneColumns

	updated, err := scanScene(r.pool.QueryRow(ctx, query,
		s.Title, s.Content, s.Order, s.SceneType, s.PointOfView, s.Location,
		s.TimeOfDay, s.Status, s.Notes, s.Tags, s.IsDraftMode,
		s.DraftContent, s.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scene.ErrSceneNotFound
		}
		return nil, fmt.Errorf("update scene: %w", err)
	}

	return updated, nil
}

// Delete removes the scene with its drafts and annotations. Annotations
// pointing at the scene directly or at one of its drafts both go.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		statements := []string{
			`DELETE FROM annotations a
         WHERE a.scene_id = $1
            OR a.draft_id IN (SELECT d.id FROM drafts d WHERE d.scene_id = $1)`,
			`DELETE FROM drafts WHERE scene_id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("cascade delete scene: %w", err)
			}
		}

		result, err := tx.Exec(ctx, `DELETE FROM scenes WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete scene: %w", err)
		}
		if result.RowsAffected() == 0 {
			return scene.ErrSceneNotFound
		}

		return nil
	})
}

// Reorder assigns dense 1..N order following the given id list
func (r *postgresRepository) Reorder(ctx context.Context, chapterID uuid.UUID, orderedIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id FROM scenes WHERE chapter_id = $1 FOR UPDATE`, chapterID)
		if err != nil {
			return fmt.Errorf("reorder scenes: %w", err)
		}

		existing := make(map[uuid.UUID]bool)
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("reorder scenes: %w", err)
			}
			existing[id] = true
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			return fmt.Errorf("reorder scenes: %w", err)
		}

		if len(orderedIDs) != len(existing) {
			return scene.ErrInvalidReorder
		}
		seen := make(map[uuid.UUID]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if !existing[id] || seen[id] {
				return scene.ErrInvalidReorder
			}
			seen[id] = true
		}

		for position, id := range orderedIDs {
			_, err := tx.Exec(ctx,
				`UPDATE scenes SET "order" = $1, updated_at = NOW() WHERE id = $2`,
				position+1, id)
			if err != nil {
				return fmt.Errorf("reorder scenes: %w", err)
			}
		}

		return nil
	})
}

// PublishDraft promotes draft_content into content in a single guarded
// UPDATE, so a concurrent toggle or publish cannot race the check.
func (r *postgresRepository) PublishDraft(ctx context.Context, id uuid.UUID) (*scene.Scene, bool, error) {
	query := `
    UPDATE scenes
    SET content = draft_content, draft_content = '', is_draft_mode = FALSE, updated_at = NOW()
    WHERE id = $1 AND is_draft_mode AND COALESCE(draft_content, '') <> ''
    RETURNING ` + sceneColumns

	published, err := scanScene(r.pool.QueryRow(ctx, query, id))
	if err == nil {
		return published, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("publish draft: %w", err)
	}

	// Guard did not match: either the scene is gone or there is nothing
	// to publish. Distinguish by reloading.
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	return current, false, nil
}
