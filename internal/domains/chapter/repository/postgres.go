package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"writerdesk-backend/internal/domains/chapter"
	"writerdesk-backend/internal/shared/utils"
	"writerdesk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) chapter.Repository {
	return &postgresRepository{pool: pool}
}

const chapterColumns = `id, project_id, title, description, notes, "order", is_active, created_at, updated_at`

func scanChapter(row pgx.Row) (*chapter.Chapter, error) {
	var ch chapter.Chapter
	err := row.Scan(&ch.ID, &ch.ProjectID, &ch.Title, &ch.Description, &ch.Notes,
		&ch.Order, &ch.IsActive, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// Create inserts the chapter at the caller's order, or appends it after
// the project's current maximum when none was given. The fallback is
// computed inside the INSERT so concurrent creates cannot read a stale
// maximum outside the statement.
func (r *postgresRepository) Create(ctx context.Context, ch *chapter.Chapter) (*chapter.Chapter, error) {
	query := `
    INSERT INTO chapters (project_id, title, description, notes, "order", is_active, created_at, updated_at)
    VALUES ($1, $2, $3, $4,
            CASE WHEN $5 > 0 THEN $5
                 ELSE (SELECT COALESCE(MAX("order"), 0) + 1 FROM chapters WHERE project_id = $1)
            END,
            TRUE, NOW(), NOW())
    RETURNING ` + chapterColumns

	created, err := scanChapter(r.pool.QueryRow(ctx, query, ch.ProjectID, ch.Title, ch.Description, ch.Notes, ch.Order))
	if err != nil {
		return nil, fmt.Errorf("create chapter: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*chapter.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE id = $1`

	ch, err := scanChapter(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, chapter.ErrChapterNotFound
		}
		return nil, fmt.Errorf("find chapter: %w", err)
	}

	return ch, nil
}

func (r *postgresRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*chapter.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE project_id = $1 ORDER BY "order", created_at`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*chapter.Chapter
	for rows.Next() {
		ch, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}

	return chapters, nil
}

func (r *postgresRepository) Update(ctx context.Context, ch *chapter.Chapter) (*chapter.Chapter, error) {
	query := `
    UPDATE chapters
    SET title = $1, description = $2, notes = $3, "order" = $4, is_active = $5, updated_at = NOW()
    WHERE id = $6
    RETURNING ` + chapterColumns

	updated, err := scanChapter(r.pool.QueryRow(ctx, query,
		ch.Title, ch.Description, ch.Notes, ch.Order, ch.IsActive, ch.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, chapter.ErrChapterNotFound
		}
		return nil, fmt.Errorf("update chapter: %w", err)
	}

	return updated, nil
}

// Delete removes the chapter and every scene, draft and annotation under
// it. Sibling chapters are not renumbered.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		statements := []string{
			`DELETE FROM annotations a
         USING scenes s
         WHERE s.id = COALESCE(a.scene_id, (SELECT d.scene_id FROM drafts d WHERE d.id = a.draft_id))
           AND s.chapter_id = $1`,
			`DELETE FROM drafts d
         USING scenes s
         WHERE s.id = d.scene_id AND s.chapter_id = $1`,
			`DELETE FROM scenes WHERE chapter_id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("cascade delete chapter: %w", err)
			}
		}

		result, err := tx.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete chapter: %w", err)
		}
		if result.RowsAffected() == 0 {
			return chapter.ErrChapterNotFound
		}

		return nil
	})
}

// Reorder assigns dense 1..N order following the given id list
func (r *postgresRepository) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id FROM chapters WHERE project_id = $1 FOR UPDATE`, projectID)
		if err != nil {
			return fmt.Errorf("reorder chapters: %w", err)
		}

		existing := make(map[uuid.UUID]bool)
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("reorder chapters: %w", err)
			}
			existing[id] = true
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			return fmt.Errorf("reorder chapters: %w", err)
		}

		if len(orderedIDs) != len(existing) {
			return chapter.ErrInvalidReorder
		}
		seen := make(map[uuid.UUID]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if !existing[id] || seen[id] {
				return chapter.ErrInvalidReorder
			}
			seen[id] = true
		}

		for position, id := range orderedIDs {
			_, err := tx.Exec(ctx,
				`UPDATE chapters SET "order" = $1, updated_at = NOW() WHERE id = $2`,
				position+1, id)
			if err != nil {
				return fmt.Errorf("reorder chapters: %w", err)
			}
		}

		return nil
	})
}

const liveSceneContent = `
  CASE WHEN s.is_draft_mode AND COALESCE(s.draft_content, '') <> ''
       THEN s.draft_content
       ELSE COALESCE(s.content, '')
  END`

// Stats computes scene count and live word count on read
func (r *postgresRepository) Stats(ctx context.Context, id uuid.UUID) (*chapter.Stats, error) {
	rows, err := r.pool.Query(ctx, `
    SELECT `+liveSceneContent+`
    FROM scenes s
    WHERE s.chapter_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("chapter stats: %w", err)
	}
	defer rows.Close()

	stats := &chapter.Stats{}
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("chapter stats: %w", err)
		}
		stats.SceneCount++
		stats.WordCount += utils.CountWords(content)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("chapter stats: %w", err)
	}

	return stats, nil
}
