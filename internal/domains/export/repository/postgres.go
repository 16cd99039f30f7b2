package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"writerdesk-backend/internal/domains/export"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) export.Repository {
	return &postgresRepository{pool: pool}
}

const exportColumns = `id, project_id, export_type, status, file_name, file_url, error_message, chapter_range_start, chapter_range_end, download_count, created_at, completed_at`

func scanExport(row pgx.Row) (*export.Export, error) {
	var e export.Export
	err := row.Scan(&e.ID, &e.ProjectID, &e.ExportType, &e.Status, &e.FileName,
		&e.FileURL, &e.ErrorMessage, &e.ChapterRangeStart, &e.ChapterRangeEnd,
		&e.DownloadCount, &e.CreatedAt, &e.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *postgresRepository) Create(ctx context.Context, e *export.Export) (*export.Export, error) {
	query := `
    INSERT INTO exports (project_id, export_type, status, file_name, file_url, error_message, chapter_range_start, chapter_range_end, download_count, created_at)
    VALUES ($1, $2, $3, '', '', '', $4, $5, 0, NOW())
    RETURNING ` + exportColumns

	created, err := scanExport(r.pool.QueryRow(ctx, query, e.ProjectID, e.ExportType, export.StatusPending,
		e.ChapterRangeStart, e.ChapterRangeEnd))
	if err != nil {
		return nil, fmt.Errorf("create export: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*export.Export, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE id = $1`

	e, err := scanExport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, export.ErrExportNotFound
		}
		return nil, fmt.Errorf("find export: %w", err)
	}

	return e, nil
}

func (r *postgresRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*export.Export, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE project_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var exports []*export.Export
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		exports = append(exports, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}

	return exports, nil
}

func (r *postgresRepository) MarkCompleted(ctx context.Context, id uuid.UUID, fileName, fileURL string) error {
	result, err := r.pool.Exec(ctx, `
    UPDATE exports
    SET status = $1, file_name = $2, file_url = $3, error_message = '', completed_at = NOW()
    WHERE id = $4 AND status <> $1`,
		export.StatusCompleted, fileName, fileURL, id)
	if err != nil {
		return fmt.Errorf("mark export completed: %w", err)
	}
	if result.RowsAffected() == 0 {
		// Already completed or gone; completing twice is harmless
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
	}

	return nil
}

func (r *postgresRepository) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	result, err := r.pool.Exec(ctx, `
    UPDATE exports
    SET status = $1, error_message = $2, completed_at = NOW()
    WHERE id = $3`,
		export.StatusFailed, message, id)
	if err != nil {
		return fmt.Errorf("mark export failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return export.ErrExportNotFound
	}

	return nil
}

func (r *postgresRepository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) (*export.Export, error) {
	query := `
    UPDATE exports
    SET download_count = download_count + 1
    WHERE id = $1
    RETURNING ` + exportColumns

	e, err := scanExport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, export.ErrExportNotFound
		}
		return nil, fmt.Errorf("increment download count: %w", err)
	}

	return e, nil
}

func (r *postgresRepository) ReapStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `
    UPDATE exports
    SET status = $1, error_message = 'export timed out', completed_at = NOW()
    WHERE status = $2 AND created_at < $3`,
		export.StatusFailed, export.StatusPending, cutoff)
	if err != nil {
		return 0, fmt.Errorf("reap stale exports: %w", err)
	}

	return result.RowsAffected(), nil
}

// Manuscript assembles ordered chapters and scenes with their live text,
// restricted to the export's chapter range when one is set
func (r *postgresRepository) Manuscript(ctx context.Context, e *export.Export) (*export.Manuscript, error) {
	var m export.Manuscript
	err := r.pool.QueryRow(ctx, `
    SELECT p.title, u.username
    FROM projects p
    JOIN users u ON u.id = p.user_id
    WHERE p.id = $1`, e.ProjectID).Scan(&m.ProjectTitle, &m.Author)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, export.ErrExportNotFound
		}
		return nil, fmt.Errorf("manuscript header: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
    SELECT c.id, c.title,
           s.title,
           CASE WHEN s.is_draft_mode AND COALESCE(s.draft_content, '') <> ''
                THEN s.draft_content
                ELSE COALESCE(s.content, '')
           END
    FROM chapters c
    LEFT JOIN scenes s ON s.chapter_id = c.id
    WHERE c.project_id = $1
      AND ($2::int IS NULL OR c."order" >= $2)
      AND ($3::int IS NULL OR c."order" <= $3)
    ORDER BY c."order", c.created_at, s."order", s.created_at`,
		e.ProjectID, e.ChapterRangeStart, e.ChapterRangeEnd)
	if err != nil {
		return nil, fmt.Errorf("manuscript body: %w", err)
	}
	defer rows.Close()

	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			chapterID    uuid.UUID
			chapterTitle string
			sceneTitle   *string
			sceneContent *string
		)
		if err := rows.Scan(&chapterID, &chapterTitle, &sceneTitle, &sceneContent); err != nil {
			return nil, fmt.Errorf("manuscript body: %w", err)
		}

		i, seen := index[chapterID]
		if !seen {
			m.Chapters = append(m.Chapters, export.ManuscriptChapter{Title: chapterTitle})
			i = len(m.Chapters) - 1
			index[chapterID] = i
		}

		if sceneTitle != nil {
			content := ""
			if sceneContent != nil {
				content = *sceneContent
			}
			m.Chapters[i].Scenes = append(m.Chapters[i].Scenes, export.ManuscriptScene{
				Title:   *sceneTitle,
				Content: content,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("manuscript body: %w", err)
	}

	return &m, nil
}
