package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"writerdesk-backend/internal/domains/project"
	"writerdesk-backend/internal/shared/utils"
	"writerdesk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) project.Repository {
	return &postgresRepository{pool: pool}
}

const projectColumns = `id, user_id, title, description, created_at, updated_at`

func scanProject(row pgx.Row) (*project.Project, error) {
	var p project.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project
func (r *postgresRepository) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	query := `
    INSERT INTO projects (user_id, title, description, created_at, updated_at)
    VALUES ($1, $2, $3, NOW(), NOW())
    RETURNING ` + projectColumns

	created, err := scanProject(r.pool.QueryRow(ctx, query, p.UserID, p.Title, p.Description))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return created, nil
}

// FindByID retrieves a project by ID
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	p, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	return p, nil
}

// ListByUser retrieves all projects owned by a user
func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

// Update persists title/description changes
func (r *postgresRepository) Update(ctx context.Context, p *project.Project) (*project.Project, error) {
	query := `
    UPDATE projects
    SET title = $1, description = $2, updated_at = NOW()
    WHERE id = $3
    RETURNING ` + projectColumns

	updated, err := scanProject(r.pool.QueryRow(ctx, query, p.Title, p.Description, p.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}

	return updated, nil
}

// Delete removes the project and every descendant in a single transaction.
// The schema also declares ON DELETE CASCADE; the explicit deletes keep the
// cascade observable and transactional regardless of schema drift.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		statements := []string{
			`DELETE FROM annotations a
         USING scenes s, chapters c
         WHERE s.id = COALESCE(a.scene_id, (SELECT d.scene_id FROM drafts d WHERE d.id = a.draft_id))
           AND c.id = s.chapter_id AND c.project_id = $1`,
			`DELETE FROM drafts d
         USING scenes s, chapters c
         WHERE s.id = d.scene_id AND c.id = s.chapter_id AND c.project_id = $1`,
			`DELETE FROM scenes s
         USING chapters c
         WHERE c.id = s.chapter_id AND c.project_id = $1`,
			`DELETE FROM chapters WHERE project_id = $1`,
			`DELETE FROM autosave_versions WHERE project_id = $1`,
			`DELETE FROM exports WHERE project_id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("cascade delete project: %w", err)
			}
		}

		result, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		if result.RowsAffected() == 0 {
			return project.ErrProjectNotFound
		}

		return nil
	})
}

// liveSceneContent selects draft content while draft mode is active and the
// draft text is non-empty, otherwise the published content.
const liveSceneContent = `
  CASE WHEN s.is_draft_mode AND COALESCE(s.draft_content, '') <> ''
       THEN s.draft_content
       ELSE COALESCE(s.content, '')
  END`

// Stats computes chapter count and live word count on read
func (r *postgresRepository) Stats(ctx context.Context, id uuid.UUID) (*project.Stats, error) {
	var chapterCount int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM chapters WHERE project_id = $1`, id).Scan(&chapterCount)
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
    SELECT `+liveSceneContent+`
    FROM scenes s
    JOIN chapters c ON c.id = s.chapter_id
    WHERE c.project_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}
	defer rows.Close()

	wordCount := 0
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("project stats: %w", err)
		}
		wordCount += utils.CountWords(content)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}

	return &project.Stats{ChapterCount: chapterCount, WordCount: wordCount}, nil
}

// Timeline returns ordered chapters with their ordered scenes
func (r *postgresRepository) Timeline(ctx context.Context, id uuid.UUID) (*project.TimelineResponse, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
    SELECT c.id, c.title, c."order",
           s.id, s.title, s."order", s.created_at, `+liveSceneContent+`
    FROM chapters c
    LEFT JOIN scenes s ON s.chapter_id = c.id
    WHERE c.project_id = $1
    ORDER BY c."order", c.created_at, s."order", s.created_at`, id)
	if err != nil {
		return nil, fmt.Errorf("project timeline: %w", err)
	}
	defer rows.Close()

	timeline := make([]project.TimelineChapter, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			chapterID    uuid.UUID
			chapterTitle string
			chapterOrder int
			sceneID      *uuid.UUID
			sceneTitle   *string
			sceneOrder   *int
			sceneCreated *time.Time
			sceneContent *string
		)
		if err := rows.Scan(&chapterID, &chapterTitle, &chapterOrder,
			&sceneID, &sceneTitle, &sceneOrder, &sceneCreated, &sceneContent); err != nil {
			return nil, fmt.Errorf("project timeline: %w", err)
		}

		i, seen := index[chapterID]
		if !seen {
			timeline = append(timeline, project.TimelineChapter{
				ChapterID: chapterID,
				Title:     chapterTitle,
				Order:     chapterOrder,
				Scenes:    []project.TimelineScene{},
			})
			i = len(timeline) - 1
			index[chapterID] = i
		}

		if sceneID != nil {
			content := ""
			if sceneContent != nil {
				content = *sceneContent
			}
			timeline[i].Scenes = append(timeline[i].Scenes, project.TimelineScene{
				SceneID:   *sceneID,
				Title:     *sceneTitle,
				Order:     *sceneOrder,
				WordCount: utils.CountWords(content),
				CreatedAt: *sceneCreated,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("project timeline: %w", err)
	}

	return &project.TimelineResponse{
		ProjectID:    p.ID,
		ProjectTitle: p.Title,
		Timeline:     timeline,
	}, nil
}
