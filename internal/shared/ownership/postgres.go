package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

// One join query per kind. Each walks up to the owning project in a single
// round trip; a missing row anywhere in the chain produces pgx.ErrNoRows.
var chainQueries = map[Kind]string{
	KindProject: `
    SELECT p.id, p.user_id
    FROM projects p
    WHERE p.id = $1
  `,
	KindChapter: `
    SELECT p.id, p.user_id
    FROM chapters c
    JOIN projects p ON p.id = c.project_id
    WHERE c.id = $1
  `,
	KindScene: `
    SELECT p.id, p.user_id
    FROM scenes s
    JOIN chapters c ON c.id = s.chapter_id
    JOIN projects p ON p.id = c.project_id
    WHERE s.id = $1
  `,
	KindDraft: `
    SELECT p.id, p.user_id
    FROM drafts d
    JOIN scenes s ON s.id = d.scene_id
    JOIN chapters c ON c.id = s.chapter_id
    JOIN projects p ON p.id = c.project_id
    WHERE d.id = $1
  `,
	// Annotations anchor to a draft or directly to a scene
	KindAnnotation: `
    SELECT p.id, p.user_id
    FROM annotations a
    LEFT JOIN drafts d ON d.id = a.draft_id
    JOIN scenes s ON s.id = COALESCE(a.scene_id, d.scene_id)
    JOIN chapters c ON c.id = s.chapter_id
    JOIN projects p ON p.id = c.project_id
    WHERE a.id = $1
  `,
	KindExport: `
    SELECT p.id, p.user_id
    FROM exports e
    JOIN projects p ON p.id = e.project_id
    WHERE e.id = $1
  `,
}

func (s *postgresStore) FindOwnerChain(ctx context.Context, kind Kind, id uuid.UUID) (*Resource, error) {
	query, ok := chainQueries[kind]
	if !ok {
		return nil, fmt.Errorf("ownership: unknown resource kind %q", kind)
	}

	var projectID, ownerID uuid.UUID
	err := s.pool.QueryRow(ctx, query, id).Scan(&projectID, &ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ownership: resolve %s %s: %w", kind, id, err)
	}

	return &Resource{
		Kind:      kind,
		ID:        id,
		ProjectID: projectID,
		OwnerID:   ownerID,
	}, nil
}
