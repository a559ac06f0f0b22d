package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"lingua-tutor/internal/domain"

	"golang.org/x/sync/singleflight"
)

const candoStatementsTable = "cando_statements"

// CanDoRepository reads the descriptor catalog from PostgREST. The
// catalog is immutable reference data, so concurrent full-catalog reads
// are collapsed through singleflight; results are still fetched fresh on
// every non-overlapping call.
type CanDoRepository struct {
	client  *Client
	sfGroup singleflight.Group
}

func NewCanDoRepository(client *Client) *CanDoRepository {
	return &CanDoRepository{client: client}
}

// ListAll returns the full catalog ordered by display order.
func (r *CanDoRepository) ListAll(ctx context.Context) ([]domain.CanDoStatement, error) {
	// The fetch is shared across callers, so it must not die with the
	// first caller's context; the client's own timeout still bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	result, err, _ := r.sfGroup.Do("list-all", func() (interface{}, error) {
		return r.fetch(fetchCtx, nil)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.CanDoStatement), nil
}

// ListByLevels returns the catalog subset for the given levels, ordered
// by display order.
func (r *CanDoRepository) ListByLevels(ctx context.Context, levels []string) ([]domain.CanDoStatement, error) {
	if len(levels) == 0 {
		return []domain.CanDoStatement{}, nil
	}
	return r.fetch(ctx, levels)
}

func (r *CanDoRepository) fetch(ctx context.Context, levels []string) ([]domain.CanDoStatement, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "display_order.asc")
	if len(levels) > 0 {
		quoted := make([]string, len(levels))
		for i, level := range levels {
			// "+" sub-tiers need quoting inside the PostgREST in-list.
			quoted[i] = fmt.Sprintf("%q", level)
		}
		query.Set("level", fmt.Sprintf("in.(%s)", strings.Join(quoted, ",")))
	}

	var rows []candoStatementRow
	err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   restPath + candoStatementsTable,
		query:  query,
	}, &rows)
	if err != nil {
		return nil, err
	}

	statements := make([]domain.CanDoStatement, len(rows))
	for i, row := range rows {
		statements[i] = row.toDomain()
	}
	return statements, nil
}

// InsertBatch inserts a batch of statements. Only the import command
// uses this; the serving path treats the catalog as read-only.
func (r *CanDoRepository) InsertBatch(ctx context.Context, statements []domain.CanDoStatement) error {
	rows := make([]candoStatementRow, len(statements))
	for i, stmt := range statements {
		rows[i] = candoStatementRow{
			Level:        stmt.Level,
			SkillType:    stmt.SkillType,
			Mode:         stmt.Mode,
			Activity:     stmt.Activity,
			Descriptor:   stmt.Descriptor,
			Keywords:     stmt.Keywords,
			DisplayOrder: stmt.DisplayOrder,
		}
		if stmt.Scale != "" {
			scale := stmt.Scale
			rows[i].Scale = &scale
		}
	}

	return r.client.do(ctx, request{
		method: http.MethodPost,
		path:   restPath + candoStatementsTable,
		body:   rows,
	}, nil)
}

var _ domain.CanDoRepository = (*CanDoRepository)(nil)
