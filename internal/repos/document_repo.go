package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"localcart/internal/domain"
	"localcart/internal/gateway"
	applog "localcart/internal/log"
)

// fixed-width so that string order is time order
const stampLayout = "2006-01-02T15:04:05.000000000Z"

var reField = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)

func now() time.Time { return time.Now().UTC() }

func stamp(t time.Time) string { return t.UTC().Format(stampLayout) }

// DocumentRepo stores schemaless documents as JSON rows and fans out live
// snapshots to subscribers after every write.
type DocumentRepo struct {
	db  *sqlx.DB
	hub *hub
}

func NewDocumentRepo(db *sqlx.DB) *DocumentRepo {
	r := &DocumentRepo{db: db}
	r.hub = newHub(r)
	return r
}

type documentRow struct {
	ID        string `db:"id"`
	Fields    string `db:"fields"`
	CreatedAt string `db:"created_at"`
}

func (row documentRow) decode() (gateway.Document, error) {
	var f gateway.Fields
	if err := json.Unmarshal([]byte(row.Fields), &f); err != nil {
		return gateway.Document{}, err
	}
	ts, err := time.Parse(stampLayout, row.CreatedAt)
	if err != nil {
		return gateway.Document{}, fmt.Errorf("document %s: bad created_at %q: %w", row.ID, row.CreatedAt, err)
	}
	return gateway.Document{ID: row.ID, Fields: f, CreatedAt: ts}, nil
}

func writeErr(err error) error { return fmt.Errorf("%w: %v", domain.ErrWrite, err) }

func (r *DocumentRepo) CreateDocument(ctx context.Context, collection string, fields gateway.Fields) (string, error) {
	if _, ok := gateway.UID(ctx); !ok {
		return "", domain.ErrUnauthenticated
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return "", writeErr(err)
	}
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO documents(collection, id, fields, created_at)
		VALUES(?, ?, ?, ?)
	`, collection, id, string(body), stamp(now())); err != nil {
		return "", writeErr(err)
	}
	r.hub.notify(collection)
	return id, nil
}

func (r *DocumentRepo) DeleteDocument(ctx context.Context, collection, id string) error {
	var owner sql.NullString
	err := r.db.GetContext(ctx, &owner, `
		SELECT json_extract(fields, '$.userId') FROM documents
		WHERE collection = ? AND id = ?
	`, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return writeErr(err)
	}
	// owned documents may only be removed by their owner
	if owner.Valid {
		if uid, _ := gateway.UID(ctx); uid != owner.String {
			return writeErr(errors.New("permission denied"))
		}
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id); err != nil {
		return writeErr(err)
	}
	r.hub.notify(collection)
	return nil
}

func (r *DocumentRepo) GetDocument(ctx context.Context, collection, id string) (gateway.Document, error) {
	var row documentRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, fields, created_at FROM documents
		WHERE collection = ? AND id = ?
	`, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return gateway.Document{}, domain.ErrNotFound
	}
	if err != nil {
		return gateway.Document{}, err
	}
	return row.decode()
}

// MergeDocument applies fields as a JSON merge patch, so keys not named are kept.
func (r *DocumentRepo) MergeDocument(ctx context.Context, collection, id string, fields gateway.Fields) error {
	if _, ok := gateway.UID(ctx); !ok {
		return domain.ErrUnauthenticated
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return writeErr(err)
	}
	ts := stamp(now())
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO documents(collection, id, fields, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
		  fields = json_patch(documents.fields, excluded.fields),
		  updated_at = excluded.updated_at
	`, collection, id, string(body), ts, ts); err != nil {
		return writeErr(err)
	}
	r.hub.notify(collection)
	return nil
}

// checkQuery rejects field names that cannot be spliced into a JSON path.
func checkQuery(q gateway.Query) error {
	if q.Field != "" && !reField.MatchString(q.Field) {
		return fmt.Errorf("bad filter field %q", q.Field)
	}
	if q.OrderBy != "" && q.OrderBy != domain.KeyCreatedAt && !reField.MatchString(q.OrderBy) {
		return fmt.Errorf("bad order field %q", q.OrderBy)
	}
	return nil
}

func (r *DocumentRepo) Subscribe(ctx context.Context, q gateway.Query, fn func(gateway.Snapshot)) (gateway.Subscription, error) {
	if err := checkQuery(q); err != nil {
		return nil, err
	}
	return r.hub.subscribe(ctx, q, fn), nil
}

// Query runs q once. Undecodable rows are logged and skipped.
func (r *DocumentRepo) Query(ctx context.Context, q gateway.Query) ([]gateway.Document, error) {
	if err := checkQuery(q); err != nil {
		return nil, err
	}
	stmt := `SELECT id, fields, created_at FROM documents WHERE collection = ?`
	args := []any{q.Collection}
	if q.Field != "" {
		stmt += ` AND json_extract(fields, '$.` + q.Field + `') = ?`
		args = append(args, q.Value)
	}
	dir := "ASC"
	if q.Descending {
		dir = "DESC"
	}
	switch q.OrderBy {
	case "":
	case domain.KeyCreatedAt:
		stmt += ` ORDER BY created_at ` + dir + `, rowid ` + dir
	default:
		stmt += ` ORDER BY json_extract(fields, '$.` + q.OrderBy + `') ` + dir
	}

	var rows []documentRow
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, err
	}
	out := make([]gateway.Document, 0, len(rows))
	for _, row := range rows {
		d, err := row.decode()
		if err != nil {
			applog.Error(nil, "documents.decode.fail", err, map[string]any{"collection": q.Collection, "id": row.ID})
			continue
		}
		out = append(out, d)
	}
	return out, nil
}
