package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// objectRow is one row of the objects table. It is also the JSONL record
// format used by Export and Import.
type objectRow struct {
	Handle types.Handle    `json:"handle"`
	Class  string          `json:"class"`
	Owner  types.Handle    `json:"owner"`
	Key    *string         `json:"key,omitempty"`
	Named  bool            `json:"named,omitempty"`
	Erased bool            `json:"erased,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// selectRow reads the row stored under h.
// Returns ErrInvalidHandle if there is none.
func selectRow(q queryer, h types.Handle) (*objectRow, error) {
	var r objectRow
	var key sql.NullString
	var data string
	err := q.QueryRow(
		"SELECT handle, class, owner, entry_key, named, erased, data FROM objects WHERE handle = ?",
		int64(h),
	).Scan(&r.Handle, &r.Class, &r.Owner, &key, &r.Named, &r.Erased, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("handle %s: %w", h, types.ErrInvalidHandle)
	}
	if err != nil {
		return nil, fmt.Errorf("selecting object %s: %w", h, err)
	}
	if key.Valid {
		r.Key = &key.String
	}
	r.Data = json.RawMessage(data)
	return &r, nil
}

// hydrate builds the registered class for r and decodes its data.
func hydrate(r *objectRow) (types.Object, error) {
	obj, err := types.NewObject(r.Class)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(r.Data, obj); err != nil {
		return nil, fmt.Errorf("decoding object %s: %w", r.Handle, err)
	}
	base := obj.Base()
	base.MakeResident(r.Handle, r.Owner)
	base.SetErased(r.Erased)
	base.SetOpenMode(types.ForRead)
	return obj, nil
}

// insertRow writes a new row and returns the handle SQLite assigned. A
// non-null r.Handle is kept as is.
func insertRow(q queryer, r *objectRow) (types.Handle, error) {
	var handle any
	if !r.Handle.IsNull() {
		handle = int64(r.Handle)
	}
	res, err := q.Exec(
		"INSERT INTO objects (handle, class, owner, entry_key, named, erased, data) VALUES (?, ?, ?, ?, ?, ?, ?)",
		handle, r.Class, int64(r.Owner), nullKey(r.Key), r.Named, r.Erased, string(r.Data),
	)
	if err != nil {
		return types.Null, storeError("inserting object", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Null, fmt.Errorf("reading inserted handle: %w", err)
	}
	return types.Handle(id), nil
}

// updateRow rewrites the data and erased flag of h. When name is non-nil
// and the row is named, its entry key follows.
func updateRow(q queryer, h types.Handle, data []byte, erased bool, name *string) error {
	_, err := q.Exec(
		`UPDATE objects SET data = ?, erased = ?,
		    entry_key = CASE WHEN named = 1 AND ? IS NOT NULL THEN ? ELSE entry_key END
		 WHERE handle = ?`,
		string(data), erased, nullKey(name), nullKey(name), int64(h),
	)
	if err != nil {
		return storeError(fmt.Sprintf("updating object %s", h), err)
	}
	return nil
}

// memberRow is the part of a row a member listing needs.
type memberRow struct {
	handle types.Handle
	class  string
	key    string
}

// selectMembers lists the live members of container in handle order.
func selectMembers(q queryer, container types.Handle) ([]memberRow, error) {
	rows, err := q.Query(
		"SELECT handle, class, COALESCE(entry_key, '') FROM objects WHERE owner = ? AND erased = 0 ORDER BY handle",
		int64(container),
	)
	if err != nil {
		return nil, fmt.Errorf("listing members of %s: %w", container, err)
	}
	defer rows.Close()

	var members []memberRow
	for rows.Next() {
		var m memberRow
		if err := rows.Scan(&m.handle, &m.class, &m.key); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// countMembers counts the live members of container.
func countMembers(q queryer, container types.Handle) (int64, error) {
	var n int64
	err := q.QueryRow(
		"SELECT COUNT(*) FROM objects WHERE owner = ? AND erased = 0", int64(container),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting members of %s: %w", container, err)
	}
	return n, nil
}

// selectByKey returns the live member of container stored under key.
// Returns ErrNotFound if there is none.
func selectByKey(q queryer, container types.Handle, key string) (types.Handle, error) {
	var h types.Handle
	err := q.QueryRow(
		"SELECT handle FROM objects WHERE owner = ? AND entry_key = ? AND erased = 0", int64(container), key,
	).Scan(&h)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Null, fmt.Errorf("%q in %s: %w", key, container, types.ErrNotFound)
	}
	if err != nil {
		return types.Null, fmt.Errorf("looking up %q in %s: %w", key, container, err)
	}
	return h, nil
}

// isMember reports whether member is a live member of container.
func isMember(q queryer, container, member types.Handle) (bool, error) {
	var n int
	err := q.QueryRow(
		"SELECT COUNT(*) FROM objects WHERE handle = ? AND owner = ? AND erased = 0", int64(member), int64(container),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking member %s of %s: %w", member, container, err)
	}
	return n > 0, nil
}

// selectNamedWithPrefix lists live named rows whose entry key starts with
// prefix, across all symbol tables.
func selectNamedWithPrefix(q queryer, prefix string) ([]types.Handle, error) {
	rows, err := q.Query(
		`SELECT handle FROM objects
		 WHERE named = 1 AND erased = 0 AND substr(entry_key, 1, length(?)) = ?
		 ORDER BY handle`,
		prefix, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("listing symbols with prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	var out []types.Handle
	for rows.Next() {
		var h types.Handle
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scanning symbol: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// keyExists reports whether container already has a live member under key.
func keyExists(q queryer, container types.Handle, key string) (bool, error) {
	_, err := selectByKey(q, container, key)
	if errors.Is(err, types.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func nullKey(k *string) sql.NullString {
	if k == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *k, Valid: true}
}

// storeError classifies SQLite constraint failures.
func storeError(op string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s: %w", op, types.ErrDuplicateName)
	}
	return fmt.Errorf("%s: %w", op, err)
}
