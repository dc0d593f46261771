package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Compile-time interface checks.
var (
	_ types.Transaction  = (*Transaction)(nil)
	_ types.XrefOperator = (*Transaction)(nil)
)

// Transaction implements types.Transaction on a SQLite transaction.
// Every object it opens stays in memory, so a handle resolves to the same
// object until the transaction ends. Objects opened for write are written
// back before any query that reads membership and again on Commit.
type Transaction struct {
	id      string
	backend *Backend
	tx      *sql.Tx
	done    bool

	// opened holds every object resolved or registered so far.
	opened map[types.Handle]types.Object
	// pending holds appended objects not yet passed to AddNewlyCreated.
	pending map[types.Handle]types.Object
	// names holds the stored entry key of every opened symbol record.
	names map[types.Handle]string
	// created holds every object inserted by this transaction, in order.
	created []types.Object
}

// ID returns the transaction's UUID.
func (t *Transaction) ID() string { return t.id }

// GetObject resolves h, loading it on first use.
func (t *Transaction) GetObject(h types.Handle, mode types.OpenMode) (types.Object, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if h.IsNull() {
		return nil, fmt.Errorf("handle %s: %w", h, types.ErrInvalidHandle)
	}
	if _, ok := t.pending[h]; ok {
		return nil, fmt.Errorf("handle %s: %w", h, types.ErrNotRegistered)
	}

	obj, ok := t.opened[h]
	if !ok {
		row, err := selectRow(t.tx, h)
		if err != nil {
			return nil, err
		}
		obj, err = hydrate(row)
		if err != nil {
			return nil, err
		}
		t.backend.cacheClass(h, row.Class)
		t.opened[h] = obj
		if row.Named && row.Key != nil {
			t.names[h] = *row.Key
		}
	}
	if obj.IsErased() {
		return nil, fmt.Errorf("handle %s was erased: %w", h, types.ErrInvalidHandle)
	}
	if mode == types.ForWrite {
		obj.Base().SetOpenMode(types.ForWrite)
	}
	t.backend.metrics.resolved.WithLabelValues(obj.ClassName()).Inc()
	return obj, nil
}

// Members returns the raw members of container in handle order.
func (t *Transaction) Members(container types.Handle) ([]any, error) {
	co, err := t.container(container)
	if err != nil {
		return nil, err
	}
	if err := t.flush(); err != nil {
		return nil, err
	}
	rows, err := selectMembers(t.tx, container)
	if err != nil {
		return nil, err
	}

	members := make([]any, 0, len(rows))
	for _, r := range rows {
		t.backend.cacheClass(r.handle, r.class)
		if co.MemberStyle() == types.ByKey {
			members = append(members, types.DictionaryEntry{Key: r.key, Value: r.handle})
			continue
		}
		members = append(members, r.handle)
	}
	return members, nil
}

// Append writes obj as a new member of container and assigns its handle.
func (t *Transaction) Append(container types.Handle, key string, obj types.Object) (types.Handle, error) {
	if err := t.check(); err != nil {
		return types.Null, err
	}
	if obj == nil {
		return types.Null, fmt.Errorf("appending nil object: %w", types.ErrInvalidArgument)
	}

	cobj, ok := t.opened[container]
	if !ok || !cobj.IsWriteEnabled() {
		return types.Null, fmt.Errorf("container %s: %w", container, types.ErrNotOpenForWrite)
	}
	co, ok := cobj.(types.ContainerObject)
	if !ok {
		return types.Null, fmt.Errorf("handle %s: %w", container, types.ErrNotContainer)
	}
	if !obj.Base().IsNewObject() {
		return types.Null, fmt.Errorf("%s %s: %w", obj.ClassName(), obj.Handle(), types.ErrAlreadyResident)
	}
	if !co.Accepts(obj) {
		return types.Null, fmt.Errorf("%s into %s: %w", obj.ClassName(), co.ClassName(), types.ErrRejectedMember)
	}

	row := &objectRow{Class: obj.ClassName(), Owner: container}
	switch co.MemberStyle() {
	case types.ByName:
		n, ok := obj.(types.Named)
		if !ok {
			return types.Null, fmt.Errorf("%s has no name: %w", obj.ClassName(), types.ErrRejectedMember)
		}
		name := n.EntryName()
		if !types.IsValidName(name, true) {
			return types.Null, fmt.Errorf("%q: %w", name, types.ErrInvalidName)
		}
		row.Key = &name
		row.Named = true
	case types.ByKey:
		if key == "" {
			if n, ok := obj.(types.Named); ok {
				key = n.EntryName()
			}
		}
		if key == "" {
			return types.Null, fmt.Errorf("empty dictionary key: %w", types.ErrInvalidName)
		}
		row.Key = &key
	}

	if row.Key != nil {
		if err := t.flush(); err != nil {
			return types.Null, err
		}
		exists, err := keyExists(t.tx, container, *row.Key)
		if err != nil {
			return types.Null, err
		}
		if exists {
			return types.Null, fmt.Errorf("%q in %s: %w", *row.Key, container, types.ErrDuplicateName)
		}
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return types.Null, fmt.Errorf("encoding %s: %w", obj.ClassName(), err)
	}
	row.Data = data

	h, err := insertRow(t.tx, row)
	if err != nil {
		return types.Null, err
	}
	obj.Base().MakeResident(h, container)
	t.created = append(t.created, obj)
	t.pending[h] = obj
	if row.Named {
		t.names[h] = *row.Key
	}
	t.backend.cacheClass(h, row.Class)
	t.backend.metrics.appended.WithLabelValues(row.Class).Inc()
	return h, nil
}

// AddNewlyCreated registers an appended object, leaving it open for write.
func (t *Transaction) AddNewlyCreated(obj types.Object) error {
	if err := t.check(); err != nil {
		return err
	}
	if obj == nil {
		return fmt.Errorf("registering nil object: %w", types.ErrInvalidArgument)
	}
	h := obj.Handle()
	if p, ok := t.pending[h]; !ok || p != obj {
		return fmt.Errorf("%s %s was not appended in this transaction: %w", obj.ClassName(), h, types.ErrInvalidArgument)
	}
	delete(t.pending, h)
	obj.Base().SetOpenMode(types.ForWrite)
	t.opened[h] = obj
	return nil
}

// Count counts the live members of container with one query.
func (t *Transaction) Count(container types.Handle) (int64, error) {
	if _, err := t.container(container); err != nil {
		return 0, err
	}
	if err := t.flush(); err != nil {
		return 0, err
	}
	return countMembers(t.tx, container)
}

// ClassOf returns the class stored for h.
func (t *Transaction) ClassOf(h types.Handle) (string, error) {
	if err := t.check(); err != nil {
		return "", err
	}
	if c, ok := t.backend.cachedClass(h); ok {
		return c, nil
	}
	row, err := selectRow(t.tx, h)
	if err != nil {
		return "", err
	}
	t.backend.cacheClass(h, row.Class)
	return row.Class, nil
}

// Lookup returns the live member of container stored under name.
func (t *Transaction) Lookup(container types.Handle, name string) (types.Handle, error) {
	if _, err := t.container(container); err != nil {
		return types.Null, err
	}
	if err := t.flush(); err != nil {
		return types.Null, err
	}
	return selectByKey(t.tx, container, name)
}

// Contains reports whether member is a live member of container.
func (t *Transaction) Contains(container, member types.Handle) (bool, error) {
	if _, err := t.container(container); err != nil {
		return false, err
	}
	if err := t.flush(); err != nil {
		return false, err
	}
	return isMember(t.tx, container, member)
}

// SetDefaults copies the header defaults onto obj when it accepts them.
func (t *Transaction) SetDefaults(obj types.Object) error {
	d, ok := obj.(types.Defaultable)
	if !ok {
		return nil
	}
	root, err := t.GetObject(types.Root, types.ForRead)
	if err != nil {
		return err
	}
	dp, ok := root.(types.DefaultsProvider)
	if !ok {
		return fmt.Errorf("root object %s carries no defaults: %w", root.ClassName(), types.ErrInvalidHandle)
	}
	d.SetDefaults(dp.Defaults())
	return nil
}

// Commit writes back every object opened for write and commits. Objects
// appended but never registered fail the commit, which then rolls back.
func (t *Transaction) Commit() error {
	if err := t.check(); err != nil {
		return err
	}
	if len(t.pending) > 0 {
		t.rollback()
		return fmt.Errorf("%d appended objects: %w", len(t.pending), types.ErrNotRegistered)
	}
	if err := t.flush(); err != nil {
		t.rollback()
		return err
	}
	if err := t.tx.Commit(); err != nil {
		t.undoCreated()
		t.end()
		t.backend.metrics.aborts.Inc()
		return fmt.Errorf("committing transaction: %w", err)
	}
	t.end()
	t.backend.metrics.commits.Inc()
	t.backend.log.Debug("transaction committed", "tx", t.id)
	return nil
}

// Abort discards every change. Idempotent.
func (t *Transaction) Abort() error {
	if t.done {
		return nil
	}
	t.rollback()
	return nil
}

func (t *Transaction) rollback() {
	if err := t.tx.Rollback(); err != nil {
		t.backend.log.Warn("rollback failed", "tx", t.id, "error", err)
	}
	t.undoCreated()
	t.end()
	t.backend.metrics.aborts.Inc()
	t.backend.log.Debug("transaction aborted", "tx", t.id)
}

// undoCreated detaches the objects this transaction inserted from their
// rolled-back handles.
func (t *Transaction) undoCreated() {
	hs := make([]types.Handle, 0, len(t.created))
	for _, obj := range t.created {
		hs = append(hs, obj.Handle())
		obj.Base().MakeTransient()
	}
	t.backend.forgetClasses(hs)
	t.created = nil
}

func (t *Transaction) end() {
	t.done = true
	t.backend.release(t)
}

func (t *Transaction) check() error {
	if t.done {
		return types.ErrTransactionDone
	}
	return nil
}

// container resolves h for read and checks that it is a container.
func (t *Transaction) container(h types.Handle) (types.ContainerObject, error) {
	obj, err := t.GetObject(h, types.ForRead)
	if err != nil {
		return nil, err
	}
	co, ok := obj.(types.ContainerObject)
	if !ok {
		return nil, fmt.Errorf("handle %s (%s): %w", h, obj.ClassName(), types.ErrNotContainer)
	}
	return co, nil
}

// flush writes back every object opened for write. A renamed symbol record
// carries its new name into the entry key; only a changed name is
// validated, so reserved names such as "*Model_Space" survive.
func (t *Transaction) flush() error {
	for h, obj := range t.opened {
		if !obj.IsWriteEnabled() {
			continue
		}
		var name *string
		if stored, ok := t.names[h]; ok && !obj.IsErased() {
			if n, ok := obj.(types.Named); ok && n.EntryName() != stored {
				s := n.EntryName()
				if !types.IsValidName(s, true) {
					return fmt.Errorf("%s %s named %q: %w", obj.ClassName(), h, s, types.ErrInvalidName)
				}
				name = &s
			}
		}
		data, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", obj.ClassName(), h, err)
		}
		if err := updateRow(t.tx, h, data, obj.IsErased(), name); err != nil {
			return err
		}
		if name != nil {
			t.names[h] = *name
		}
	}
	return nil
}

// insert writes obj under owner without the checks Append applies. Seeding
// and xref binding use it for the header, the tables and reserved names.
// The object is registered open for write.
func (t *Transaction) insert(h, owner types.Handle, key *string, named bool, obj types.Object) (types.Handle, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return types.Null, fmt.Errorf("encoding %s: %w", obj.ClassName(), err)
	}
	row := &objectRow{Handle: h, Class: obj.ClassName(), Owner: owner, Key: key, Named: named, Data: data}
	h, err = insertRow(t.tx, row)
	if err != nil {
		return types.Null, err
	}
	obj.Base().MakeResident(h, owner)
	obj.Base().SetOpenMode(types.ForWrite)
	t.created = append(t.created, obj)
	t.opened[h] = obj
	if named && key != nil {
		t.names[h] = *key
	}
	t.backend.cacheClass(h, row.Class)
	return h, nil
}
