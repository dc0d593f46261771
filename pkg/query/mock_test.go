package query

import (
	"github.com/stretchr/testify/mock"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// mockTx is a scripted transaction that records every store call.
type mockTx struct {
	mock.Mock
}

func (m *mockTx) ID() string { return "mock" }

func (m *mockTx) GetObject(h types.Handle, mode types.OpenMode) (types.Object, error) {
	args := m.Called(h, mode)
	obj, _ := args.Get(0).(types.Object)
	return obj, args.Error(1)
}

func (m *mockTx) Members(container types.Handle) ([]any, error) {
	args := m.Called(container)
	members, _ := args.Get(0).([]any)
	return members, args.Error(1)
}

func (m *mockTx) Append(container types.Handle, key string, obj types.Object) (types.Handle, error) {
	args := m.Called(container, key, obj)
	return args.Get(0).(types.Handle), args.Error(1)
}

func (m *mockTx) AddNewlyCreated(obj types.Object) error {
	return m.Called(obj).Error(0)
}

func (m *mockTx) Count(container types.Handle) (int64, error) {
	args := m.Called(container)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTx) ClassOf(h types.Handle) (string, error) {
	args := m.Called(h)
	return args.String(0), args.Error(1)
}

func (m *mockTx) Lookup(container types.Handle, name string) (types.Handle, error) {
	args := m.Called(container, name)
	return args.Get(0).(types.Handle), args.Error(1)
}

func (m *mockTx) Contains(container, member types.Handle) (bool, error) {
	args := m.Called(container, member)
	return args.Bool(0), args.Error(1)
}

func (m *mockTx) SetDefaults(obj types.Object) error {
	return m.Called(obj).Error(0)
}

func (m *mockTx) Commit() error { return m.Called().Error(0) }

func (m *mockTx) Abort() error { return m.Called().Error(0) }
