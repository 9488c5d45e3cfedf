// Package mocks holds gomock doubles for the storage repositories.
package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/storage"
)

var (
	_ storage.UserRepository = (*MockRepository[entities.User])(nil)
	_ storage.BookRepository = (*MockRepository[entities.Book])(nil)
)

// MockRepository is a mock of storage.Repository[E, uint].
type MockRepository[E any] struct {
	ctrl     *gomock.Controller
	recorder *MockRepositoryMockRecorder[E]
}

// MockRepositoryMockRecorder is the mock recorder for MockRepository.
type MockRepositoryMockRecorder[E any] struct {
	mock *MockRepository[E]
}

// NewMockRepository creates a new mock instance.
func NewMockRepository[E any](ctrl *gomock.Controller) *MockRepository[E] {
	mock := &MockRepository[E]{ctrl: ctrl}
	mock.recorder = &MockRepositoryMockRecorder[E]{mock}
	return mock
}

// NewMockUserRepository creates a mock of storage.UserRepository.
func NewMockUserRepository(ctrl *gomock.Controller) *MockRepository[entities.User] {
	return NewMockRepository[entities.User](ctrl)
}

// NewMockBookRepository creates a mock of storage.BookRepository.
func NewMockBookRepository(ctrl *gomock.Controller) *MockRepository[entities.Book] {
	return NewMockRepository[entities.Book](ctrl)
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRepository[E]) EXPECT() *MockRepositoryMockRecorder[E] {
	return m.recorder
}

// Save mocks base method.
func (m *MockRepository[E]) Save(ctx context.Context, entity E) (E, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ctx, entity)
	ret0, _ := ret[0].(E)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Save indicates an expected call of Save.
func (mr *MockRepositoryMockRecorder[E]) Save(ctx, entity interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockRepository[E])(nil).Save), ctx, entity)
}

// FindByID mocks base method.
func (m *MockRepository[E]) FindByID(ctx context.Context, id uint) (E, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByID", ctx, id)
	ret0, _ := ret[0].(E)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// FindByID indicates an expected call of FindByID.
func (mr *MockRepositoryMockRecorder[E]) FindByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByID", reflect.TypeOf((*MockRepository[E])(nil).FindByID), ctx, id)
}

// FindAll mocks base method.
func (m *MockRepository[E]) FindAll(ctx context.Context) ([]E, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindAll", ctx)
	ret0, _ := ret[0].([]E)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindAll indicates an expected call of FindAll.
func (mr *MockRepositoryMockRecorder[E]) FindAll(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindAll", reflect.TypeOf((*MockRepository[E])(nil).FindAll), ctx)
}

// ExistsByID mocks base method.
func (m *MockRepository[E]) ExistsByID(ctx context.Context, id uint) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExistsByID", ctx, id)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ExistsByID indicates an expected call of ExistsByID.
func (mr *MockRepositoryMockRecorder[E]) ExistsByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExistsByID", reflect.TypeOf((*MockRepository[E])(nil).ExistsByID), ctx, id)
}

// DeleteByID mocks base method.
func (m *MockRepository[E]) DeleteByID(ctx context.Context, id uint) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteByID", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteByID indicates an expected call of DeleteByID.
func (mr *MockRepositoryMockRecorder[E]) DeleteByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteByID", reflect.TypeOf((*MockRepository[E])(nil).DeleteByID), ctx, id)
}
