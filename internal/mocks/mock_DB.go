package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	"github.com/lthummus/elapsed/internal/db"
)

// NewMockDB creates a new instance of MockDB. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockDB(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDB {
	m := &MockDB{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockDB is a mock type for the db.DB type
type MockDB struct {
	mock.Mock
}

// ClearRuns provides a mock function for the type MockDB
func (_m *MockDB) ClearRuns(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ClearRuns")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (int64, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) int64); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(int64)
	}
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// Close provides a mock function for the type MockDB
func (_m *MockDB) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}
	return r0
}

// GetRun provides a mock function for the type MockDB
func (_m *MockDB) GetRun(ctx context.Context, id string) (*db.Run, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetRun")
	}

	var r0 *db.Run
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*db.Run, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *db.Run); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*db.Run)
		}
	}
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// ListRuns provides a mock function for the type MockDB
func (_m *MockDB) ListRuns(ctx context.Context, limit int) ([]*db.Run, error) {
	ret := _m.Called(ctx, limit)

	if len(ret) == 0 {
		panic("no return value specified for ListRuns")
	}

	var r0 []*db.Run
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) ([]*db.Run, error)); ok {
		return rf(ctx, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) []*db.Run); ok {
		r0 = rf(ctx, limit)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*db.Run)
		}
	}
	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, limit)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

// SaveRun provides a mock function for the type MockDB
func (_m *MockDB) SaveRun(ctx context.Context, run *db.Run) error {
	ret := _m.Called(ctx, run)

	if len(ret) == 0 {
		panic("no return value specified for SaveRun")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *db.Run) error); ok {
		r0 = rf(ctx, run)
	} else {
		r0 = ret.Error(0)
	}
	return r0
}
