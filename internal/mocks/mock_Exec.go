package mocks

import (
	"io"

	mock "github.com/stretchr/testify/mock"
)

// NewMockExec creates a new instance of MockExec. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockExec(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockExec {
	m := &MockExec{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockExec is a mock type for the runner.Exec type
type MockExec struct {
	mock.Mock
}

func variadicCall(_m *MockExec, method string, lead []any, args []string) mock.Arguments {
	callArgs := lead
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	return _m.MethodCalled(method, callArgs...)
}

// Execute provides a mock function for the type MockExec
func (_m *MockExec) Execute(command string, args ...string) ([]byte, error) {
	ret := variadicCall(_m, "Execute", []any{command}, args)

	if len(ret) == 0 {
		panic("no return value specified for Execute")
	}

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// Run provides a mock function for the type MockExec
func (_m *MockExec) Run(w io.Writer, command string, args ...string) error {
	ret := variadicCall(_m, "Run", []any{w, command}, args)

	if len(ret) == 0 {
		panic("no return value specified for Run")
	}

	return ret.Error(0)
}

// Stream provides a mock function for the type MockExec
func (_m *MockExec) Stream(w io.Writer, r io.Reader, command string, args ...string) error {
	ret := variadicCall(_m, "Stream", []any{w, r, command}, args)

	if len(ret) == 0 {
		panic("no return value specified for Stream")
	}

	if rf, ok := ret.Get(0).(func(io.Writer, io.Reader, string, ...string) error); ok {
		return rf(w, r, command, args...)
	}
	return ret.Error(0)
}

// Terminal provides a mock function for the type MockExec
func (_m *MockExec) Terminal(command string, args ...string) error {
	ret := variadicCall(_m, "Terminal", []any{command}, args)

	if len(ret) == 0 {
		panic("no return value specified for Terminal")
	}

	return ret.Error(0)
}

// StreamSplit provides a mock function for the type MockExec
func (_m *MockExec) StreamSplit(stdout io.Writer, stderr io.Writer, stdin io.Reader, command string, args ...string) error {
	ret := variadicCall(_m, "StreamSplit", []any{stdout, stderr, stdin, command}, args)

	if len(ret) == 0 {
		panic("no return value specified for StreamSplit")
	}

	if rf, ok := ret.Get(0).(func(io.Writer, io.Writer, io.Reader, string, ...string) error); ok {
		return rf(stdout, stderr, stdin, command, args...)
	}
	return ret.Error(0)
}
