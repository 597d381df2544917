package api

import (
	"errors"
	"fmt"
)

// ErrFetchFailure 是所有与服务端交互失败的统一哨兵：传输、HTTP 状态或解码错误。
var ErrFetchFailure = errors.New("fetch failure")

// FetchError 描述一次失败的请求。
type FetchError struct {
	Op        string
	Status    int
	RequestID string
	Err       error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: HTTP %d", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is 让 errors.Is(err, ErrFetchFailure) 对任意 FetchError 成立。
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailure
}

func newFetchError(op, requestID string, status int, err error) *FetchError {
	return &FetchError{Op: op, Status: status, RequestID: requestID, Err: err}
}

// RequestIDOf 从错误链中取出请求 ID，便于日志关联。
func RequestIDOf(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.RequestID
	}
	return ""
}
