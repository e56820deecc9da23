package alloc

import "errors"

var (
	// ErrExhausted indicates the allocator cannot satisfy a request.
	ErrExhausted = errors.New("alloc: out of memory")

	// ErrRefused is returned by Null. It matches ErrExhausted under errors.Is.
	ErrRefused error = refusedError{}
)

type refusedError struct{}

func (refusedError) Error() string { return "alloc: allocation refused by null allocator" }

func (refusedError) Is(target error) bool { return target == ErrExhausted }
