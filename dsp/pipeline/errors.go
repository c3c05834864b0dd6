package pipeline

import "errors"

var (
	// ErrUnknownModule is returned when a stage references an unregistered
	// module type.
	ErrUnknownModule = errors.New("pipeline: unknown module type")

	// ErrEmptyChain is returned when initializing a chain without stages.
	ErrEmptyChain = errors.New("pipeline: chain has no stages")

	// ErrDuplicateTag is returned when two stages share a tag.
	ErrDuplicateTag = errors.New("pipeline: duplicate stage tag")

	errDuplicateModule = errors.New("pipeline: duplicate module type")
)
