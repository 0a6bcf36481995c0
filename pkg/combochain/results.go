package combochain

import (
	"errors"

	"github.com/BrandonKowalski/combochain/pkg/combochain/chain"
	"github.com/BrandonKowalski/combochain/pkg/combochain/registry"
)

var (
	ErrNotInitialized = errors.New("combochain is not initialized")
	ErrQuit           = errors.New("quit requested")

	ErrCapacityExceeded = chain.ErrCapacityExceeded
	ErrEmptySequence    = chain.ErrEmptySequence
	ErrInvalidStep      = chain.ErrInvalidStep
	ErrNilCallback      = chain.ErrNilCallback
	ErrDuplicateID      = registry.ErrDuplicateID
	ErrEmptyID          = registry.ErrEmptyID
)
