package commands

import (
	"errors"

	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"
)

// DefaultExpiryBatchSize bounds how many shipments one expiry run cancels.
const DefaultExpiryBatchSize = 100

var ErrExpireShipmentsCommandIsNotConstructed = errors.New(
	"ExpireShipmentsCommand must be created via NewExpireShipmentsCommand constructor",
)

// ExpireShipmentsCommand cancels open shipments whose desired delivery date passed.
type ExpireShipmentsCommand struct { //nolint:recvcheck //using for validation
	batchSize int
	guard     guard.ConstructorGuard
}

func NewExpireShipmentsCommand(batchSize int) (ExpireShipmentsCommand, error) {
	if batchSize <= 0 {
		return ExpireShipmentsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return ExpireShipmentsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireShipmentsCommandIsNotConstructed)
}

func (c ExpireShipmentsCommand) BatchSize() int { return c.batchSize }
