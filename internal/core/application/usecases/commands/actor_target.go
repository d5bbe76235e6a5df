package commands

import (
	"errors"

	"crowdship/internal/core/domain/model/kernel"
)

// actorTarget names the authenticated user issuing a command and the aggregate the
// command acts on.
type actorTarget struct {
	actorID  kernel.UUID
	targetID kernel.UUID
}

func newActorTarget(actorID, targetID kernel.UUID) (actorTarget, error) {
	if err := errors.Join(actorID.Validate(), targetID.Validate()); err != nil {
		return actorTarget{}, err
	}
	return actorTarget{actorID: actorID, targetID: targetID}, nil
}
