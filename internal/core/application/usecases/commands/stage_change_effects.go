package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// stageChangeEffects bundles the side effects that follow a committed
// stage transition: the best-effort inventory deduction and the stage
// change event. Both run after the transaction commits; neither can fail
// the command. Failures are logged and, for the deduction, reflected as
// an absent result.
type stageChangeEffects struct {
	mover     services.OrderMover
	inventory ports.InventoryGateway
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func newStageChangeEffects(
	inventory ports.InventoryGateway,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) stageChangeEffects {
	return stageChangeEffects{
		mover:     services.NewOrderMover(),
		inventory: inventory,
		publisher: publisher,
		logger:    logger.With("component", "stage_transitions"),
	}
}

// run executes the post-commit side effects of one committed transition
// and returns the deduction outcome when one was triggered and answered.
func (e stageChangeEffects) run(
	ctx context.Context,
	o *order.Order,
	from, to *stage.Stage,
	userID kernel.UUID,
) *ports.DeductionResult {
	var result *ports.DeductionResult

	if e.mover.DeductionRequired(from, to) {
		deduction, err := e.inventory.Deduct(ctx, o)
		if err != nil {
			e.logger.ErrorContext(ctx, "Inventory deduction failed",
				"order", o.ID().String(), "error", err)
		} else {
			result = deduction
		}
	}

	event := ports.OrderStageChanged{
		OrderID:     o.ID(),
		OrderNumber: o.Number(),
		FromStageID: from.ID(),
		ToStageID:   to.ID(),
		UserID:      userID,
		OccurredAt:  time.Now(),
	}
	if err := e.publisher.PublishOrderStageChanged(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, "Stage change event publish failed",
			"order", o.ID().String(), "error", err)
	}

	return result
}

// findActiveSession resolves the user's active session for gating.
// No session at all is a normal answer: gating decides what that means
// for the stage in question.
func findActiveSession(ctx context.Context, repo ports.SessionRepository, userID kernel.UUID) (*timer.Session, error) {
	session, err := repo.FindActiveByUser(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return session, err
}
