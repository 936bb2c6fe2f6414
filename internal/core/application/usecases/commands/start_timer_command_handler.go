package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"
)

// StartTimerCommandHandler opens individual work sessions.
// Enforces the one-active-session-per-user rule: a user holding a running
// or paused session anywhere in the pipeline cannot start another one.
// Concurrent starts by the same user serialize on a per-user lock, so
// exactly one of two simultaneous requests wins.
//
// Example:
//
//	handler := NewStartTimerCommandHandler(uowFactory, graph, locks)
//	cmd, _ := NewStartTimerCommand(userID, stageID, nil, "")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    log.Println("User already has an active timer")
//	}
type StartTimerCommandHandler struct {
	uowFactory TimerUoWFactory
	graph      *stage.Graph
	locks      *locker.KeyedMutex
}

// NewStartTimerCommandHandler creates a handler for opening sessions.
// Requires the stage graph for stage existence checks and the shared
// keyed mutex for per-user serialization.
func NewStartTimerCommandHandler(
	uowFactory TimerUoWFactory,
	graph *stage.Graph,
	locks *locker.KeyedMutex,
) StartTimerCommandHandler {
	return StartTimerCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		locks:      locks,
	}
}

// Handle processes the start command.
// Verifies the stage exists, takes the per-user lock, checks for an
// existing active session and persists the new one born running.
// Returns ConflictError when the user already holds an active session.
func (h StartTimerCommandHandler) Handle(ctx context.Context, cmd StartTimerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := h.graph.StageByID(cmd.StageID()); err != nil {
		return err
	}

	key := userLockKey(cmd.UserID())
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	active, err := sessionRepo.FindActiveByUser(ctx, cmd.UserID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if active != nil {
		return errs.NewConflictErrorWithCause(
			"timer",
			fmt.Errorf("user %s already has an active session", cmd.UserID()),
		)
	}

	session, err := timer.NewSession(
		kernel.NewUUID(),
		cmd.UserID(),
		cmd.StageID(),
		cmd.OrderID(),
		cmd.OrderNumber(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = sessionRepo.Add(ctx, session); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
