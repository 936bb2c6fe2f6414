package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stage"
	"fulfillment/internal/core/domain/model/timer"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moverBase = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// pipeline builds the five-stage test pipeline. Embroidery is worksheet-gated,
// Shipped is terminal.
func pipeline(t *testing.T) *stage.Graph {
	t.Helper()

	specs := []struct {
		name              string
		requiresWorksheet bool
		isTerminal        bool
	}{
		{"New Orders", false, false},
		{"Picking", false, false},
		{"Embroidery", true, false},
		{"Quality Check", false, false},
		{"Shipped", false, true},
	}

	stages := make([]*stage.Stage, 0, len(specs))
	for i, spec := range specs {
		s, err := stage.NewStage(kernel.NewUUID(), spec.name, i, "#4a90d9", spec.isTerminal, spec.requiresWorksheet)
		require.NoError(t, err)
		stages = append(stages, s)
	}

	g, err := stage.NewGraph(stages)
	require.NoError(t, err)
	return g
}

func stageNamed(t *testing.T, g *stage.Graph, name string) *stage.Stage {
	t.Helper()

	for _, s := range g.Stages() {
		if s.Name() == name {
			return s
		}
	}
	t.Fatalf("no stage named %s", name)
	return nil
}

func orderAt(t *testing.T, g *stage.Graph, stageName string, items []*order.LineItem) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), "SO-1042", "Acme Corp", stageNamed(t, g, stageName).ID(), items, moverBase)
	require.NoError(t, err)
	return o
}

func runningSession(t *testing.T, userID, stageID kernel.UUID) *timer.Session {
	t.Helper()

	s, err := timer.NewSession(kernel.NewUUID(), userID, stageID, nil, "", moverBase)
	require.NoError(t, err)
	return s
}

func completedWorksheet(t *testing.T) []*order.LineItem {
	t.Helper()

	item, err := order.RestoreLineItem("TEE-RED-L", "Red tee, large", 5, 5, true)
	require.NoError(t, err)
	return []*order.LineItem{item}
}

func openWorksheet(t *testing.T) []*order.LineItem {
	t.Helper()

	item, err := order.NewLineItem("TEE-RED-L", "Red tee, large", 5)
	require.NoError(t, err)
	return []*order.LineItem{item}
}

func TestOrderMover_MoveNext(t *testing.T) {
	mover := services.NewOrderMover()
	userID := kernel.NewUUID()

	t.Run("should move from entry stage without a timer", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "New Orders", openWorksheet(t))

		target, err := mover.MoveNext(g, o, userID, nil)

		require.NoError(t, err)
		assert.Equal(t, "Picking", target.Name())
		assert.True(t, o.CurrentStage().IsEqual(target.ID()))
	})

	t.Run("should require a covering timer outside the entry stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Picking", openWorksheet(t))
		before := o.CurrentStage()

		target, err := mover.MoveNext(g, o, userID, nil)

		require.Error(t, err)
		assert.Nil(t, target)
		assert.ErrorIs(t, err, errs.ErrTimerRequired)
		assert.True(t, o.CurrentStage().IsEqual(before)) // no mutation on failed gate
	})

	t.Run("should move with a running session on the current stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Picking", openWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())

		target, err := mover.MoveNext(g, o, userID, session)

		require.NoError(t, err)
		assert.Equal(t, "Embroidery", target.Name())
	})

	t.Run("should accept a paused session as coverage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Picking", openWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())
		require.NoError(t, session.Pause(moverBase.Add(5*time.Minute)))

		_, err := mover.MoveNext(g, o, userID, session)

		require.NoError(t, err)
	})

	t.Run("should reject a session on a different stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Picking", openWorksheet(t))
		session := runningSession(t, userID, stageNamed(t, g, "Embroidery").ID())

		_, err := mover.MoveNext(g, o, userID, session)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrTimerRequired)
	})

	t.Run("should reject a stopped session as coverage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Picking", openWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())
		_, err := session.Stop(moverBase.Add(10*time.Minute), 0, 0, false)
		require.NoError(t, err)

		_, err = mover.MoveNext(g, o, userID, session)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrTimerRequired)
	})

	t.Run("should hold an incomplete worksheet on a gated stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Embroidery", openWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())
		before := o.CurrentStage()

		_, err := mover.MoveNext(g, o, userID, session)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrWorksheetIncomplete)
		assert.Contains(t, err.Error(), "1 incomplete item(s)")
		assert.True(t, o.CurrentStage().IsEqual(before))
	})

	t.Run("should leave a gated stage once the worksheet is complete", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Embroidery", completedWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())

		target, err := mover.MoveNext(g, o, userID, session)

		require.NoError(t, err)
		assert.Equal(t, "Quality Check", target.Name())
	})

	t.Run("should not gate on worksheet when leaving an ungated stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Picking", openWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())

		_, err := mover.MoveNext(g, o, userID, session)

		require.NoError(t, err)
	})

	t.Run("should fail at the terminal stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Shipped", completedWorksheet(t))

		_, err := mover.MoveNext(g, o, userID, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestOrderMover_MoveTo(t *testing.T) {
	mover := services.NewOrderMover()
	userID := kernel.NewUUID()

	t.Run("should jump backwards for manual re-routing", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Quality Check", openWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())
		target := stageNamed(t, g, "Picking")

		moved, err := mover.MoveTo(g, o, target.ID(), userID, session)

		require.NoError(t, err)
		assert.Equal(t, "Picking", moved.Name())
		assert.True(t, o.CurrentStage().IsEqual(target.ID()))
	})

	t.Run("should jump forward past stages", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "New Orders", openWorksheet(t))
		target := stageNamed(t, g, "Quality Check")

		moved, err := mover.MoveTo(g, o, target.ID(), userID, nil)

		require.NoError(t, err)
		assert.Equal(t, "Quality Check", moved.Name())
	})

	t.Run("should apply timer gating to jumps", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Quality Check", openWorksheet(t))

		_, err := mover.MoveTo(g, o, stageNamed(t, g, "Picking").ID(), userID, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrTimerRequired)
	})

	t.Run("should apply worksheet gating to jumps off a gated stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Embroidery", openWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())

		_, err := mover.MoveTo(g, o, stageNamed(t, g, "Picking").ID(), userID, session)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrWorksheetIncomplete)
	})

	t.Run("should fail for an unknown target stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "New Orders", openWorksheet(t))

		_, err := mover.MoveTo(g, o, kernel.NewUUID(), userID, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should refuse to re-route a shipped order", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Shipped", completedWorksheet(t))

		_, err := mover.MoveTo(g, o, stageNamed(t, g, "Picking").ID(), userID, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "already shipped")
	})

	t.Run("should gate the worksheet when jumping onto the terminal stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Picking", openWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())

		_, err := mover.MoveTo(g, o, stageNamed(t, g, "Shipped").ID(), userID, session)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrWorksheetIncomplete)
	})
}

func TestOrderMover_MoveForBatch(t *testing.T) {
	mover := services.NewOrderMover()

	t.Run("should move a member order without an individual session", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Picking", openWorksheet(t))
		target := stageNamed(t, g, "Quality Check")

		err := mover.MoveForBatch(g, o, target)

		require.NoError(t, err)
		assert.True(t, o.CurrentStage().IsEqual(target.ID()))
	})

	t.Run("should hold an incomplete worksheet on a gated stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Embroidery", openWorksheet(t))

		err := mover.MoveForBatch(g, o, stageNamed(t, g, "Quality Check"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrWorksheetIncomplete)
	})

	t.Run("should gate the worksheet when advancing onto the terminal stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Quality Check", openWorksheet(t))

		err := mover.MoveForBatch(g, o, stageNamed(t, g, "Shipped"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrWorksheetIncomplete)
	})

	t.Run("should ship a member with a complete worksheet", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Quality Check", completedWorksheet(t))
		target := stageNamed(t, g, "Shipped")

		err := mover.MoveForBatch(g, o, target)

		require.NoError(t, err)
		assert.True(t, o.CurrentStage().IsEqual(target.ID()))
	})

	t.Run("should refuse a shipped member", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Shipped", completedWorksheet(t))

		err := mover.MoveForBatch(g, o, stageNamed(t, g, "Quality Check"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestOrderMover_Ship(t *testing.T) {
	mover := services.NewOrderMover()
	userID := kernel.NewUUID()

	t.Run("should ship from the final working stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Quality Check", completedWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())

		target, err := mover.Ship(g, o, userID, session)

		require.NoError(t, err)
		assert.Equal(t, "Shipped", target.Name())
		assert.True(t, target.IsTerminal())
		assert.True(t, o.CurrentStage().IsEqual(target.ID()))
	})

	t.Run("should refuse to ship from an earlier stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Picking", completedWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())

		_, err := mover.Ship(g, o, userID, session)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Contains(t, err.Error(), "not at the final stage")
	})

	t.Run("should refuse to ship twice", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Shipped", completedWorksheet(t))

		_, err := mover.Ship(g, o, userID, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should always gate shipping on the worksheet", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Quality Check", openWorksheet(t)) // QC itself is not worksheet-gated
		session := runningSession(t, userID, o.CurrentStage())

		_, err := mover.Ship(g, o, userID, session)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrWorksheetIncomplete)
	})

	t.Run("should require a timer to ship", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Quality Check", completedWorksheet(t))

		_, err := mover.Ship(g, o, userID, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrTimerRequired)
	})
}

func TestOrderMover_EnsureWorkAllowed(t *testing.T) {
	mover := services.NewOrderMover()
	userID := kernel.NewUUID()

	t.Run("should allow worksheet edits on the entry stage without a timer", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "New Orders", openWorksheet(t))

		require.NoError(t, mover.EnsureWorkAllowed(g, o, userID, nil))
	})

	t.Run("should require a covering session outside the entry stage", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Embroidery", openWorksheet(t))

		err := mover.EnsureWorkAllowed(g, o, userID, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrTimerRequired)
	})

	t.Run("should allow edits with a covering session", func(t *testing.T) {
		g := pipeline(t)
		o := orderAt(t, g, "Embroidery", openWorksheet(t))
		session := runningSession(t, userID, o.CurrentStage())

		require.NoError(t, mover.EnsureWorkAllowed(g, o, userID, session))
	})
}

func TestOrderMover_DeductionRequired(t *testing.T) {
	mover := services.NewOrderMover()
	g := pipeline(t)

	entry := stageNamed(t, g, "New Orders")
	picking := stageNamed(t, g, "Picking")
	qc := stageNamed(t, g, "Quality Check")
	shipped := stageNamed(t, g, "Shipped")

	t.Run("should deduct when leaving the entry stage", func(t *testing.T) {
		assert.True(t, mover.DeductionRequired(entry, picking))
	})

	t.Run("should deduct when arriving at the terminal stage", func(t *testing.T) {
		assert.True(t, mover.DeductionRequired(qc, shipped))
	})

	t.Run("should not deduct between middle stages", func(t *testing.T) {
		assert.False(t, mover.DeductionRequired(picking, qc))
	})

	t.Run("should not deduct when re-routing back to entry", func(t *testing.T) {
		assert.False(t, mover.DeductionRequired(picking, entry))
	})
}
