package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"critvue/internal/models"
)

func TestCanTransition_LegalEdges(t *testing.T) {
	legal := []struct {
		from, to models.SlotStatus
	}{
		{models.SlotClaimed, models.SlotSubmitted},
		{models.SlotClaimed, models.SlotAbandoned},
		{models.SlotSubmitted, models.SlotAccepted},
		{models.SlotSubmitted, models.SlotRejected},
	}
	for _, tt := range legal {
		assert.True(t, CanTransition(tt.from, tt.to), "%s -> %s should be legal", tt.from, tt.to)
	}
}

func TestCanTransition_IllegalEdges(t *testing.T) {
	all := []models.SlotStatus{
		models.SlotClaimed, models.SlotSubmitted, models.SlotAccepted,
		models.SlotRejected, models.SlotAbandoned, models.SlotExpired,
	}

	legal := map[[2]models.SlotStatus]bool{
		{models.SlotClaimed, models.SlotSubmitted}:  true,
		{models.SlotClaimed, models.SlotAbandoned}:  true,
		{models.SlotSubmitted, models.SlotAccepted}: true,
		{models.SlotSubmitted, models.SlotRejected}: true,
	}

	// Exhaustively check every other pair is rejected, including
	// accepted <-> rejected in both directions and every backward edge.
	for _, from := range all {
		for _, to := range all {
			if legal[[2]models.SlotStatus{from, to}] {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s should be illegal", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, s := range []models.SlotStatus{
		models.SlotAccepted, models.SlotRejected, models.SlotAbandoned, models.SlotExpired,
	} {
		assert.True(t, IsTerminal(s), "%s should be terminal", s)
	}
	assert.False(t, IsTerminal(models.SlotClaimed))
	assert.False(t, IsTerminal(models.SlotSubmitted))
}

func TestGuard(t *testing.T) {
	assert.NoError(t, Guard(models.SlotClaimed, models.SlotSubmitted))
	assert.Error(t, Guard(models.SlotAccepted, models.SlotRejected))
	assert.Error(t, Guard(models.SlotRejected, models.SlotAccepted))
	assert.Error(t, Guard(models.SlotSubmitted, models.SlotAbandoned))
	assert.Error(t, Guard("bogus", models.SlotAccepted))
}

func TestTarget(t *testing.T) {
	assert.Equal(t, models.SlotAccepted, Target(TriggerAccept))
	assert.Equal(t, models.SlotAccepted, Target(TriggerAutoAccept))
	assert.Equal(t, models.SlotRejected, Target(TriggerReject))
	assert.Equal(t, models.SlotAbandoned, Target(TriggerAbandon))
	assert.Equal(t, models.SlotSubmitted, Target(TriggerSubmit))
	assert.Equal(t, models.SlotClaimed, Target(TriggerClaim))
}
