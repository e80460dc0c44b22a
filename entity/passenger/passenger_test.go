package passenger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPassenger(t *testing.T) {
	p, err := New(3, 1, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(3), p.ID())
	assert.Equal(t, int32(1), p.Origin())
	assert.Equal(t, int32(4), p.Destination())
	assert.Equal(t, "passenger 3 (origin:1, destination:4)", p.Label())

	var nilPassenger *Passenger
	assert.Equal(t, int32(-1), nilPassenger.ID())
}

func TestNewPassengerRejectsInvalidTrip(t *testing.T) {
	cases := map[string][4]int32{
		"same stop":         {0, 2, 2, 4},
		"origin too small":  {0, 0, 2, 4},
		"origin too large":  {0, 5, 2, 4},
		"destination range": {0, 1, 5, 4},
		"negative id":       {-1, 1, 2, 4},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(c[0], c[1], c[2], c[3])
			assert.ErrorIs(t, err, ErrInvalidPassenger)
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, CanTransit(StatusApproaching, StatusWaiting))
	assert.True(t, CanTransit(StatusWaiting, StatusTurnedAway))
	assert.True(t, CanTransit(StatusBoarding, StatusTurnedAway))
	assert.True(t, CanTransit(StatusOnboard, StatusStranded))
	assert.True(t, CanTransit(StatusRequestedExit, StatusAlighted))

	assert.False(t, CanTransit(StatusApproaching, StatusOnboard))
	assert.False(t, CanTransit(StatusOnboard, StatusTurnedAway), "onboard but also turned away")
	assert.False(t, CanTransit(StatusAlighted, StatusWaiting), "terminal")
	assert.False(t, CanTransit(StatusStranded, StatusAlighted), "terminal")

	for _, s := range []Status{StatusAlighted, StatusStranded, StatusTurnedAway} {
		assert.True(t, s.IsTerminal(), s.String())
	}
	assert.False(t, StatusOnboard.IsTerminal())
	assert.Equal(t, "requested_exit", StatusRequestedExit.String())
	assert.Equal(t, "Status(42)", Status(42).String())
}
