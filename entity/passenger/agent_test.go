package passenger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/busroute-sim/clock"
	"github.com/tsinghua-fib-lab/busroute-sim/entity"
	"github.com/tsinghua-fib-lab/busroute-sim/utils/config"
	"golang.org/x/sync/errgroup"
)

// scriptedMonitor 按预设结果响应乘客操作
type scriptedMonitor struct {
	mtx         sync.Mutex
	board       bool
	requestExit bool
	alight      bool
	calls       []string
}

func (m *scriptedMonitor) record(call string) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.calls = append(m.calls, call)
}

func (m *scriptedMonitor) Enter() entity.IRiderSession {
	m.record("enter")
	return m
}
func (m *scriptedMonitor) Exit() { m.record("exit") }
func (m *scriptedMonitor) Arrive(entity.IPassenger) { m.record("arrive") }
func (m *scriptedMonitor) Board(entity.IPassenger) bool {
	m.record("board")
	return m.board
}
func (m *scriptedMonitor) RequestExit(entity.IPassenger) bool {
	m.record("request_exit")
	return m.requestExit
}
func (m *scriptedMonitor) Alight(entity.IPassenger) bool {
	m.record("alight")
	return m.alight
}
func (m *scriptedMonitor) BeginRound(int32) {}
func (m *scriptedMonitor) Advance() int32 { return 0 }
func (m *scriptedMonitor) EndService() {}
func (m *scriptedMonitor) WaitArrivals(int) {}
func (m *scriptedMonitor) Snapshot() entity.Snapshot { return entity.Snapshot{} }
func (m *scriptedMonitor) Generation() uint64 { return 0 }

func runAgent(t *testing.T, m *scriptedMonitor) (Status, []Status) {
	t.Helper()
	p, err := New(0, 1, 2, 2)
	require.NoError(t, err)
	a := NewAgent(p, m)
	assert.Equal(t, StatusApproaching, a.Status())
	var path []Status
	a.OnTransition(func(_ *Passenger, _, to Status) { path = append(path, to) })
	outcome := a.Run()
	assert.Equal(t, outcome, a.Status())
	assert.Panics(t, func() { a.Run() }, "agent runs once")
	return outcome, path
}

func TestAgentAlighted(t *testing.T) {
	m := &scriptedMonitor{board: true, requestExit: true, alight: true}
	outcome, path := runAgent(t, m)
	assert.Equal(t, StatusAlighted, outcome)
	assert.Equal(t, []Status{StatusWaiting, StatusBoarding, StatusOnboard, StatusRequestedExit, StatusAlighted}, path)
	assert.Equal(t, []string{"enter", "arrive", "board", "request_exit", "alight", "exit"}, m.calls)
}

func TestAgentTurnedAway(t *testing.T) {
	m := &scriptedMonitor{}
	outcome, path := runAgent(t, m)
	assert.Equal(t, StatusTurnedAway, outcome)
	assert.Equal(t, []Status{StatusWaiting, StatusTurnedAway}, path)
	assert.Equal(t, []string{"enter", "arrive", "board", "exit"}, m.calls)
}

func TestAgentStrandedBeforeRequest(t *testing.T) {
	m := &scriptedMonitor{board: true}
	outcome, path := runAgent(t, m)
	assert.Equal(t, StatusStranded, outcome)
	assert.Equal(t, []Status{StatusWaiting, StatusBoarding, StatusOnboard, StatusStranded}, path)
}

func TestAgentStrandedAfterRequest(t *testing.T) {
	m := &scriptedMonitor{board: true, requestExit: true}
	outcome, path := runAgent(t, m)
	assert.Equal(t, StatusStranded, outcome)
	assert.Equal(t, StatusRequestedExit, path[len(path)-2])
}

type fakeContext struct {
	clock   *clock.Clock
	monitor entity.IRouteMonitor
	rc      *config.RuntimeConfig
}

func (c *fakeContext) Clock() *clock.Clock { return c.clock }
func (c *fakeContext) Monitor() entity.IRouteMonitor { return c.monitor }
func (c *fakeContext) RuntimeConfig() *config.RuntimeConfig { return c.rc }

func newFakeContext(t *testing.T, m entity.IRouteMonitor) *fakeContext {
	t.Helper()
	rc, err := config.NewRuntimeConfig(config.Config{
		Control: config.Control{
			Step:            config.ControlStep{Rounds: 1, Stops: 3},
			VehicleCapacity: 1,
		},
	})
	require.NoError(t, err)
	return &fakeContext{monitor: m, rc: rc}
}

func TestManagerInitRejectsInvalidTrip(t *testing.T) {
	m := NewManager(newFakeContext(t, &scriptedMonitor{}))
	err := m.Init([]config.Trip{{Origin: 1, Destination: 2}, {Origin: 3, Destination: 3}})
	assert.ErrorIs(t, err, ErrInvalidPassenger)
	assert.Equal(t, 0, m.Len())
}

func TestManagerSpawn(t *testing.T) {
	m := NewManager(newFakeContext(t, &scriptedMonitor{board: true, requestExit: true, alight: true}))
	var mtx sync.Mutex
	transitions := 0
	m.OnTransition(func(*Passenger, Status, Status) {
		mtx.Lock()
		transitions++
		mtx.Unlock()
	})
	require.NoError(t, m.Init([]config.Trip{
		{Origin: 1, Destination: 2},
		{Origin: 2, Destination: 3},
		{Origin: 3, Destination: 1},
	}))
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, int32(3), m.Get(2).Passenger().Origin())
	_, err := m.GetOrError(3)
	assert.Error(t, err)
	assert.Panics(t, func() { m.Get(3) })
	found, failed := m.Find([]int32{2, 7})
	require.Len(t, found, 1)
	assert.Equal(t, int32(2), found[0].Passenger().ID())
	assert.Equal(t, []int32{7}, failed)

	var g errgroup.Group
	m.Spawn(&g)
	require.NoError(t, g.Wait())

	assert.Equal(t, map[int32]Status{0: StatusAlighted, 1: StatusAlighted, 2: StatusAlighted}, m.Outcomes())
	assert.Equal(t, 3*5, transitions)
}
