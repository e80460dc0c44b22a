package route

import (
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/busroute-sim/entity"
)

const (
	waitFor = 2 * time.Second
	tick    = time.Millisecond
	settle  = 20 * time.Millisecond
)

type recorder struct {
	mtx    sync.Mutex
	events []entity.Event
}

func (r *recorder) OnEvent(ev entity.Event) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []entity.EventKind {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	kinds := make([]entity.EventKind, len(r.events))
	for i, ev := range r.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

// rider 每个操作使用一次独立的乘客会话
type rider struct{ m *Monitor }

func (r rider) Arrive(p entity.IPassenger) {
	s := r.m.Enter()
	defer s.Exit()
	s.Arrive(p)
}

func (r rider) Board(p entity.IPassenger) bool {
	s := r.m.Enter()
	defer s.Exit()
	return s.Board(p)
}

func (r rider) RequestExit(p entity.IPassenger) bool {
	s := r.m.Enter()
	defer s.Exit()
	return s.RequestExit(p)
}

func (r rider) Alight(p entity.IPassenger) bool {
	s := r.m.Enter()
	defer s.Exit()
	return s.Alight(p)
}

// async 在新协程中执行f，返回结果通道
func async[T any](f func() T) <-chan T {
	ch := make(chan T, 1)
	go func() { ch <- f() }()
	return ch
}

func TestEveryMutationBroadcasts(t *testing.T) {
	m := NewMonitor(2, 1)
	r := &recorder{}
	m.AddObserver(r)
	p := mustPassenger(t, 0, 1, 2, 2)

	rider{m}.Arrive(p)
	assert.Equal(t, uint64(1), m.Generation())
	m.BeginRound(0)
	assert.Equal(t, uint64(2), m.Generation())

	boarded := async(func() bool { return rider{m}.Board(p) })
	stop := m.Advance()
	assert.Equal(t, int32(1), stop)
	assert.True(t, <-boarded)

	assert.True(t, rider{m}.RequestExit(p))
	alighted := async(func() bool { return rider{m}.Alight(p) })
	assert.Equal(t, int32(2), m.Advance())
	assert.True(t, <-alighted)
	m.EndService()

	kinds := r.kinds()
	assert.Equal(t, uint64(len(kinds)), m.Generation())
	assert.Equal(t, entity.EventPassengerArrived, kinds[0])
	assert.Equal(t, entity.EventRoundStarted, kinds[1])
	assert.Equal(t, entity.EventServiceEnded, kinds[len(kinds)-1])
	assert.Contains(t, kinds, entity.EventPassengerBoarded)
	assert.Contains(t, kinds, entity.EventPassengerRequestedExit)
	assert.Contains(t, kinds, entity.EventPassengerAlighted)

	snap := m.Snapshot()
	assert.Empty(t, snap.Onboard)
	assert.True(t, snap.ServiceEnded)
	assert.Equal(t, int32(0), snap.CurrentStop)
}

func TestArriveWaitsWhileVehicleAtStop(t *testing.T) {
	m := NewMonitor(3, 1)
	m.BeginRound(0)
	assert.Equal(t, int32(1), m.Advance())

	p := mustPassenger(t, 0, 1, 2, 3)
	done := async(func() struct{} { rider{m}.Arrive(p); return struct{}{} })
	time.Sleep(settle)
	assert.Equal(t, 0, m.Snapshot().Arrivals, "stop 1 is locked by the vehicle")

	assert.Equal(t, int32(2), m.Advance())
	<-done
	assert.Equal(t, 1, m.Snapshot().Arrivals)
	assert.Equal(t, map[int32][]int32{1: {0}}, m.Snapshot().Waiting)
}

func TestAdvanceWaitsForBoarding(t *testing.T) {
	m := NewMonitor(2, 2)
	p := mustPassenger(t, 0, 1, 2, 2)
	rider{m}.Arrive(p)
	m.BeginRound(0)

	stop := async(m.Advance)
	time.Sleep(settle)
	select {
	case <-stop:
		t.Fatal("bus departed while a passenger was waiting and seats were free")
	default:
	}
	assert.True(t, rider{m}.Board(p))
	assert.Equal(t, int32(1), <-stop)
}

func TestAdvanceWaitsForAlighting(t *testing.T) {
	m := NewMonitor(3, 1)
	p := mustPassenger(t, 0, 1, 2, 3)
	rider{m}.Arrive(p)
	m.BeginRound(0)
	boarded := async(func() bool { return rider{m}.Board(p) })
	assert.Equal(t, int32(1), m.Advance())
	require.True(t, <-boarded)
	require.True(t, rider{m}.RequestExit(p))

	stop := async(m.Advance)
	require.Eventually(t, func() bool { return m.Snapshot().CurrentStop == 2 }, waitFor, tick)
	time.Sleep(settle)
	select {
	case <-stop:
		t.Fatal("bus left stop 2 with a passenger destined there still aboard")
	default:
	}
	assert.True(t, rider{m}.Alight(p))
	assert.Equal(t, int32(2), <-stop)
}

func TestFullBusRefusesBoarding(t *testing.T) {
	m := NewMonitor(3, 1)
	p1 := mustPassenger(t, 0, 1, 2, 3)
	p2 := mustPassenger(t, 1, 1, 3, 3)
	rider{m}.Arrive(p1)
	rider{m}.Arrive(p2)
	m.BeginRound(0)

	first := async(func() bool { return rider{m}.Board(p1) })
	second := async(func() bool { return rider{m}.Board(p2) })
	assert.Equal(t, int32(1), m.Advance())

	// 恰好一人上车，另一人继续候车
	var got bool
	select {
	case got = <-first:
	case got = <-second:
	case <-time.After(waitFor):
		t.Fatal("nobody boarded")
	}
	assert.True(t, got)
	snap := m.Snapshot()
	assert.Len(t, snap.Onboard, 1)
	assert.Len(t, snap.Waiting[1], 1)

	m.EndService()
	// 留在站台的乘客被拒载
	select {
	case got = <-first:
	case got = <-second:
	case <-time.After(waitFor):
		t.Fatal("waiting passenger not released at service end")
	}
	assert.False(t, got)
}

func TestServiceEndReleasesEveryone(t *testing.T) {
	m := NewMonitor(4, 2)
	waiting := mustPassenger(t, 0, 3, 4, 4)
	riding := mustPassenger(t, 1, 1, 4, 4)
	requested := mustPassenger(t, 2, 1, 2, 4)
	rider{m}.Arrive(waiting)
	rider{m}.Arrive(riding)
	rider{m}.Arrive(requested)
	m.BeginRound(0)

	b1 := async(func() bool { return rider{m}.Board(riding) })
	b2 := async(func() bool { return rider{m}.Board(requested) })
	assert.Equal(t, int32(1), m.Advance())
	require.True(t, <-b1)
	require.True(t, <-b2)
	require.True(t, rider{m}.RequestExit(requested))

	turnedAway := async(func() bool { return rider{m}.Board(waiting) })
	stranded := async(func() bool { return rider{m}.RequestExit(riding) })
	// requested乘客在终点站前被阻塞于下车等待
	strandedAfterRequest := async(func() bool { return rider{m}.Alight(requested) })
	time.Sleep(settle)

	m.EndService()
	assert.False(t, <-turnedAway)
	assert.False(t, <-stranded)
	assert.False(t, <-strandedAfterRequest)

	snap := m.Snapshot()
	assert.Empty(t, snap.Onboard)
	assert.Empty(t, snap.WantsOff)
	assert.Empty(t, snap.Waiting)
	assert.True(t, snap.ServiceEnded)

	// 结束后到达的乘客也会立即被拒载
	late := mustPassenger(t, 3, 2, 3, 4)
	rider{m}.Arrive(late)
	assert.False(t, rider{m}.Board(late))
}

func TestServiceEndIsMonotonic(t *testing.T) {
	m := NewMonitor(2, 1)
	m.EndService()
	g := m.Generation()
	m.EndService()
	assert.Equal(t, g, m.Generation())
	assert.True(t, m.Snapshot().ServiceEnded)
	assert.Panics(t, func() { m.BeginRound(1) })
	assert.Panics(t, func() { m.Advance() })
}

func TestAdvancePastLastStopPanics(t *testing.T) {
	m := NewMonitor(2, 1)
	m.BeginRound(0)
	m.Advance()
	m.Advance()
	assert.Panics(t, func() { m.Advance() })
}

func TestArriveRejectsInvalidTrip(t *testing.T) {
	m := NewMonitor(2, 1)
	p := mustPassenger(t, 0, 1, 3, 3)
	assert.Panics(t, func() { rider{m}.Arrive(p) })
}

func TestWaitArrivals(t *testing.T) {
	m := NewMonitor(3, 1)
	done := async(func() struct{} { m.WaitArrivals(2); return struct{}{} })
	rider{m}.Arrive(mustPassenger(t, 0, 1, 2, 3))
	time.Sleep(settle)
	select {
	case <-done:
		t.Fatal("returned after one arrival")
	default:
	}
	rider{m}.Arrive(mustPassenger(t, 1, 2, 3, 3))
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("WaitArrivals did not return")
	}
}

func TestSessionRequestsExitRightAfterBoarding(t *testing.T) {
	m := NewMonitor(2, 1)
	p := mustPassenger(t, 0, 2, 1, 2)
	r := &recorder{}
	m.AddObserver(r)

	outcome := async(func() bool {
		s := m.Enter()
		defer s.Exit()
		s.Arrive(p)
		if !s.Board(p) || !s.RequestExit(p) {
			return false
		}
		return s.Alight(p)
	})
	m.WaitArrivals(1)

	m.BeginRound(0)
	assert.Equal(t, int32(1), m.Advance())
	assert.Equal(t, int32(2), m.Advance())
	// 车辆在终点站前一站上客后立即开始下一轮，乘客仍已示意下车
	m.BeginRound(1)
	assert.Equal(t, int32(1), m.Advance())
	assert.True(t, <-outcome)
	m.EndService()

	kinds := r.kinds()
	boarded := lo.IndexOf(kinds, entity.EventPassengerBoarded)
	require.GreaterOrEqual(t, boarded, 0)
	assert.Equal(t, entity.EventPassengerRequestedExit, kinds[boarded+1])
}

func TestSessionExitTwicePanics(t *testing.T) {
	m := NewMonitor(2, 1)
	s := m.Enter()
	s.Exit()
	assert.Panics(t, func() { s.Exit() })
	assert.Panics(t, func() { s.Arrive(mustPassenger(t, 0, 1, 2, 2)) })
}
