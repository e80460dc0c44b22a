package passenger

import (
	"fmt"
	"sync"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/busroute-sim/entity"
	"github.com/tsinghua-fib-lab/busroute-sim/utils"
	"github.com/tsinghua-fib-lab/busroute-sim/utils/config"
	"golang.org/x/sync/errgroup"
)

// Manager 乘客管理器
// 功能：根据起终点创建全部乘客智能体，并发运行并收集终态
type Manager struct {
	ctx entity.ITaskContext

	agents []*Agent
	data   map[int32]*Agent

	outcomes    map[int32]Status
	outcomesMtx sync.Mutex

	onTransition func(p *Passenger, from, to Status)
}

// NewManager 创建乘客管理器实例
func NewManager(ctx entity.ITaskContext) *Manager {
	return &Manager{
		ctx:      ctx,
		data:     make(map[int32]*Agent),
		outcomes: make(map[int32]Status),
	}
}

// OnTransition 为之后创建的全部智能体设置状态转移回调
func (m *Manager) OnTransition(f func(p *Passenger, from, to Status)) {
	m.onTransition = f
}

// Init 初始化所有乘客
// 功能：按起终点依次创建乘客（ID从0开始）与对应的智能体
// 参数：trips-乘客起终点列表
// 返回：任一乘客起终点非法时返回错误，此时不创建任何智能体
func (m *Manager) Init(trips []config.Trip) error {
	stops := m.ctx.RuntimeConfig().C.Step.Stops
	passengers := make([]*Passenger, 0, len(trips))
	for i, trip := range trips {
		p, err := New(int32(i), trip.Origin, trip.Destination, stops)
		if err != nil {
			return fmt.Errorf("init passengers: %w", err)
		}
		passengers = append(passengers, p)
	}
	m.agents = lo.Map(passengers, func(p *Passenger, _ int) *Agent {
		a := NewAgent(p, m.ctx.Monitor())
		a.OnTransition(m.onTransition)
		return a
	})
	m.data = lo.SliceToMap(m.agents, func(a *Agent) (int32, *Agent) {
		return a.p.id, a
	})
	return nil
}

// Get 根据ID获取乘客智能体，如果不存在则panic
func (m *Manager) Get(id int32) *Agent {
	if a, ok := m.data[id]; !ok {
		log.Panicf("no id %d in passenger data", id)
		return nil
	} else {
		return a
	}
}

// GetOrError 根据ID获取乘客智能体，如果不存在则返回错误
func (m *Manager) GetOrError(id int32) (*Agent, error) {
	if a, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in passenger data", id)
	} else {
		return a, nil
	}
}

// Find 按ID批量获取乘客智能体，ids为空时返回全部，不存在的ID记入failedIDs
func (m *Manager) Find(ids []int32) (agents []*Agent, failedIDs []int32) {
	return utils.Find(m.data, m.agents, ids)
}

// Len 乘客数量
func (m *Manager) Len() int {
	return len(m.agents)
}

// Agents 全部乘客智能体
func (m *Manager) Agents() []*Agent {
	return m.agents
}

// Spawn 为每名乘客启动一个协程
// 功能：在g中并发运行全部智能体，智能体结束时记录终态
func (m *Manager) Spawn(g *errgroup.Group) {
	for _, a := range m.agents {
		g.Go(func() error {
			outcome := a.Run()
			m.recordOutcome(a.p, outcome)
			return nil
		})
	}
}

func (m *Manager) recordOutcome(p *Passenger, outcome Status) {
	m.outcomesMtx.Lock()
	defer m.outcomesMtx.Unlock()
	if _, ok := m.outcomes[p.id]; ok {
		log.Panicf("%s resolved twice", p.Label())
	}
	m.outcomes[p.id] = outcome
}

// Outcomes 已结束乘客的终态（副本）
func (m *Manager) Outcomes() map[int32]Status {
	m.outcomesMtx.Lock()
	defer m.outcomesMtx.Unlock()
	return lo.Assign(m.outcomes)
}
