package stop

import (
	"fmt"

	"github.com/samber/lo"
)

// Manager Stop管理器
// 功能：持有线路上全部站点，站点序号为[1, count]
type Manager struct {
	data  map[int32]*Stop
	stops []*Stop
}

// NewManager 创建Stop管理器
// 功能：按站点数量创建全部站点
// 参数：count-站点数量
// 返回：新创建的Stop管理器实例
func NewManager(count int32) *Manager {
	stops := lo.Times(int(count), func(i int) *Stop {
		return newStop(int32(i) + 1)
	})
	return &Manager{
		data:  lo.SliceToMap(stops, func(s *Stop) (int32, *Stop) { return s.id, s }),
		stops: stops,
	}
}

// Get 根据序号获取站点
// 功能：查找站点，如果不存在则panic
func (m *Manager) Get(id int32) *Stop {
	if s, ok := m.data[id]; !ok {
		log.Panicf("no id %d in stop data", id)
		return nil
	} else {
		return s
	}
}

// GetOrError 根据序号获取站点（带错误处理）
// 功能：查找站点，如果不存在则返回错误
func (m *Manager) GetOrError(id int32) (*Stop, error) {
	if s, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in stop data", id)
	} else {
		return s, nil
	}
}

// Len 站点数量
func (m *Manager) Len() int32 {
	return int32(len(m.stops))
}

// Stops 按序号排列的全部站点
func (m *Manager) Stops() []*Stop {
	return m.stops
}

// TotalWaiting 全线候车总人数
func (m *Manager) TotalWaiting() int {
	return lo.SumBy(m.stops, func(s *Stop) int { return s.Len() })
}

// WaitingByStop 各站候车乘客ID
func (m *Manager) WaitingByStop() map[int32][]int32 {
	return lo.SliceToMap(m.stops, func(s *Stop) (int32, []int32) { return s.id, s.Waiting() })
}
