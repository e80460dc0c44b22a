package stop

import (
	"fmt"

	"github.com/tsinghua-fib-lab/busroute-sim/utils/container"
)

// Stop 站点
// 功能：记录当前在该站候车的乘客
// 说明：只保存乘客ID，乘客记录由线路监视器的对象池统一持有；
// 由乘客写入（到站登记、上车离开），由车辆控制器读取（离站判断）
type Stop struct {
	id      int32
	waiting *container.Set
}

func newStop(id int32) *Stop {
	return &Stop{
		id:      id,
		waiting: container.NewSet(),
	}
}

// 获取站点序号
func (s *Stop) ID() int32 {
	return s.id
}

func (s *Stop) String() string {
	return fmt.Sprintf("Stop{ID:%d, Waiting:%d}", s.id, s.waiting.Len())
}

// Add 乘客到站登记，重复登记时panic
func (s *Stop) Add(passengerID int32) {
	if !s.waiting.Add(passengerID) {
		log.Panicf("passenger %d already waiting at stop %d", passengerID, s.id)
	}
}

// Remove 乘客离开站台，乘客不在站台时panic
func (s *Stop) Remove(passengerID int32) {
	if !s.waiting.Remove(passengerID) {
		log.Panicf("passenger %d is not waiting at stop %d", passengerID, s.id)
	}
}

// Has 乘客是否在该站候车
func (s *Stop) Has(passengerID int32) bool {
	return s.waiting.Has(passengerID)
}

// IsEmpty 站台是否无人候车
func (s *Stop) IsEmpty() bool {
	return s.waiting.IsEmpty()
}

// Len 候车人数
func (s *Stop) Len() int {
	return s.waiting.Len()
}

// Waiting 候车乘客ID（副本）
func (s *Stop) Waiting() []int32 {
	return s.waiting.Values()
}
