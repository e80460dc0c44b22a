package bus

import (
	"fmt"

	"github.com/tsinghua-fib-lab/busroute-sim/utils/container"
)

// Bus 车辆
// 功能：记录车辆位置、容量、车上乘客以及示意下一站下车的乘客
// 说明：CurrentStop为0表示两轮之间尚未出发；wantsOff始终是onboard的子集，
// onboard数量始终不超过容量，违反时panic
type Bus struct {
	CurrentStop int32 // 当前站点序号，0表示两轮之间
	Capacity    int   // 容量

	onboard  *container.Set // 车上乘客
	wantsOff *container.Set // 示意下一站下车的乘客
}

// New 创建车辆
func New(capacity int) *Bus {
	if capacity < 1 {
		log.Panicf("bus capacity %d < 1", capacity)
	}
	return &Bus{
		Capacity: capacity,
		onboard:  container.NewSet(),
		wantsOff: container.NewSet(),
	}
}

func (b *Bus) String() string {
	return fmt.Sprintf("Bus{Stop:%d, Onboard:%d/%d, WantsOff:%d}", b.CurrentStop, b.onboard.Len(), b.Capacity, b.wantsOff.Len())
}

// IsFull 是否满员
func (b *Bus) IsFull() bool {
	return b.onboard.Len() >= b.Capacity
}

// OnboardCount 车上人数
func (b *Bus) OnboardCount() int {
	return b.onboard.Len()
}

// IsOnboard 乘客是否在车上
func (b *Bus) IsOnboard(passengerID int32) bool {
	return b.onboard.Has(passengerID)
}

// WantsOffNext 乘客是否已示意下车
func (b *Bus) WantsOffNext(passengerID int32) bool {
	return b.wantsOff.Has(passengerID)
}

// Onboard 车上乘客ID（副本）
func (b *Bus) Onboard() []int32 {
	return b.onboard.Values()
}

// WantsOff 示意下车的乘客ID（副本）
func (b *Bus) WantsOff() []int32 {
	return b.wantsOff.Values()
}

// Board 乘客上车
// 功能：将乘客加入车上集合
// 说明：满员或重复上车属于协议错误，直接panic
func (b *Bus) Board(passengerID int32) {
	if b.IsFull() {
		log.Panicf("passenger %d boards full bus %v", passengerID, b)
	}
	if !b.onboard.Add(passengerID) {
		log.Panicf("passenger %d already onboard", passengerID)
	}
}

// RequestExit 乘客示意下一站下车
func (b *Bus) RequestExit(passengerID int32) {
	if !b.onboard.Has(passengerID) {
		log.Panicf("passenger %d requests exit but is not onboard", passengerID)
	}
	b.wantsOff.Add(passengerID)
}

// Alight 乘客下车
// 功能：将乘客从车上集合与示意下车集合中移除
func (b *Bus) Alight(passengerID int32) {
	if !b.onboard.Remove(passengerID) {
		log.Panicf("passenger %d alights but is not onboard", passengerID)
	}
	b.wantsOff.Remove(passengerID)
}

// IsEverybodyOutWhoWant 想在当前站下车的乘客是否都已下车
// 参数：destOf-根据乘客ID查询其终点站
// 返回：true表示示意下车的乘客中没有终点为当前站的
func (b *Bus) IsEverybodyOutWhoWant(destOf func(passengerID int32) int32) bool {
	return !b.wantsOff.Any(func(id int32) bool {
		return destOf(id) == b.CurrentStop
	})
}
