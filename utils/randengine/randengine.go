// 随机数引擎，包装了golang.org/x/exp/rand，为乘客生成起终点
package randengine

import (
	"flag"
	"log"
	"sync"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：提供可复现的随机数生成功能，支持线程安全操作
// 说明：基于golang.org/x/exp/rand库
type Engine struct {
	*rand.Rand            // 底层随机数生成器
	mtx        sync.Mutex // 互斥锁，用于线程安全操作
}

// New 创建随机数引擎
// 功能：初始化一个新的随机数引擎实例
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改配置的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// IntnSafe 随机生成整数（线程安全）
// 功能：在指定范围内生成随机整数，支持多线程安全访问
// 参数：n-范围上限（不包含）
// 返回：[0, n)范围内的随机整数
func (e *Engine) IntnSafe(n int) int {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.Intn(n)
}

// StopPair 随机生成一对起终点站（线程安全）
// 功能：在[1, stops]范围内均匀抽取起点与终点
// 参数：stops-站点数量，至少为2
// 返回：起点站与终点站，二者保证不同
// 算法说明：
// 1. 分别独立抽取起点与终点
// 2. 若终点与起点相同，则终点取下一站，最后一站的下一站为1
func (e *Engine) StopPair(stops int32) (origin, destination int32) {
	if stops < 2 {
		log.Panicf("randengine: StopPair: stops %d < 2", stops)
	}
	e.mtx.Lock()
	defer e.mtx.Unlock()
	origin = int32(e.Intn(int(stops))) + 1
	destination = int32(e.Intn(int(stops))) + 1
	if destination == origin {
		if origin == stops {
			destination = 1
		} else {
			destination++
		}
	}
	return origin, destination
}
