package container

import "fmt"

// IArenaItem 可放入Arena的元素接口
// 功能：元素需要提供自己的ID，ID即为元素在Arena中的下标
type IArenaItem interface {
	ID() int32
}

// Arena 按ID下标存放的对象池
// 功能：集中保存所有对象记录，其余集合只保存ID，避免共享指针带来的所有权歧义
// 说明：非线程安全，由调用方的锁保护；ID需为非负整数，数组按需扩容
type Arena[T IArenaItem] struct {
	data    []T    // 对象记录
	present []bool // 下标对应的对象是否存在
	length  int    // 存在的对象数量
}

// NewArena 创建对象池
// 功能：初始化一个对象池实例
// 参数：capacity-预分配容量
// 返回：新创建的对象池指针
func NewArena[T IArenaItem](capacity int) *Arena[T] {
	return &Arena[T]{
		data:    make([]T, 0, capacity),
		present: make([]bool, 0, capacity),
	}
}

// Len 获取对象数量
func (a *Arena[T]) Len() int {
	return a.length
}

// Put 放入对象
// 功能：按对象ID放入对象池
// 参数：value-对象
// 返回：错误信息，ID非法或已存在时返回错误
func (a *Arena[T]) Put(value T) error {
	id := value.ID()
	if id < 0 {
		return fmt.Errorf("container: negative arena id %d", id)
	}
	for int(id) >= len(a.data) {
		var zero T
		a.data = append(a.data, zero)
		a.present = append(a.present, false)
	}
	if a.present[id] {
		return fmt.Errorf("container: arena id %d already exists", id)
	}
	a.data[id] = value
	a.present[id] = true
	a.length++
	return nil
}

// Get 根据ID获取对象
// 功能：返回对象以及对象是否存在
func (a *Arena[T]) Get(id int32) (T, bool) {
	if id < 0 || int(id) >= len(a.data) || !a.present[id] {
		var zero T
		return zero, false
	}
	return a.data[id], true
}

// Delete 删除对象
// 返回：true表示删除成功
func (a *Arena[T]) Delete(id int32) bool {
	if id < 0 || int(id) >= len(a.data) || !a.present[id] {
		return false
	}
	var zero T
	a.data[id] = zero
	a.present[id] = false
	a.length--
	return true
}
