package container

import "log"

// Set 以int32 ID为键的成员集合
// 功能：维护一组对象ID的成员关系，支持O(1)的加入、删除与查询
// 说明：删除时用末尾元素填补空位（与增量数组相同的做法），因此遍历顺序不保证稳定；
// 非线程安全，由调用方的锁保护
type Set struct {
	data  []int32       // 成员
	index map[int32]int // 成员在data中的位置
}

// NewSet 创建集合
func NewSet() *Set {
	return &Set{
		data:  make([]int32, 0),
		index: make(map[int32]int),
	}
}

// Len 获取成员数量
func (s *Set) Len() int {
	return len(s.data)
}

// IsEmpty 集合是否为空
func (s *Set) IsEmpty() bool {
	return len(s.data) == 0
}

// Has 检查成员是否存在
func (s *Set) Has(id int32) bool {
	_, ok := s.index[id]
	return ok
}

// Add 加入成员
// 功能：将ID加入集合
// 参数：id-成员ID
// 返回：true表示新加入，false表示已存在
func (s *Set) Add(id int32) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.data)
	s.data = append(s.data, id)
	return true
}

// Remove 删除成员
// 功能：将ID从集合中删除
// 参数：id-成员ID
// 返回：true表示删除成功，false表示成员不存在
// 算法说明：
// 1. 查找成员位置
// 2. 用末尾成员填补该位置并更新其索引
// 3. 截断末尾
func (s *Set) Remove(id int32) bool {
	ind, ok := s.index[id]
	if !ok {
		return false
	}
	last := len(s.data) - 1
	if ind != last {
		s.data[ind] = s.data[last]
		s.index[s.data[ind]] = ind
	}
	s.data = s.data[:last]
	delete(s.index, id)
	return true
}

// MustAdd 加入成员，若已存在则panic
func (s *Set) MustAdd(id int32) {
	if !s.Add(id) {
		log.Panicf("container: id %d already in set", id)
	}
}

// MustRemove 删除成员，若不存在则panic
func (s *Set) MustRemove(id int32) {
	if !s.Remove(id) {
		log.Panicf("container: id %d not in set", id)
	}
}

// Values 获取所有成员的副本
func (s *Set) Values() []int32 {
	values := make([]int32, len(s.data))
	copy(values, s.data)
	return values
}

// Any 检查是否存在满足条件的成员
func (s *Set) Any(f func(id int32) bool) bool {
	for _, id := range s.data {
		if f(id) {
			return true
		}
	}
	return false
}
