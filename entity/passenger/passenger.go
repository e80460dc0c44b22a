package passenger

import (
	"errors"
	"fmt"
)

// ErrInvalidPassenger 乘客起终点非法
var ErrInvalidPassenger = errors.New("invalid passenger")

// Passenger 乘客
// 功能：乘客的静态属性，创建后不可修改
type Passenger struct {
	id          int32
	origin      int32
	destination int32
}

// New 创建乘客
// 功能：校验起终点后创建乘客
// 参数：id-乘客ID，origin-起点站，destination-终点站，stops-线路站点数量
// 返回：乘客实例，起终点相同或越界时返回包装了ErrInvalidPassenger的错误
func New(id, origin, destination, stops int32) (*Passenger, error) {
	if id < 0 {
		return nil, fmt.Errorf("%w: negative id %d", ErrInvalidPassenger, id)
	}
	if origin < 1 || origin > stops {
		return nil, fmt.Errorf("%w: passenger %d origin %d out of [1, %d]", ErrInvalidPassenger, id, origin, stops)
	}
	if destination < 1 || destination > stops {
		return nil, fmt.Errorf("%w: passenger %d destination %d out of [1, %d]", ErrInvalidPassenger, id, destination, stops)
	}
	if origin == destination {
		return nil, fmt.Errorf("%w: passenger %d origin equals destination %d", ErrInvalidPassenger, id, origin)
	}
	return &Passenger{
		id:          id,
		origin:      origin,
		destination: destination,
	}, nil
}

// 获取乘客ID
func (p *Passenger) ID() int32 {
	if p == nil {
		return -1
	}
	return p.id
}

// 获取起点站
func (p *Passenger) Origin() int32 {
	return p.origin
}

// 获取终点站
func (p *Passenger) Destination() int32 {
	return p.destination
}

// Label 获取用于日志的乘客描述
func (p *Passenger) Label() string {
	return fmt.Sprintf("passenger %d (origin:%d, destination:%d)", p.id, p.origin, p.destination)
}
