package entity

// 乘客使用的监视器操作
// 乘客进入监视器后一直持有锁，只在等待条件时释放，直到Exit
type IRiderMonitor interface {
	// 获取锁并返回乘客会话
	Enter() IRiderSession
}

// 乘客会话，全部方法都要求会话未结束
// 每个操作都是“等待条件→修改→广播”，等待期间释放锁，醒来后重新获取锁
type IRiderSession interface {
	// 等待车辆不在起点站时，在起点站登记
	Arrive(p IPassenger)
	// 等待可上车；返回false表示运营已结束，乘客已离开站台
	Board(p IPassenger) bool
	// 等待车辆位于终点站前一站后示意下车；返回false表示运营已结束，乘客已离开车辆
	RequestExit(p IPassenger) bool
	// 等待车辆到达终点站后下车；返回false表示运营已结束，乘客已离开车辆
	Alight(p IPassenger) bool
	// 释放锁，结束会话
	Exit()
}

// 车辆控制器使用的监视器操作
type IDriverMonitor interface {
	// 开始新一轮，车辆回到0号位置
	BeginRound(round int32)
	// 行驶到下一站，等待想下车的乘客全部下车，再等待满员或站台无人，返回到达的站点
	Advance() int32
	// 结束运营（不可逆）
	EndService()
}

// entity/route/monitor.go的依赖倒置
type IRouteMonitor interface {
	IRiderMonitor
	IDriverMonitor

	// 等待至少n名乘客完成到站登记（或已结束）
	WaitArrivals(n int)
	// 获取共享状态快照
	Snapshot() Snapshot
	// 获取共享状态的修改代数
	Generation() uint64
}
