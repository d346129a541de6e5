package components

// PositionComponent 实体在竞技场中的位置（像素坐标）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体的速度（像素/秒）
type VelocityComponent struct {
	VX float64
	VY float64
}
