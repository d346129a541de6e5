package effects

import (
	"log"
	"sync"
)

// MaxShockwaves 同时存在的冲击波上限
// 着色器中的 uniform 数组长度必须与之一致（见 systems/shaders/shockwave.kage）
const MaxShockwaves = 10

// InactiveTime 未激活槽位的开始/结束时间哨兵值
const InactiveTime = -1.0

// Vec3 三维坐标
type Vec3 struct {
	X, Y, Z float64
}

// ShockwaveInstance 单个冲击波实例
// 创建后不可变，超过 EndTime 即视为过期，槽位被回收时直接覆盖
type ShockwaveInstance struct {
	Position  Vec3
	Amplitude float64
	Speed     float64
	StartTime float64
	EndTime   float64 // StartTime + duration
}

// Active 判断实例在 now 时刻是否有效
func (s ShockwaveInstance) Active(now float64) bool {
	if s.StartTime == InactiveTime && s.EndTime == InactiveTime {
		return false
	}
	return now >= s.StartTime && now <= s.EndTime
}

// ShockwaveParams 上传给渲染层的参数表
// 所有槽位展开为等长的并行数组，是缓冲区内容的派生投影
type ShockwaveParams struct {
	Positions  [MaxShockwaves]Vec3
	Amplitudes [MaxShockwaves]float64
	Speeds     [MaxShockwaves]float64
	StartTimes [MaxShockwaves]float64
	EndTimes   [MaxShockwaves]float64
}

// ShockwaveBuffer 固定容量的冲击波环形缓冲区
//
// 写入游标总是指向下一个要覆盖的槽位；缓冲区满时覆盖最早写入的槽位，
// 不区分该槽位是否已过期，也不返回错误。
// 每次写入后重新生成 ShockwaveParams，渲染层通过 Params() 拉取。
type ShockwaveBuffer struct {
	mu        sync.RWMutex
	slots     [MaxShockwaves]ShockwaveInstance
	next      int
	published ShockwaveParams
	uploads   int
}

// NewShockwaveBuffer 创建缓冲区，所有槽位处于未激活状态
func NewShockwaveBuffer() *ShockwaveBuffer {
	b := &ShockwaveBuffer{}
	b.Initialize()
	return b
}

// Initialize 重置所有槽位为未激活哨兵值并重新上传
func (b *ShockwaveBuffer) Initialize() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.slots {
		b.slots[i] = ShockwaveInstance{
			Amplitude: 0,
			StartTime: InactiveTime,
			EndTime:   InactiveTime,
		}
	}
	b.next = 0
	b.uploadLocked()
}

// Trigger 写入新的冲击波并返回所用槽位
//
// 参数：
//   - position: 冲击波中心
//   - amplitude: 振幅
//   - speed: 扩散速度
//   - duration: 持续时间（秒）
//   - startTime: 开始时间（游戏时间，秒）
func (b *ShockwaveBuffer) Trigger(position Vec3, amplitude, speed, duration, startTime float64) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	index := b.next
	b.next = (b.next + 1) % MaxShockwaves

	b.slots[index] = ShockwaveInstance{
		Position:  position,
		Amplitude: amplitude,
		Speed:     speed,
		StartTime: startTime,
		EndTime:   startTime + duration,
	}

	b.uploadLocked()
	return index
}

func (b *ShockwaveBuffer) uploadLocked() {
	for i, s := range b.slots {
		b.published.Positions[i] = s.Position
		b.published.Amplitudes[i] = s.Amplitude
		b.published.Speeds[i] = s.Speed
		b.published.StartTimes[i] = s.StartTime
		b.published.EndTimes[i] = s.EndTime
	}
	b.uploads++
}

// Params 返回最近一次上传的参数表（值拷贝）
func (b *ShockwaveBuffer) Params() ShockwaveParams {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.published
}

// Instances 返回所有槽位的当前内容（按槽位顺序）
func (b *ShockwaveBuffer) Instances() [MaxShockwaves]ShockwaveInstance {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.slots
}

// NextSlot 返回下一次写入的槽位
func (b *ShockwaveBuffer) NextSlot() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.next
}

// ActiveCount 统计 now 时刻仍有效的冲击波数量
func (b *ShockwaveBuffer) ActiveCount(now float64) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, s := range b.slots {
		if s.Active(now) {
			count++
		}
	}
	return count
}

// UploadCount 返回上传次数（调试用）
func (b *ShockwaveBuffer) UploadCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.uploads
}

// ShockwaveEffect 冲击波全局效果
// 将 ShockwaveBuffer 接入效果注册表，并持有默认的发射参数
type ShockwaveEffect struct {
	buffer *ShockwaveBuffer

	Amplitude float64
	Speed     float64
	Duration  float64

	gameTime float64
}

// NewShockwaveEffect 创建冲击波效果
func NewShockwaveEffect(amplitude, speed, duration float64) *ShockwaveEffect {
	return &ShockwaveEffect{
		buffer:    NewShockwaveBuffer(),
		Amplitude: amplitude,
		Speed:     speed,
		Duration:  duration,
	}
}

// Name 实现 GlobalEffect
func (e *ShockwaveEffect) Name() string {
	return "shockwave"
}

// Initialize 实现 GlobalEffect：建立零状态
func (e *ShockwaveEffect) Initialize() {
	e.buffer.Initialize()
	log.Printf("[ShockwaveEffect] Initialized %d slots", MaxShockwaves)
}

// Update 实现 GlobalEffect
// 着色器根据开始/结束时间自行判断有效性，每帧无需重新上传
func (e *ShockwaveEffect) Update(gameTime float64) {
	e.gameTime = gameTime
}

// Play 以默认参数在指定位置触发冲击波，开始时间为最近一帧的游戏时间
func (e *ShockwaveEffect) Play(position Vec3) int {
	return e.PlayAt(position, e.gameTime)
}

// PlayAt 以默认参数在指定时间触发冲击波
func (e *ShockwaveEffect) PlayAt(position Vec3, startTime float64) int {
	slot := e.buffer.Trigger(position, e.Amplitude, e.Speed, e.Duration, startTime)
	log.Printf("[ShockwaveEffect] Triggered at (%.1f, %.1f) t=%.2f slot=%d", position.X, position.Y, startTime, slot)
	return slot
}

// Buffer 返回底层缓冲区
func (e *ShockwaveEffect) Buffer() *ShockwaveBuffer {
	return e.buffer
}

// GameTime 返回最近一帧的游戏时间
func (e *ShockwaveEffect) GameTime() float64 {
	return e.gameTime
}
