// Package effects 管理全局视觉效果
//
// 每个效果实现 GlobalEffect（Initialize/Update 一对操作），在进程启动时显式注册到
// Registry。Registry 负责一次性初始化，并在每个 tick 按注册顺序更新所有效果。
// 效果的输出通过显式的参数结构体交给渲染层拉取，不使用全局键值表。
package effects

import "log"

// GlobalEffect 全局效果能力
type GlobalEffect interface {
	Name() string
	Initialize()
	Update(gameTime float64)
}

// Registry 全局效果注册表
// 进程内只允许存在一个，见 AcquireRegistry
type Registry struct {
	effects  []GlobalEffect
	started  bool
	gameTime float64
}

// 全局单例实例
var globalRegistry *Registry

// AcquireRegistry 获取全局效果注册表
//
// 首次调用创建注册表并注册给定效果，返回 true；
// 之后的调用直接返回已有注册表和 false，传入的效果被丢弃。
func AcquireRegistry(effects ...GlobalEffect) (*Registry, bool) {
	if globalRegistry != nil {
		log.Printf("[EffectRegistry] Registry already exists, discarding %d effect(s)", len(effects))
		return globalRegistry, false
	}

	r := &Registry{gameTime: InactiveTime}
	for _, e := range effects {
		r.Register(e)
	}
	globalRegistry = r
	return r, true
}

// ReleaseRegistry 在进程退出时释放全局注册表
func ReleaseRegistry() {
	globalRegistry = nil
}

// Register 注册效果；启动后注册的效果会立即初始化
func (r *Registry) Register(effect GlobalEffect) {
	if effect == nil {
		return
	}
	r.effects = append(r.effects, effect)
	log.Printf("[EffectRegistry] Registered effect %q", effect.Name())

	if r.started {
		effect.Initialize()
	}
}

// Start 初始化所有效果，每个效果只初始化一次
func (r *Registry) Start() {
	if r.started {
		return
	}
	r.started = true
	for _, e := range r.effects {
		e.Initialize()
	}
	log.Printf("[EffectRegistry] Started with %d effect(s)", len(r.effects))
}

// Update 每个 tick 调用一次：记录游戏时间并按注册顺序更新所有效果
func (r *Registry) Update(gameTime float64) {
	if !r.started {
		r.Start()
	}
	r.gameTime = gameTime
	for _, e := range r.effects {
		e.Update(gameTime)
	}
}

// GameTime 返回最近一次 Update 的游戏时间，未更新前为 -1
func (r *Registry) GameTime() float64 {
	return r.gameTime
}

// Effects 返回已注册效果（按注册顺序）
func (r *Registry) Effects() []GlobalEffect {
	out := make([]GlobalEffect, len(r.effects))
	copy(out, r.effects)
	return out
}

// Started 是否已初始化
func (r *Registry) Started() bool {
	return r.started
}
