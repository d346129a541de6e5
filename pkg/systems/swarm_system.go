package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/wavearena/pkg/components"
	"github.com/decker502/wavearena/pkg/config"
	"github.com/decker502/wavearena/pkg/ecs"
	"github.com/decker502/wavearena/pkg/event"
)

// SwarmSystem 敌群系统
//
// 职责：
//   - 创建敌群实体（每个波次一个），初始为未激活
//   - 敌群激活后按间隔生成敌人，生成完毕发布 SwarmSpawned
//   - 处理敌人受击与死亡，发布 EnemyDefeated；全部击败后发布 SwarmDefeated
//   - 敌人向竞技场中心移动，接触玩家时发布 PlayerDied
//
// 架构说明：
//   - 敌群状态存储在 SwarmComponent 中，对外通过 Swarm 句柄实现 WaveGroup
//   - 销毁的实体由场景在帧末统一清理（RemoveMarkedEntities）
type SwarmSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	rng           *rand.Rand

	centerX, centerY float64
	playerDead       bool
}

// Swarm 敌群句柄，实现 WaveGroup
type Swarm struct {
	system *SwarmSystem
	entity ecs.EntityID
}

// NewSwarmSystem 创建敌群系统
//
// 参数：
//   - em: 实体管理器
//   - dispatcher: 事件分发器
//   - seed: 随机种子（决定敌人出生角度）
func NewSwarmSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher, seed int64) *SwarmSystem {
	return &SwarmSystem{
		entityManager: em,
		dispatcher:    dispatcher,
		rng:           rand.New(rand.NewSource(seed)),
		centerX:       config.ArenaCenterX,
		centerY:       config.ArenaCenterY,
	}
}

// CreateSwarm 根据波次配置创建未激活的敌群
func (s *SwarmSystem) CreateSwarm(waveIndex int, wave config.WaveConfig) *Swarm {
	entityID := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, entityID, &components.SwarmComponent{
		WaveIndex:     waveIndex,
		EnemyCount:    wave.Enemies,
		SpawnInterval: wave.SpawnInterval,
		EnemyHealth:   wave.Health,
		EnemySpeed:    wave.Speed,
		ScoreValue:    wave.ScoreValue,
	})

	log.Printf("[SwarmSystem] Created swarm %d (ID: %d): %d enemies", waveIndex+1, entityID, wave.Enemies)
	return &Swarm{system: s, entity: entityID}
}

// CreateSwarms 为所有波次创建敌群
func (s *SwarmSystem) CreateSwarms(waves []config.WaveConfig) []WaveGroup {
	groups := make([]WaveGroup, 0, len(waves))
	for i, w := range waves {
		groups = append(groups, s.CreateSwarm(i, w))
	}
	return groups
}

// Activate 实现 WaveGroup
func (sw *Swarm) Activate() {
	sw.system.activate(sw.entity)
}

// Release 实现 WaveGroup
func (sw *Swarm) Release() {
	sw.system.release(sw.entity)
}

// Entity 返回敌群实体ID
func (sw *Swarm) Entity() ecs.EntityID {
	return sw.entity
}

// Spawned 是否已全部生成
func (sw *Swarm) Spawned() bool {
	swarm, ok := ecs.GetComponent[*components.SwarmComponent](sw.system.entityManager, sw.entity)
	return ok && swarm.IsSpawned
}

// Defeated 是否已全部击败
func (sw *Swarm) Defeated() bool {
	swarm, ok := ecs.GetComponent[*components.SwarmComponent](sw.system.entityManager, sw.entity)
	return ok && swarm.IsDefeated
}

func (s *SwarmSystem) activate(id ecs.EntityID) {
	swarm, ok := ecs.GetComponent[*components.SwarmComponent](s.entityManager, id)
	if !ok || swarm.IsActive {
		return
	}

	swarm.IsActive = true
	swarm.SpawnTimer = 0 // 第一个敌人在下一次 Update 生成
	log.Printf("[SwarmSystem] Swarm %d activated", swarm.WaveIndex+1)

	// 空敌群：立即完成
	if swarm.EnemyCount == 0 {
		s.markSpawned(swarm)
		s.checkDefeated(swarm)
	}
}

func (s *SwarmSystem) release(id ecs.EntityID) {
	swarm, ok := ecs.GetComponent[*components.SwarmComponent](s.entityManager, id)
	if !ok {
		return
	}
	swarm.IsActive = false

	for _, enemyID := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, enemyID)
		if ok && enemy.Swarm == id {
			enemy.IsDead = true
			ecs.RemoveComponent[*components.EnemyComponent](s.entityManager, enemyID)
			s.entityManager.DestroyEntity(enemyID)
		}
	}

	ecs.RemoveComponent[*components.SwarmComponent](s.entityManager, id)
	s.entityManager.DestroyEntity(id)
	log.Printf("[SwarmSystem] Swarm %d released", swarm.WaveIndex+1)
}

// Update 生成敌人并移动存活的敌人
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (s *SwarmSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.SwarmComponent](s.entityManager) {
		swarm, ok := ecs.GetComponent[*components.SwarmComponent](s.entityManager, id)
		if !ok || !swarm.IsActive || swarm.IsSpawned {
			continue
		}

		swarm.SpawnTimer -= deltaTime
		for swarm.SpawnTimer <= 0 && swarm.SpawnedCount < swarm.EnemyCount {
			s.spawnEnemy(id, swarm)
			swarm.SpawnTimer += swarm.SpawnInterval
			if swarm.SpawnInterval <= 0 {
				// 间隔为 0：本帧生成全部
				swarm.SpawnTimer = 0
			}
		}

		if swarm.SpawnedCount >= swarm.EnemyCount {
			s.markSpawned(swarm)
			s.checkDefeated(swarm)
		}
	}

	s.moveEnemies(deltaTime)
}

func (s *SwarmSystem) spawnEnemy(swarmID ecs.EntityID, swarm *components.SwarmComponent) {
	angle := s.rng.Float64() * 2 * math.Pi
	x := s.centerX + math.Cos(angle)*config.EnemySpawnRadius
	y := s.centerY + math.Sin(angle)*config.EnemySpawnRadius

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(s.entityManager, id, &components.VelocityComponent{
		VX: -math.Cos(angle) * swarm.EnemySpeed,
		VY: -math.Sin(angle) * swarm.EnemySpeed,
	})
	ecs.AddComponent(s.entityManager, id, &components.EnemyComponent{
		Swarm:      swarmID,
		Health:     swarm.EnemyHealth,
		ScoreValue: swarm.ScoreValue,
	})

	swarm.SpawnedCount++
}

func (s *SwarmSystem) markSpawned(swarm *components.SwarmComponent) {
	if swarm.IsSpawned {
		return
	}
	swarm.IsSpawned = true
	log.Printf("[SwarmSystem] Swarm %d spawned (%d enemies)", swarm.WaveIndex+1, swarm.SpawnedCount)
	s.dispatcher.Dispatch(event.Event{Type: event.SwarmSpawned, Data: event.SwarmPayload{WaveIndex: swarm.WaveIndex}})
}

// checkDefeated 全部生成且全部击败时发布 SwarmDefeated
func (s *SwarmSystem) checkDefeated(swarm *components.SwarmComponent) {
	if swarm.IsDefeated || !swarm.IsSpawned || swarm.DefeatedCount < swarm.EnemyCount {
		return
	}
	swarm.IsDefeated = true
	log.Printf("[SwarmSystem] Swarm %d defeated", swarm.WaveIndex+1)
	s.dispatcher.Dispatch(event.Event{Type: event.SwarmDefeated, Data: event.SwarmPayload{WaveIndex: swarm.WaveIndex}})
}

func (s *SwarmSystem) moveEnemies(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		if enemy.IsDead {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime

		if !s.playerDead && math.Hypot(pos.X-s.centerX, pos.Y-s.centerY) <= config.PlayerRadius+config.EnemyRadius {
			s.playerDead = true
			vel.VX, vel.VY = 0, 0
			log.Printf("[SwarmSystem] Enemy %d reached the player", id)
			s.dispatcher.Dispatch(event.Event{Type: event.PlayerDied})
		}
	}
}

// DamageEnemy 对敌人造成伤害
//
// 返回：
//   - bool: 敌人是否因此被击败
func (s *SwarmSystem) DamageEnemy(id ecs.EntityID, amount int) bool {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
	if !ok || enemy.IsDead {
		return false
	}

	enemy.Health -= amount
	if enemy.Health > 0 {
		return false
	}

	enemy.IsDead = true
	var x, y float64
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
		x, y = pos.X, pos.Y
	}
	ecs.RemoveComponent[*components.EnemyComponent](s.entityManager, id)
	s.entityManager.DestroyEntity(id)

	s.dispatcher.Dispatch(event.Event{Type: event.EnemyDefeated, Data: event.EnemyDefeatedPayload{
		X:          x,
		Y:          y,
		ScoreValue: enemy.ScoreValue,
	}})

	if swarm, ok := ecs.GetComponent[*components.SwarmComponent](s.entityManager, enemy.Swarm); ok {
		swarm.DefeatedCount++
		s.checkDefeated(swarm)
	}
	return true
}

// HitAt 攻击 (x, y) 处的敌人（点击半径内 ID 最小的存活敌人）
//
// 返回：
//   - ecs.EntityID: 被击中的敌人，未命中为 0
//   - bool: 敌人是否被击败
func (s *SwarmSystem) HitAt(x, y float64, damage int) (ecs.EntityID, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if math.Hypot(pos.X-x, pos.Y-y) <= config.EnemyRadius {
			return id, s.DamageEnemy(id, damage)
		}
	}
	return 0, false
}

// LivingEnemies 返回存活敌人ID列表
func (s *SwarmSystem) LivingEnemies() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager)
}

// IsPlayerDead 玩家是否已被敌人接触
func (s *SwarmSystem) IsPlayerDead() bool {
	return s.playerDead
}
