package ecs

import (
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

type testTagComponent struct{}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 100, Y: 200})

	pos, found := GetComponent[*testPositionComponent](em, id)
	if !found {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	// 不同类型（值类型 vs 指针类型）不应混淆
	if _, found := GetComponent[testPositionComponent](em, id); found {
		t.Error("Value type lookup should not match pointer component")
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()

	// 未创建的实体：静默忽略
	AddComponent(em, EntityID(42), &testPositionComponent{})
	if HasComponent[*testPositionComponent](em, EntityID(42)) {
		t.Error("Component must not be attached to a missing entity")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component before adding")
	}

	AddComponent(em, id, &testPositionComponent{})
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Should have component after adding")
	}

	RemoveComponent[*testPositionComponent](em, id)
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component after removing")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.Exists(id) || HasComponent[*testPositionComponent](em, id) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPositionComponent{})
	AddComponent(em, id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	AddComponent(em, id3, &testVelocityComponent{})
	AddComponent(em, id3, &testPositionComponent{})
	AddComponent(em, id3, &testTagComponent{})

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 2 || both[0] != id1 || both[1] != id3 {
		t.Errorf("Expected [%d %d], got %v", id1, id3, both)
	}

	posEntities := GetEntitiesWith1[*testPositionComponent](em)
	if len(posEntities) != 3 {
		t.Errorf("Expected 3 entities with Position component, got %d", len(posEntities))
	}

	tagged := GetEntitiesWith3[*testPositionComponent, *testVelocityComponent, *testTagComponent](em)
	if len(tagged) != 1 || tagged[0] != id3 {
		t.Errorf("Expected only id3, got %v", tagged)
	}
}

func TestGetEntitiesWithOrderIsStable(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
	}

	entities := GetEntitiesWith1[*testPositionComponent](em)
	for i := 1; i < len(entities); i++ {
		if entities[i-1] >= entities[i] {
			t.Fatalf("Entities not sorted at %d: %v", i, entities)
		}
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	AddComponent(em, id1, &testPositionComponent{})
	AddComponent(em, id2, &testPositionComponent{})
	AddComponent(em, id3, &testPositionComponent{})

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.RemoveMarkedEntities()

	if HasComponent[*testPositionComponent](em, id1) {
		t.Error("id1 should be removed")
	}
	if !HasComponent[*testPositionComponent](em, id2) {
		t.Error("id2 should still exist")
	}
	if HasComponent[*testPositionComponent](em, id3) {
		t.Error("id3 should be removed")
	}
}
