package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testRevealComponent struct {
	Order int
}

type testLoopComponent struct {
	PeriodSeconds float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID从1开始，0保留为无效ID
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
	if em.Count() != 2 {
		t.Errorf("Expected 2 live entities, got %d", em.Count())
	}
}

func TestGenericAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testRevealComponent{Order: 3})

	comp, ok := GetComponent[*testRevealComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if comp.Order != 3 {
		t.Errorf("Expected order 3, got %d", comp.Order)
	}

	// 泛型与反射接口共用同一个类型键
	if !em.HasComponent(id, reflect.TypeOf(&testRevealComponent{})) {
		t.Error("Generic and reflect APIs should share component keys")
	}

	if _, ok := GetComponent[*testLoopComponent](em, id); ok {
		t.Error("Missing component type should not be found")
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testLoopComponent{PeriodSeconds: 2})

	RemoveComponent[*testLoopComponent](em, id)

	if HasComponent[*testLoopComponent](em, id) {
		t.Error("Component should be removed")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testRevealComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestDestroyAll(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testRevealComponent{Order: i})
	}

	em.DestroyAll()

	if em.Count() != 0 {
		t.Errorf("Expected no entities after DestroyAll, got %d", em.Count())
	}
	if got := GetEntitiesWith1[*testRevealComponent](em); len(got) != 0 {
		t.Errorf("Query after DestroyAll should be empty, got %v", got)
	}

	// 新实体的ID不复用
	if id := em.CreateEntity(); id != 6 {
		t.Errorf("Expected next ID 6, got %d", id)
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testRevealComponent{Order: i})
		if i%2 == 0 {
			AddComponent(em, id, &testLoopComponent{})
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testRevealComponent, *testLoopComponent](em)
	if len(got) != len(want) {
		t.Fatalf("Expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Result should be in ascending ID order: index %d got %d want %d", i, got[i], want[i])
		}
	}

	all := GetEntitiesWith1[*testRevealComponent](em)
	if len(all) != 50 {
		t.Errorf("Expected 50 entities with reveal component, got %d", len(all))
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()

	// 不存在的实体：静默忽略
	AddComponent(em, EntityID(42), &testRevealComponent{})

	if em.Exists(EntityID(42)) {
		t.Error("AddComponent must not create entities implicitly")
	}
}
