// Package event 提供同步事件分发器
//
// 系统之间通过事件解耦：波次组发布生成/击败完成信号，波次序列系统订阅后推进状态；
// 敌人被击败的事件同时驱动计分与冲击波效果。
// 所有分发都在游戏主循环内同步完成，不涉及 goroutine。
package event

// Type 事件类型
type Type string

// Event 事件结构
type Event struct {
	Type Type
	Data interface{} // 事件负载，具体类型见 types.go
}

// Handler 事件处理函数
type Handler func(Event)

// SubscriptionID 订阅标识，用于取消订阅
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Dispatcher 事件分发器
type Dispatcher struct {
	nextID    SubscriptionID
	listeners map[Type][]subscription
	owners    map[SubscriptionID]Type
}

// NewDispatcher 创建新的分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		nextID:    1,
		listeners: make(map[Type][]subscription),
		owners:    make(map[SubscriptionID]Type),
	}
}

// Subscribe 订阅事件，处理函数按订阅顺序被调用
func (d *Dispatcher) Subscribe(eventType Type, handler Handler) SubscriptionID {
	id := d.nextID
	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], subscription{id: id, handler: handler})
	d.owners[id] = eventType
	return id
}

// Unsubscribe 取消订阅，未知 ID 静默忽略
func (d *Dispatcher) Unsubscribe(id SubscriptionID) {
	eventType, ok := d.owners[id]
	if !ok {
		return
	}
	delete(d.owners, id)

	listeners := d.listeners[eventType]
	for i, sub := range listeners {
		if sub.id == id {
			// 复制而非原地修改，分发中的快照不受影响
			updated := make([]subscription, 0, len(listeners)-1)
			updated = append(updated, listeners[:i]...)
			updated = append(updated, listeners[i+1:]...)
			d.listeners[eventType] = updated
			break
		}
	}
}

// Dispatch 同步分发事件给所有订阅者
// 处理函数内可以继续 Dispatch 或 Subscribe，本次分发使用进入时的订阅快照
func (d *Dispatcher) Dispatch(e Event) {
	listeners := d.listeners[e.Type]
	for _, sub := range listeners {
		sub.handler(e)
	}
}

// ListenerCount 返回某类事件的订阅数量
func (d *Dispatcher) ListenerCount(eventType Type) int {
	return len(d.listeners[eventType])
}
