package kafka

import "time"

// ChangeType определяет вид изменения сущности.
type ChangeType string

const (
	ChangeTypeCreate ChangeType = "CREATE"
	ChangeTypeUpdate ChangeType = "UPDATE"
	ChangeTypeDelete ChangeType = "DELETE"
)

// TopicEntityEvents — топик, куда публикуются все изменения сущностей.
const TopicEntityEvents = "tienda.entity.events"

// EntityEvent — конверт события об изменении сущности. Payload несёт
// состояние сущности после операции, для удаления — идентификатор.
type EntityEvent struct {
	Entity     string      `json:"entity"`
	ChangeType ChangeType  `json:"type"`
	Payload    interface{} `json:"data"`
	Timestamp  time.Time   `json:"createdAt"`
}

// NewEntityEvent создаёт событие с текущим временем.
func NewEntityEvent(entity string, changeType ChangeType, payload interface{}) EntityEvent {
	return EntityEvent{
		Entity:     entity,
		ChangeType: changeType,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
	}
}
