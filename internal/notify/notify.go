// Package notify рассылает уведомления об изменениях сущностей:
// всегда в WebSocket-hub, дополнительно в Kafka, если она настроена.
package notify

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/messaging/kafka"
)

// Имена сущностей в уведомлениях.
const (
	EntityCategory = "CATEGORY"
	EntityProduct  = "PRODUCT"
	EntityClient   = "CLIENT"
	EntityEmployee = "EMPLOYEE"
	EntitySupplier = "SUPPLIER"
	EntityOrder    = "ORDER"
	EntityUser     = "USER"
)

// Notification — конверт уведомления, общий для WebSocket и Kafka.
type Notification struct {
	Entity     string           `json:"entity"`
	ChangeType kafka.ChangeType `json:"type"`
	Payload    interface{}      `json:"data"`
	Timestamp  time.Time        `json:"createdAt"`
}

// Broadcaster рассылает сырое сообщение подписчикам сущности.
type Broadcaster interface {
	Broadcast(entity string, payload []byte)
}

// EventPublisher публикует событие во внешнюю шину.
type EventPublisher interface {
	PublishEvent(topic, key string, event interface{}) error
}

// Notifier — точка рассылки для сервисного слоя. Producer может быть nil.
type Notifier struct {
	hub      Broadcaster
	producer EventPublisher
	logger   *log.Entry
}

// New создаёт Notifier. Nil hub допустим: уведомления тогда не рассылаются.
func New(hub Broadcaster, producer EventPublisher) *Notifier {
	return &Notifier{
		hub:      hub,
		producer: producer,
		logger:   log.WithField("component", "notifier"),
	}
}

// Created уведомляет о создании сущности.
func (n *Notifier) Created(entity, key string, payload interface{}) {
	n.notify(entity, kafka.ChangeTypeCreate, key, payload)
}

// Updated уведомляет об обновлении сущности.
func (n *Notifier) Updated(entity, key string, payload interface{}) {
	n.notify(entity, kafka.ChangeTypeUpdate, key, payload)
}

// Deleted уведомляет об удалении сущности. Payload несёт идентификатор.
func (n *Notifier) Deleted(entity, key string, payload interface{}) {
	n.notify(entity, kafka.ChangeTypeDelete, key, payload)
}

// notify работает лучшим усилием: ошибки рассылки логируются и не
// возвращаются вызывающему, мутация к этому моменту уже завершена.
func (n *Notifier) notify(entity string, change kafka.ChangeType, key string, payload interface{}) {
	if n == nil {
		return
	}

	notification := Notification{
		Entity:     entity,
		ChangeType: change,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
	}

	if n.hub != nil {
		data, err := json.Marshal(notification)
		if err != nil {
			n.logger.WithError(err).WithField("entity", entity).Error("failed to marshal notification")
		} else {
			n.hub.Broadcast(entity, data)
		}
	}

	if n.producer != nil {
		event := kafka.EntityEvent{
			Entity:     entity,
			ChangeType: change,
			Payload:    payload,
			Timestamp:  notification.Timestamp,
		}
		if err := n.producer.PublishEvent(kafka.TopicEntityEvents, key, event); err != nil {
			n.logger.WithError(err).WithField("entity", entity).Warn("failed to publish entity event")
		}
	}
}
