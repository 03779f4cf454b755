// Package cache — keyed-кэш сущностей по идентификатору поверх LRU.
// Сервисы используют его декоративно: read-through на Get-by-id,
// write-through на create/update, евикция на delete. Политика вытеснения
// целиком принадлежит LRU-провайдеру.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache — потокобезопасный кэш "сущность по ключу". nil-кэш ведёт себя
// как выключенный: Get всегда промахивается, Put/Evict — no-op.
type Cache[K comparable, V any] struct {
	lru      *lru.Cache[K, V]
	onLookup func(hit bool)
}

// New создаёт кэш с заданной вместимостью.
func New[K comparable, V any](size int) (*Cache[K, V], error) {
	inner, err := lru.New[K, V](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &Cache[K, V]{lru: inner}, nil
}

// OnLookup регистрирует callback, вызываемый на каждом обращении к Get
// с исходом поиска. Используется для метрик попаданий в кэш.
func (c *Cache[K, V]) OnLookup(fn func(hit bool)) {
	if c == nil {
		return
	}
	c.onLookup = fn
}

// Get возвращает закэшированное значение, если оно есть.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if c == nil || c.lru == nil {
		var zero V
		return zero, false
	}
	value, ok := c.lru.Get(key)
	if c.onLookup != nil {
		c.onLookup(ok)
	}
	return value, ok
}

// Put записывает значение по ключу (write-through после мутации).
func (c *Cache[K, V]) Put(key K, value V) {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Add(key, value)
}

// Evict удаляет значение по ключу (после delete).
func (c *Cache[K, V]) Evict(key K) {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Remove(key)
}

// Len возвращает число закэшированных записей.
func (c *Cache[K, V]) Len() int {
	if c == nil || c.lru == nil {
		return 0
	}
	return c.lru.Len()
}
