// Package events domain.EventBus 的实现：日志、Redis Pub/Sub 和计数装饰
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-gin-gorm-library/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultChannel = "library.events"

// Envelope 对外投递的事件格式
type Envelope struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	OccurredAt time.Time    `json:"occurredAt"`
	Payload    domain.Event `json:"payload"`
}

func Wrap(e domain.Event) Envelope {
	return Envelope{ID: uuid.NewString(), Name: e.EventName(), OccurredAt: e.OccurredAt(), Payload: e}
}

// LogBus 仅写日志，没有外部订阅方时使用
type LogBus struct{ L *zap.Logger }

func (b LogBus) Publish(_ context.Context, e domain.Event) {
	b.L.Info("domain event", zap.String("event", e.EventName()), zap.Time("occurredAt", e.OccurredAt()), zap.Any("payload", e))
}

// RedisBus 以 JSON 发布到 Redis 频道；失败只记日志
type RedisBus struct {
	rdb     redis.UniversalClient
	channel string
	log     *zap.Logger
}

func NewRedisBus(rdb redis.UniversalClient, channel string, l *zap.Logger) *RedisBus {
	if channel == "" {
		channel = DefaultChannel
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &RedisBus{rdb: rdb, channel: channel, log: l}
}

func (b *RedisBus) Publish(ctx context.Context, e domain.Event) {
	env := Wrap(e)
	payload, err := json.Marshal(env)
	if err != nil {
		b.log.Error("encode event failed", zap.String("event", env.Name), zap.Error(err))
		return
	}
	// 请求结束后 ctx 可能已取消，投递不跟随请求生命周期
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := b.rdb.Publish(pubCtx, b.channel, payload).Err(); err != nil {
		b.log.Warn("publish event failed",
			zap.String("event", env.Name), zap.String("id", env.ID),
			zap.String("channel", b.channel), zap.Error(err))
		return
	}
	b.log.Debug("event published", zap.String("event", env.Name), zap.String("id", env.ID))
}

// Fanout 依次投递给多个总线
type Fanout []domain.EventBus

func (f Fanout) Publish(ctx context.Context, e domain.Event) {
	for _, b := range f {
		b.Publish(ctx, e)
	}
}

// Counting 按事件名计数后转交 next
type Counting struct {
	next  domain.EventBus
	total *prometheus.CounterVec
}

func NewCounting(next domain.EventBus, reg prometheus.Registerer) (*Counting, error) {
	total := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "library_domain_events_total", Help: "Count of published domain events"},
		[]string{"event"},
	)
	if reg != nil {
		if err := reg.Register(total); err != nil {
			// 同一进程多次组装时复用已注册的计数器
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, err
			}
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, err
			}
			total = existing
		}
	}
	return &Counting{next: next, total: total}, nil
}

func (c *Counting) Publish(ctx context.Context, e domain.Event) {
	c.total.WithLabelValues(e.EventName()).Inc()
	c.next.Publish(ctx, e)
}
