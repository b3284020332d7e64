package events

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go-gin-gorm-library/internal/domain"
)

type recorder struct{ got []domain.Event }

func (r *recorder) Publish(_ context.Context, e domain.Event) { r.got = append(r.got, e) }

var created = domain.LoanCreated{LoanID: 1, BookID: 2, MemberID: 3, LoanDate: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}

func TestEnvelopeEncoding(t *testing.T) {
	env := Wrap(created)
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, domain.EventLoanCreated, env.Name)

	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "`+env.ID+`",
		"name": "loan.created",
		"occurredAt": "2024-06-01T12:00:00Z",
		"payload": {"loanId": 1, "bookId": 2, "memberId": 3, "loanDate": "2024-06-01T12:00:00Z"}
	}`, string(b))
}

func TestCountingDecorator(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := &recorder{}
	c, err := NewCounting(rec, reg)
	require.NoError(t, err)

	c.Publish(context.Background(), created)
	c.Publish(context.Background(), created)
	c.Publish(context.Background(), domain.LoanReturned{LoanID: 1})

	assert.Len(t, rec.got, 3)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.total.WithLabelValues(domain.EventLoanCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.total.WithLabelValues(domain.EventLoanReturned)))

	again, err := NewCounting(rec, reg)
	require.NoError(t, err)
	again.Publish(context.Background(), created)
	assert.Equal(t, 3.0, testutil.ToFloat64(c.total.WithLabelValues(domain.EventLoanCreated)))

	clash := prometheus.NewRegistry()
	clash.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{Name: "library_domain_events_total", Help: "x"}))
	_, err = NewCounting(rec, clash)
	assert.Error(t, err)
}

func TestLogBusAndFanout(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	rec := &recorder{}
	Fanout{LogBus{L: zap.New(core)}, rec}.Publish(context.Background(), created)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "domain event", entry.Message)
	assert.Equal(t, "loan.created", entry.ContextMap()["event"])
	assert.Len(t, rec.got, 1)
}

func TestRedisBusLogsDeliveryFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	bus := NewRedisBus(rdb, "", zap.New(core))
	assert.Equal(t, DefaultChannel, bus.channel)

	bus.Publish(context.Background(), created)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "publish event failed", logs.All()[0].Message)
}
