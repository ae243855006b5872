package event

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ncobase/longrun/concurrency/worker"
	"github.com/ncobase/longrun/data/config"
	"github.com/ncobase/longrun/job"
	"github.com/ncobase/longrun/job/jobtest"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e *Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) snapshot() []*Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Event(nil), p.events...)
}

func startedJob(t *testing.T) *job.TimedJob {
	t.Helper()
	j := job.NewTimedJob("svc", "job 0", "duration 4", 4)
	require.NoError(t, j.Start(jobtest.Epoch))
	j.Evaluate(jobtest.Epoch)
	return j
}

func TestDispatcherPublishesThroughPool(t *testing.T) {
	pool := worker.NewPool(&worker.Config{MaxWorkers: 2, QueueSize: 8, TaskTimeout: time.Second})
	pool.Start()
	defer pool.Stop(context.Background())

	pub := &recordingPublisher{}
	d := NewDispatcher(pub, pool, time.Second)

	set := job.NewJobSet("svc")
	j := startedJob(t)
	require.NoError(t, set.Add(j))

	d.JobStarted(context.Background(), set, j)
	d.JobReconciled(context.Background(), j, job.StatusStarted)
	d.ServiceClosed(context.Background(), "svc")

	require.Eventually(t, func() bool { return len(pub.snapshot()) == 3 }, time.Second, 5*time.Millisecond)

	byType := map[EventType]*Event{}
	for _, e := range pub.snapshot() {
		byType[e.Type] = e
	}
	started := byType[EventTypeJobStarted]
	require.NotNil(t, started)
	assert.Equal(t, set.RunID, started.RunID)
	assert.Equal(t, j.ID.String(), started.JobID)
	assert.Equal(t, "STARTED", started.Status)
	assert.Equal(t, jobtest.Epoch.Unix()+4, started.End)

	assert.Equal(t, "STARTED", byType[EventTypeJobReconciled].Previous)
	assert.Equal(t, "svc", byType[EventTypeServiceClosed].Service)
}

func TestDispatcherInlineWithoutPool(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(pub, nil, 0)
	d.JobStarted(context.Background(), nil, startedJob(t))
	assert.Len(t, pub.snapshot(), 1)

	pub.err = errors.New("broker down")
	d.ServiceClosed(context.Background(), "svc")
	assert.Len(t, pub.snapshot(), 1)
}

func TestNewPublisherNoop(t *testing.T) {
	p, err := NewPublisher(context.Background(), &config.Messaging{})
	require.NoError(t, err)
	assert.IsType(t, Noop{}, p)
	assert.NoError(t, p.Publish(context.Background(), &Event{}))

	_, err = NewPublisher(context.Background(), &config.Messaging{Driver: "carrier-pigeon"})
	assert.Error(t, err)
}

type fakeNATS struct {
	subject string
	data    []byte
}

func (f *fakeNATS) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return nil
}

func TestNATSPublish(t *testing.T) {
	conn := &fakeNATS{}
	p := &NATS{conn: conn, subject: "longrun.jobs"}
	e := NewJobEvent(EventTypeJobStarted, startedJob(t))

	require.NoError(t, p.Publish(context.Background(), e))
	assert.Equal(t, "longrun.jobs.job.started", conn.subject)

	var got Event
	require.NoError(t, json.Unmarshal(conn.data, &got))
	assert.Equal(t, e.JobID, got.JobID)
	assert.NoError(t, p.Close())
}

type fakeKafka struct {
	msgs []kafka.Message
}

func (f *fakeKafka) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestKafkaPublish(t *testing.T) {
	w := &fakeKafka{}
	p := &Kafka{writer: w}
	e := NewJobEvent(EventTypeJobStarted, startedJob(t))

	require.NoError(t, p.Publish(context.Background(), e))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, e.JobID, string(w.msgs[0].Key))
	assert.Equal(t, "job.started", string(w.msgs[0].Headers[0].Value))
}

type fakeChannel struct {
	declared string
	key      string
	msg      amqp.Publishing
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	f.declared = name + "/" + kind
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.key, f.msg = key, msg
	return nil
}

func TestRabbitMQPublish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newRabbitMQ(ch, "longrun")
	require.NoError(t, err)
	assert.Equal(t, "longrun/topic", ch.declared)

	e := NewJobEvent(EventTypeJobReconciled, startedJob(t))
	require.NoError(t, p.Publish(context.Background(), e))
	assert.Equal(t, "job.reconciled", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, e.ID, ch.msg.MessageId)
}
