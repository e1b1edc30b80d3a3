package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformkafka "github.com/Apurer/go-gin-eshop/internal/platform/kafka"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

type fakeReader struct {
	queue     []kafka.Message
	fetchErr  error
	committed []kafka.Message
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if f.fetchErr != nil {
		return kafka.Message{}, f.fetchErr
	}
	if len(f.queue) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := f.queue[0]
	f.queue = f.queue[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func message(t *testing.T, id string) kafka.Message {
	t.Helper()
	data, err := json.Marshal(newShipmentMessage{ShippingID: id})
	require.NoError(t, err)
	return kafka.Message{Key: []byte(id), Value: data}
}

func TestSendNewShipping_WritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, &fakeReader{})

	require.NoError(t, p.SendNewShipping(context.Background(), "ship-1"))
	require.Len(t, w.written, 1)
	assert.Equal(t, "ship-1", string(w.written[0].Key))

	var payload newShipmentMessage
	require.NoError(t, json.Unmarshal(w.written[0].Value, &payload))
	assert.Equal(t, "ship-1", payload.ShippingID)
}

func TestSendNewShipping_PropagatesWriteError(t *testing.T) {
	p := newPublisher(&fakeWriter{err: errors.New("broker down")}, &fakeReader{})
	require.EqualError(t, p.SendNewShipping(context.Background(), "ship-1"), "broker down")
}

func TestPollShipping_CollectsUntilWindowCloses(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{
		message(t, "a"),
		message(t, "b"),
		message(t, "a"),
		{Key: []byte("c"), Value: []byte("not json")},
	}}
	p := newPublisher(&fakeWriter{}, r, WithPollWait(20*time.Millisecond))

	ids, err := p.PollShipping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Len(t, r.committed, 4)
}

func TestPollShipping_RespectsMaxBatch(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{message(t, "a"), message(t, "b"), message(t, "c")}}
	p := newPublisher(&fakeWriter{}, r, WithMaxBatch(2))

	ids, err := p.PollShipping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Len(t, r.queue, 1)
}

func TestPollShipping_EmptyTopic(t *testing.T) {
	r := &fakeReader{}
	p := newPublisher(&fakeWriter{}, r, WithPollWait(10*time.Millisecond))

	ids, err := p.PollShipping(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, r.committed)
}

func TestPollShipping_FetchFailure(t *testing.T) {
	p := newPublisher(&fakeWriter{}, &fakeReader{fetchErr: errors.New("rebalance")})
	_, err := p.PollShipping(context.Background())
	require.ErrorContains(t, err, "rebalance")
}

func TestNewPublisher_RequiresBrokers(t *testing.T) {
	_, err := NewPublisher(platformkafka.NewClient(""), "", "group")
	require.Error(t, err)
}

func TestClose_ClosesBoth(t *testing.T) {
	w, r := &fakeWriter{}, &fakeReader{}
	require.NoError(t, newPublisher(w, r).Close())
	assert.True(t, w.closed)
	assert.True(t, r.closed)
}
