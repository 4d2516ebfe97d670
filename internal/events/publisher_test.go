package events

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	pb "github.com/dmehra2102/prod-golang-projects/patient-service/gen/patient/events/v1"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
)

func decodeEvent(t *testing.T, b []byte) *pb.PatientEvent {
	t.Helper()
	var e pb.PatientEvent
	require.NoError(t, proto.Unmarshal(b, &e))
	return &e
}

func TestPatientEvent_Encode(t *testing.T) {
	e := testEvent("ann")

	b, err := e.Encode()
	require.NoError(t, err)

	decoded := decodeEvent(t, b)
	assert.Equal(t, e.PatientID.String(), decoded.GetPatientId())
	assert.Equal(t, "ann", decoded.GetName())
	assert.Equal(t, "ann@x.com", decoded.GetEmail())
	assert.Equal(t, "PATIENT_CREATED", decoded.GetEventType())
}

func TestPatientEvent_WireFormat(t *testing.T) {
	e := testEvent("ann")

	got, err := e.Encode()
	require.NoError(t, err)

	var want []byte
	for i, v := range []string{e.PatientID.String(), "ann", "ann@x.com", "PATIENT_CREATED"} {
		want = protowire.AppendTag(want, protowire.Number(i+1), protowire.BytesType)
		want = protowire.AppendString(want, v)
	}
	assert.Equal(t, want, got)
}

func TestSaramaPublisher_Publish(t *testing.T) {
	e := testEvent("ann")
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "patient" {
			return fmt.Errorf("unexpected topic %q", msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != e.PatientID.String() {
			return fmt.Errorf("unexpected key %q", key)
		}
		value, _ := msg.Value.Encode()
		var decoded pb.PatientEvent
		if err := proto.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if decoded.GetEventType() != string(PatientCreated) {
			return fmt.Errorf("unexpected event type %q", decoded.GetEventType())
		}
		return nil
	})

	p := NewSaramaPublisher(producer, "patient")
	require.NoError(t, p.Publish(context.Background(), e))
	require.NoError(t, p.Close())
}

func TestSaramaPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewSaramaPublisher(producer, "patient")
	err := p.Publish(context.Background(), testEvent("ann"))

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestNewSaramaConfig(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		sc, err := NewSaramaConfig(config.KafkaConfig{ClientID: "patient-service"}, 3*time.Second)
		require.NoError(t, err)
		assert.Equal(t, sarama.WaitForAll, sc.Producer.RequiredAcks)
		assert.True(t, sc.Producer.Return.Successes)
		assert.Equal(t, 3*time.Second, sc.Producer.Timeout)
		assert.False(t, sc.Net.SASL.Enable)
	})

	t.Run("scram", func(t *testing.T) {
		sc, err := NewSaramaConfig(config.KafkaConfig{
			SASLMechanism: "SCRAM-SHA-512",
			SASLUser:      "svc",
			SASLPassword:  "secret",
		}, 0)
		require.NoError(t, err)
		assert.True(t, sc.Net.SASL.Enable)
		assert.Equal(t, sarama.SASLMechanism(sarama.SASLTypeSCRAMSHA512), sc.Net.SASL.Mechanism)
		require.NotNil(t, sc.Net.SASL.SCRAMClientGeneratorFunc)
		assert.IsType(t, &XDGSCRAMClient{}, sc.Net.SASL.SCRAMClientGeneratorFunc())
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewSaramaConfig(config.KafkaConfig{SASLMechanism: "GSSAPI"}, 0)
		assert.ErrorContains(t, err, "unsupported SASL mechanism")
	})
}

func TestXDGSCRAMClient_FirstMessage(t *testing.T) {
	c := &XDGSCRAMClient{HashGeneratorFcn: SHA256}
	require.NoError(t, c.Begin("svc", "secret", ""))

	msg, err := c.Step("")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg, "n,,n=svc,r="), msg)
	assert.False(t, c.Done())
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestWriterPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &WriterPublisher{w: w, topic: "patient"}
	e := testEvent("ann")

	require.NoError(t, p.Publish(context.Background(), e))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, e.PatientID.String(), string(w.msgs[0].Key))
	assert.Equal(t, "PATIENT_CREATED", string(w.msgs[0].Headers[0].Value))

	assert.Equal(t, "ann@x.com", decodeEvent(t, w.msgs[0].Value).GetEmail())
}

func TestWriterPublisher_PublishFailure(t *testing.T) {
	p := &WriterPublisher{w: &fakeWriter{err: kafka.LeaderNotAvailable}, topic: "patient"}
	assert.ErrorIs(t, p.Publish(context.Background(), testEvent("ann")), kafka.LeaderNotAvailable)
}

func TestNewWriterPublisher_UsesHashBalancer(t *testing.T) {
	p := NewWriterPublisher(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "patient"}, time.Second)

	w, ok := p.w.(*kafka.Writer)
	require.True(t, ok)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
	assert.Equal(t, "patient", w.Topic)
}

type fakeAdmin struct {
	err    error
	detail *sarama.TopicDetail
	closed bool
}

func (f *fakeAdmin) CreateTopic(_ string, detail *sarama.TopicDetail, _ bool) error {
	f.detail = detail
	return f.err
}

func (f *fakeAdmin) Close() error {
	f.closed = true
	return nil
}

func TestEnsureTopic(t *testing.T) {
	cfg := config.KafkaConfig{Topic: "patient", Partitions: 3, ReplicationFactor: 1}

	t.Run("created", func(t *testing.T) {
		admin := &fakeAdmin{}
		require.NoError(t, ensureTopic(admin, cfg, zap.NewNop()))
		assert.Equal(t, int32(3), admin.detail.NumPartitions)
		assert.Equal(t, int16(1), admin.detail.ReplicationFactor)
		assert.True(t, admin.closed)
	})

	t.Run("already exists", func(t *testing.T) {
		admin := &fakeAdmin{err: &sarama.TopicError{Err: sarama.ErrTopicAlreadyExists}}
		assert.NoError(t, ensureTopic(admin, cfg, zap.NewNop()))
	})

	t.Run("broker error", func(t *testing.T) {
		admin := &fakeAdmin{err: sarama.ErrOutOfBrokers}
		err := ensureTopic(admin, cfg, zap.NewNop())
		assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
		assert.True(t, admin.closed)
	})
}
