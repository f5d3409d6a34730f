package kafka_test

import (
	"testing"

	"hotelier/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingEvent struct {
	BookingNumber string `json:"booking_number"`
	Status        string `json:"status"`
}

func TestMessage_RoundTrip(t *testing.T) {
	msg := kafka.Message{
		Key:   "B-010124-0001",
		Value: bookingEvent{BookingNumber: "B-010124-0001", Status: "checkin"},
	}

	encoded, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("B-010124-0001"), encoded.Key)
	assert.JSONEq(t, `{"booking_number":"B-010124-0001","status":"checkin"}`, string(encoded.Value))

	key, decoded, err := kafka.DecodeKafkaMessage[bookingEvent](encoded)
	require.NoError(t, err)
	assert.Equal(t, "B-010124-0001", key)
	assert.Equal(t, "checkin", decoded.Status)
}

func TestDecodeKafkaMessage_InvalidJSON(t *testing.T) {
	_, _, err := kafka.DecodeKafkaMessage[bookingEvent](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestMessage_UnsupportedValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}
