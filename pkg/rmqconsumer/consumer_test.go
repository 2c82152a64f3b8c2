package rmqconsumer

import (
	"encoding/json"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"file-manager-api/config"
	"file-manager-api/internal/infrastructure/mq"
)

func Test_delivery_Table(t *testing.T) {
	cases := []struct {
		name       string
		routingKey string
		payload    any
		wantAction string
	}{
		{"user created", mq.EventUserCreated, mq.UserPayload{Email: "a@x.com", Username: "alice", Role: "user"}, "UserCreated"},
		{"user deleted", mq.EventUserDeleted, nil, "UserDeleted"},
		{"file uploaded", mq.EventFileUploaded, mq.FilePayload{FileID: 3, OriginalFilename: "doc.pdf"}, "FileUploaded"},
		{"file deleted", mq.EventFileDeleted, mq.FilePayload{FileID: 3}, "FileDeleted"},
		{"unknown key", "user.renamed", nil, "Unknown"},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			c := New(config.MQ{}, zap.New(core))

			e := mq.NewEvent(tt.routingKey, 7, tt.payload)
			body, err := json.Marshal(e)
			require.NoError(t, err)

			require.NoError(t, c.delivery(amqp091.Delivery{RoutingKey: tt.routingKey, Body: body}))

			entries := logs.FilterMessage("audit").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.wantAction, fields["action"])
			assert.Equal(t, e.Id.String(), fields["event_id"])
			assert.Equal(t, int64(7), fields["user_id"])
		})
	}
}

func Test_delivery_MalformedBody(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c := New(config.MQ{}, zap.New(core))

	err := c.delivery(amqp091.Delivery{RoutingKey: mq.EventFileDeleted, Body: []byte("not json")})
	require.Error(t, err)
	assert.Zero(t, logs.Len())
}

func TestConnect_InvalidDSN(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop())

	err := c.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, c.chConsume)
	require.Nil(t, c.conn)
}

func TestInit_NotConnected(t *testing.T) {
	c := New(config.MQ{}, zap.NewNop())
	require.ErrorIs(t, c.Init(), ErrNotConnected)
	require.NoError(t, c.Close())
}
