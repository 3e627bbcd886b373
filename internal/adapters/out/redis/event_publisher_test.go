package redis_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	redisout "dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return server, client
}

func TestPublish_RoleEvent_ReachesRoleChannel(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "dispatch:events:role:dispatcher")
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher := redisout.NewEventPublisher(client, discardLogger())
	event := ports.Event{
		Kind:       ports.EventDeviationAlert,
		RouteID:    "f7b1c2d3-0000-0000-0000-000000000001",
		Audience:   ports.AudienceRole,
		Target:     "dispatcher",
		Message:    "critical deviation on R-100: 4.20 km off the corridor",
		OccurredAt: time.Now().UTC(),
	}
	publisher.Publish(ctx, event)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var received ports.Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &received))
	assert.Equal(t, event.Kind, received.Kind)
	assert.Equal(t, event.Message, received.Message)
	assert.Equal(t, event.RouteID, received.RouteID)
}

func TestPublish_UserEvent_ReachesUserChannel(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, "dispatch:events:user:courier-42")
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher := redisout.NewEventPublisher(client, discardLogger())
	publisher.Publish(ctx, ports.Event{
		Kind:     ports.EventShopUnlocked,
		Audience: ports.AudienceUser,
		Target:   "courier-42",
		Message:  "next stop unlocked",
	})

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var received ports.Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &received))
	assert.Equal(t, ports.EventShopUnlocked, received.Kind)
}

func TestPublish_ServerDown_DoesNotPanic(t *testing.T) {
	server, client := newTestClient(t)
	server.Close()

	publisher := redisout.NewEventPublisher(client, discardLogger())

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), ports.Event{
			Kind:     ports.EventDeliveryStarted,
			Audience: ports.AudienceRole,
			Target:   "dispatcher",
		})
	})
}
