package testhelpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

// NewRabbitMQ starts a RabbitMQ container and returns its AMQP URL.
// The container is terminated when the test finishes.
func NewRabbitMQ(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx,
		"rabbitmq:3.12-management-alpine",
		rabbitmq.WithAdminPassword("password"),
	)
	require.NoError(t, err, "Failed to start rabbitmq container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate rabbitmq container: %v", err)
		}
	})

	url, err := container.AmqpURL(ctx)
	require.NoError(t, err, "Failed to get AMQP URL")
	return url
}
