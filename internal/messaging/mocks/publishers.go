package mocks

import (
	"context"

	"cyberwise-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// Mock ClientUpdatePublisher
type ClientUpdatePublisher struct {
	mock.Mock
}

func (m *ClientUpdatePublisher) PublishClientUpdate(ctx context.Context, payload models.ClientGameUpdate) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
