package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"menucup/internal/mail"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mail.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}
