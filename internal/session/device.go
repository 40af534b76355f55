package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/securestore"
)

// DeviceID returns the persisted device identifier, generating it on first use.
func (m *Manager) DeviceID(ctx context.Context) (string, error) {
	m.deviceMu.Lock()
	defer m.deviceMu.Unlock()

	if m.deviceID != "" {
		return m.deviceID, nil
	}

	id, err := m.store.Get(ctx, KeyDeviceID)
	if err != nil && !errors.Is(err, securestore.ErrNotFound) {
		return "", fmt.Errorf("failed to read device id: %w", err)
	}
	if id == "" {
		id = uuid.NewString()
		if err := m.store.Set(ctx, KeyDeviceID, id); err != nil {
			// an unsaved id still identifies this process
			m.log.Warn("Failed to persist device id", zap.Error(err))
		}
	}

	m.deviceID = id
	return id, nil
}
