package app

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// ClientFactory builds the per-session fetcher pair. Each session owns its
// own clients so the single-flight busy guards stay per-session.
type ClientFactory interface {
	NewMetadataFetcher() domain.MetadataFetcher
	NewAssetFetcher() domain.AssetFetcher
}

// SessionManager tracks the live retrieval sessions, one per downloader
// page. Sessions are created when a page mounts and discarded when it
// unmounts; nothing in a session outlives its removal.
type SessionManager struct {
	clients  ClientFactory
	notifier domain.Notifier
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a new session manager
func NewSessionManager(clients ClientFactory, notifier domain.Notifier, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		clients:  clients,
		notifier: notifier,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create creates a session for the platform
func (m *SessionManager) Create(platform domain.Platform) (*Session, error) {
	if !domain.ValidatePlatform(platform) {
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}

	session, err := NewSession(
		platform,
		m.clients.NewMetadataFetcher(),
		m.clients.NewAssetFetcher(),
		m.notifier,
		m.logger,
	)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.logger.Info("Session created",
		zap.String("session", session.ID),
		zap.String("platform", string(platform)))
	return session, nil
}

// Get returns a session by ID
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return session, nil
}

// Remove discards a session
func (m *SessionManager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	// Invalidate any in-flight fetch so a late completion is discarded.
	session.EditURL()
	delete(m.sessions, id)

	m.logger.Info("Session removed", zap.String("session", id))
	return nil
}

// Count returns the number of live sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
