package tokenization

import (
	"sync"
	"sync/atomic"

	"github.com/cyphera/storefront/internal/logger"
	"go.uber.org/zap"
)

// Loader initializes the provider lazily, exactly once, the first time the
// buyer picks credit card. Later loads return the same provider.
type Loader struct {
	factory func() (Provider, error)

	once     sync.Once
	loaded   atomic.Bool
	provider Provider
	err      error
	loads    atomic.Int32
}

// NewLoader wraps a provider factory
func NewLoader(factory func() (Provider, error)) *Loader {
	return &Loader{factory: factory}
}

// NewRSALoader returns a loader building an RSAProvider for publicKey
func NewRSALoader(publicKey string, options ...RSAOption) *Loader {
	return NewLoader(func() (Provider, error) {
		return NewRSAProvider(publicKey, options...), nil
	})
}

// Load runs the factory on first call and returns its outcome on every call
func (l *Loader) Load() (Provider, error) {
	l.once.Do(func() {
		l.loads.Add(1)
		l.provider, l.err = l.factory()
		if l.err != nil {
			logger.Error("Failed to load tokenization provider", zap.Error(l.err))
			return
		}
		l.loaded.Store(true)
		logger.Debug("Tokenization provider loaded")
	})
	return l.provider, l.err
}

// Loaded reports whether Load completed successfully
func (l *Loader) Loaded() bool {
	return l.loaded.Load()
}

// Provider returns the loaded provider or ErrSDKNotLoaded
func (l *Loader) Provider() (Provider, error) {
	if !l.loaded.Load() {
		return nil, ErrSDKNotLoaded
	}
	return l.provider, nil
}

// Loads reports how many times the factory ran (0 or 1)
func (l *Loader) Loads() int {
	return int(l.loads.Load())
}
