package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/arbormail/arbormail/internal/config"
	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/store"
	"github.com/arbormail/arbormail/internal/validators"
	"github.com/arbormail/arbormail/models"
)

// redactedSecret replaces private key material in management API dumps.
const redactedSecret = "<redacted>"

// configService is the concrete implementation of ConfigService.
type configService struct {
	// snapshot is the validated configuration the daemon booted with.
	// Read-only after construction.
	snapshot *config.ServerConfig

	// store is the persistent key-value extension of the configuration
	// file. Nil when the daemon runs without a store.
	store store.ConfigStore

	// resolvers is the macro resolver registry Check loads candidate
	// documents with, the same registry the daemon booted with.
	resolvers config.Resolvers

	// validator guards store writes coming in over the management API.
	validator validators.Validator

	logger *logger.Logger
}

// NewConfigService constructs a ConfigService over the booted snapshot.
// configStore may be nil; store-backed operations then return
// ErrStoreNotConfigured and Ping reports healthy.
func NewConfigService(snapshot *config.ServerConfig, configStore store.ConfigStore, resolvers config.Resolvers, logger *logger.Logger) ConfigService {
	return &configService{
		snapshot:  snapshot,
		store:     configStore,
		resolvers: resolvers,
		validator: validators.NewConfigKeyValidator(),
		logger:    logger,
	}
}

// Effective returns the configuration the daemon booted with, certificate
// private keys masked. The returned copy is safe to serialize; callers must
// treat it as read-only because nested pointer fields stay shared with the
// live snapshot.
func (c *configService) Effective(ctx context.Context) (*config.ServerConfig, error) {
	return redacted(c.snapshot), nil
}

// Check runs a candidate document through the full load pipeline — parse,
// resolve, bind, validate — without applying it.
//
// A clean document yields a report with OK set and a summary of the bound
// hostname and listeners. A rejected document yields the structured failure:
// kind, dotted key path, operator-facing message.
func (c *configService) Check(ctx context.Context, document []byte) models.CheckReport {
	log := logger.FromContext(ctx)

	cfg, err := config.Load(ctx, string(document), c.resolvers)
	if err != nil {
		var loadErr *config.Error
		if errors.As(err, &loadErr) {
			log.Info().
				Str("kind", loadErr.Kind.String()).
				Str("key", loadErr.Key).
				Msg("config check rejected document")
			return models.CheckReport{
				Kind:    loadErr.Kind.String(),
				Key:     loadErr.Key,
				Message: loadErr.Message,
			}
		}

		// Load classifies every failure as *config.Error; anything else is
		// a resolver panic-level surprise, surfaced verbatim.
		log.Err(err).Msg("config check failed")
		return models.CheckReport{Kind: "error", Message: err.Error()}
	}

	return models.CheckReport{
		OK:        true,
		Hostname:  cfg.Hostname,
		Listeners: cfg.ListenerNames(),
	}
}

// Keys lists the store's entries, optionally restricted to a dotted-key
// prefix. Returns ErrStoreNotConfigured when the daemon runs without a
// store.
func (c *configService) Keys(ctx context.Context, prefix string) ([]models.ConfigKey, error) {
	if c.store == nil {
		return nil, ErrStoreNotConfigured
	}

	keys, err := c.store.ListKeys(ctx, prefix)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("prefix", prefix).Msg("config key listing failed")
		return nil, fmt.Errorf("config key listing failed: %w", err)
	}

	return keys, nil
}

// SetKeys upserts the given entries into the store.
//
// Returns ErrStoreNotConfigured when the daemon runs without a store and
// ErrInvalidDataProvided when no entries are given or an entry fails the
// key-path or value-size rules.
func (c *configService) SetKeys(ctx context.Context, entries ...models.ConfigKey) error {
	if c.store == nil {
		return ErrStoreNotConfigured
	}

	if err := c.validator.Validate(ctx, entries); err != nil {
		logger.FromContext(ctx).Err(err).Int("entries", len(entries)).Msg("config key upsert rejected")
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := c.store.SetKeys(ctx, entries...); err != nil {
		logger.FromContext(ctx).Err(err).Int("entries", len(entries)).Msg("config key upsert failed")
		return fmt.Errorf("config key upsert failed: %w", err)
	}

	return nil
}

// DeleteKey removes one entry from the store. A key that fails the path
// rules is rejected as ErrInvalidDataProvided before the store is asked;
// store misses surface as store.ErrKeyNotFound via the wrapped error.
func (c *configService) DeleteKey(ctx context.Context, key string) error {
	if c.store == nil {
		return ErrStoreNotConfigured
	}

	if err := c.validator.Validate(ctx, models.ConfigKey{Key: key}, validators.FieldKey); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := c.store.DeleteKey(ctx, key); err != nil {
		logger.FromContext(ctx).Err(err).Str("key", key).Msg("config key delete failed")
		return fmt.Errorf("config key delete failed: %w", err)
	}

	return nil
}

// Ping reports store health. A daemon running without a store is healthy.
func (c *configService) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	return c.store.Ping(ctx)
}

// redacted returns a copy of cfg safe to hand across the management API:
// certificate private keys are masked. The top-level maps are copied so
// redaction never touches the live snapshot.
func redacted(cfg *config.ServerConfig) *config.ServerConfig {
	out := *cfg

	out.Listeners = make(map[string]config.ListenerConfig, len(cfg.Listeners))
	for name, listener := range cfg.Listeners {
		out.Listeners[name] = listener
	}

	out.Certificates = make(map[string]config.CertificateConfig, len(cfg.Certificates))
	for name, cert := range cfg.Certificates {
		if cert.PrivateKey != "" {
			cert.PrivateKey = redactedSecret
		}
		out.Certificates[name] = cert
	}

	return &out
}
