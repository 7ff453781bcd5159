package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/config"
)

// ConnectNATS establishes a reconnecting NATS connection.
func ConnectNATS(cfg config.NATSConfig, appName string, logger *zap.Logger) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(appName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			if sub != nil {
				logger.Error("nats subscription error", zap.String("subject", sub.Subject), zap.Error(err))
				return
			}
			logger.Error("nats async error", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats at %s: %w", cfg.URL, err)
	}
	logger.Info("connected to nats", zap.String("url", nc.ConnectedUrl()))
	return nc, nil
}

// NATSStore keeps snapshots in a JetStream key-value bucket.
// The connection is shared and is not closed by the store.
type NATSStore struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSStore creates the bucket or binds to an existing one.
func NewNATSStore(conn *nats.Conn, cfg config.NATSConfig) (*NATSStore, error) {
	if conn == nil {
		return nil, errors.New("nats connection required for nats driver")
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	kv, err := js.CreateKeyValue(&nats.KeyValueConfig{
		Bucket:      cfg.KVBucket,
		Description: "Department snapshots",
		History:     5,
	})
	if err != nil {
		kv, err = js.KeyValue(cfg.KVBucket)
		if err != nil {
			return nil, fmt.Errorf("create/bind %s KV bucket: %w", cfg.KVBucket, err)
		}
	}
	return &NATSStore{conn: conn, kv: kv}, nil
}

func (s *NATSStore) Load(_ context.Context, key string) ([]byte, error) {
	entry, err := s.kv.Get(key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return entry.Value(), nil
}

func (s *NATSStore) Save(_ context.Context, key string, data []byte) error {
	if _, err := s.kv.Put(key, data); err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

func (s *NATSStore) Ping(ctx context.Context) error {
	if !s.conn.IsConnected() {
		return errors.New("nats not connected")
	}
	return s.conn.FlushWithContext(ctx)
}

func (s *NATSStore) Close() error { return nil }

func (s *NATSStore) Driver() string { return config.DriverNATS }
