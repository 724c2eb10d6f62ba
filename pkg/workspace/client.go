package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Client is the Redis-backed persistence gateway for one project instance.
// All keys and channels are automatically namespaced with the instance name.
// The client is safe for concurrent use.
type Client struct {
	rdb          *redis.Client
	instanceName string
}

// NewClient creates a persistence gateway for the specified instance.
// Returns an error if instanceName is empty.
func NewClient(redisOpts *redis.Options, instanceName string) (*Client, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	return &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// SaveSnapshot serializes the (phase, project) pair as one blob under the
// fixed project key, overwriting any prior value, then publishes the full
// snapshot JSON to the snapshot events channel.
func (c *Client) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	key := ProjectKey(c.instanceName)
	if err := c.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot to Redis: %w", err)
	}

	channel := SnapshotEventsChannel(c.instanceName)
	if err := c.rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish snapshot event: %w", err)
	}

	return nil
}

// LoadSnapshot restores the persisted snapshot. A missing key is a first
// run and a corrupt or foreign blob is discarded with a warning - both
// return the default empty project at the first phase, never an error.
// Only transport failures are surfaced.
func (c *Client) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	key := ProjectKey(c.instanceName)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return DefaultSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot from Redis: %w", err)
	}

	snap, ok := DecodeSnapshot(data)
	if !ok {
		log.Printf("[WARN] Discarding unreadable snapshot for instance '%s', starting fresh", c.instanceName)
		return DefaultSnapshot(), nil
	}

	return snap, nil
}

// ResetSnapshot replaces the stored snapshot with the default empty project
// at the first phase. Subscribers see the reset as a regular snapshot event.
func (c *Client) ResetSnapshot(ctx context.Context) error {
	return c.SaveSnapshot(ctx, DefaultSnapshot())
}

// Subscription represents an active Pub/Sub subscription to snapshot events.
// Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *Snapshot
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of snapshot events. The channel is closed when
// the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *Snapshot {
	return s.events
}

// Errors returns the channel of subscription errors. Errors are non-fatal;
// the subscription continues and the offending message is skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeSnapshotEvents subscribes to snapshot saves for this instance.
// Events are delivered on a buffered channel (size 10); Redis Pub/Sub is
// at-most-once, so a slow subscriber may miss intermediate snapshots.
func (c *Client) SubscribeSnapshotEvents(ctx context.Context) (*Subscription, error) {
	channel := SnapshotEventsChannel(c.instanceName)
	pubsub := c.rdb.Subscribe(ctx, channel)

	eventsChan := make(chan *Snapshot, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var snap Snapshot
				if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal snapshot event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &snap:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}
