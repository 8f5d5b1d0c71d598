package store

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Feed topics for the two mirrored collections.
const (
	TopicRequestsChanged = "repairdesk.requests.changed"
	TopicUsersChanged    = "repairdesk.users.changed"
)

// ChangeFeed is the push channel that keeps snapshot mirrors fresh across
// processes. A publish carries no payload: subscribers reload the whole
// snapshot from the repository instead of patching it in place.
type ChangeFeed interface {
	Publish(ctx context.Context, topic string) error
	Subscribe(ctx context.Context, topic string) (<-chan struct{}, func(), error)
}

type redisFeed struct {
	client *redis.Client
}

// NewRedisFeed builds a ChangeFeed over Redis pub/sub.
func NewRedisFeed(client *redis.Client) ChangeFeed {
	return &redisFeed{client: client}
}

func (f *redisFeed) Publish(ctx context.Context, topic string) error {
	return f.client.Publish(ctx, topic, "1").Err()
}

func (f *redisFeed) Subscribe(ctx context.Context, topic string) (<-chan struct{}, func(), error) {
	pubsub := f.client.Subscribe(ctx, topic)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for range pubsub.Channel() {
			select {
			case out <- struct{}{}:
			default:
				// refresh already pending, coalesce
			}
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return out, cancel, nil
}

type memoryFeed struct {
	mu   sync.Mutex
	subs map[string][]chan struct{}
}

// NewMemoryFeed builds an in-process ChangeFeed for tests and for running
// without Redis.
func NewMemoryFeed() ChangeFeed {
	return &memoryFeed{subs: make(map[string][]chan struct{})}
}

func (f *memoryFeed) Publish(ctx context.Context, topic string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (f *memoryFeed) Subscribe(ctx context.Context, topic string) (<-chan struct{}, func(), error) {
	ch := make(chan struct{}, 1)
	f.mu.Lock()
	f.subs[topic] = append(f.subs[topic], ch)
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		subs := f.subs[topic]
		for i, sub := range subs {
			if sub == ch {
				f.subs[topic] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
	return ch, cancel, nil
}
