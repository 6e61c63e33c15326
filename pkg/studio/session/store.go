package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/NethermindEth/prompt-studio/pkg/studio/controller"
)

const (
	DefaultSize = 1000
	DefaultTTL  = 1 * time.Hour
)

// Store keeps one controller per browser session. Idle sessions expire
// after the TTL and the least recently used ones are evicted past the size.
type Store struct {
	sessions      *expirable.LRU[string, *controller.Controller]
	newController func() (*controller.Controller, error)
}

type StoreOptions struct {
	Size          int
	TTL           time.Duration
	NewController func() (*controller.Controller, error)
}

func NewStore(opts StoreOptions) (*Store, error) {
	if opts.NewController == nil {
		return nil, errors.New("controller factory is nil")
	}
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}

	return &Store{
		sessions:      expirable.NewLRU[string, *controller.Controller](opts.Size, nil, opts.TTL),
		newController: opts.NewController,
	}, nil
}

// Get returns the controller for id, creating a new session when id is
// unknown or expired. The returned id is the one the caller should keep.
func (s *Store) Get(id string) (string, *controller.Controller, error) {
	if id != "" {
		if c, ok := s.sessions.Get(id); ok {
			return id, c, nil
		}
	}

	return s.Create()
}

func (s *Store) Create() (string, *controller.Controller, error) {
	c, err := s.newController()
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	s.sessions.Add(id, c)

	return id, c, nil
}

func (s *Store) Len() int {
	return s.sessions.Len()
}
