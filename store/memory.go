package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/alwitt/goutils"
	"github.com/alwitt/scribe/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
)

// memoryStore implements RecordStore in process memory
type memoryStore struct {
	goutils.Component
	validator *validator.Validate

	lock  sync.Mutex
	posts map[string]models.Post
}

/*
NewMemoryStore define a new in-memory record store. Contents do not survive the process.

	@returns store instance
*/
func NewMemoryStore() (RecordStore, error) {
	logTags := log.Fields{"package": "scribe", "module": "store", "component": "memory-store"}

	v, err := newPostValidator()
	if err != nil {
		return nil, err
	}

	return &memoryStore{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		validator: v,
		posts:     make(map[string]models.Post),
	}, nil
}

/*
Allocate persist a new post under an identity. The identity must not be occupied;
if it is, models.ErrIdentityCollision is returned and nothing is written.

	@param ctx context.Context - execution context
	@param identity string - the post identity
	@param post models.Post - the post
*/
func (s *memoryStore) Allocate(ctx context.Context, identity string, post models.Post) error {
	post, err := preparePost(s.validator, identity, post)
	if err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.posts[identity]; ok {
		return fmt.Errorf("post '%s' not stored [%w]", identity, models.ErrIdentityCollision)
	}
	s.posts[identity] = post

	log.WithFields(s.GetLogTagsForContext(ctx)).WithField("post-id", identity).Debug("Allocated new post")
	return nil
}

/*
Fetch read back a post

	@param ctx context.Context - execution context
	@param identity string - the post identity
	@returns the post
*/
func (s *memoryStore) Fetch(_ context.Context, identity string) (models.Post, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	post, ok := s.posts[identity]
	if !ok {
		return models.Post{}, fmt.Errorf("failed to fetch post '%s' [%w]", identity, models.ErrPostNotFound)
	}
	return post, nil
}
