// Package posts - post creation request handling
package posts

import (
	"context"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/alwitt/scribe/auth"
	"github.com/alwitt/scribe/models"
	"github.com/alwitt/scribe/store"
	"github.com/apex/log"
)

// CreatePostRequest a request to create a post
type CreatePostRequest struct {
	// Identity caller chosen post identity
	Identity string
	// Topic optional post topic
	Topic string
	// Content post content
	Content string
	// Authorizer principal claiming authorship
	Authorizer auth.Principal
	// Authorization the authorizer's signed consent to this post
	Authorization string
}

// Intent the post the request asks to create
func (r CreatePostRequest) Intent() auth.PostIntent {
	return auth.PostIntent{Identity: r.Identity, Topic: r.Topic, Content: r.Content}
}

// Handler post operations
type Handler interface {
	/*
		CreatePost validate, authorize, and store a new post

			@param ctx context.Context - execution context
			@param req CreatePostRequest - the request
			@returns the stored post
	*/
	CreatePost(ctx context.Context, req CreatePostRequest) (models.Post, error)

	/*
		GetPost read back a post

			@param ctx context.Context - execution context
			@param identity string - the post identity
			@returns the post
	*/
	GetPost(ctx context.Context, identity string) (models.Post, error)
}

// handlerImpl implements Handler
type handlerImpl struct {
	goutils.Component
	records  store.RecordStore
	verifier auth.Verifier
	stamper  *monotonicStamper
}

/*
NewHandler define new post handler

	@param records store.RecordStore - post storage
	@param verifier auth.Verifier - authorization verifier
	@param clock Clock - creation stamp time source
	@returns handler
*/
func NewHandler(records store.RecordStore, verifier auth.Verifier, clock Clock) (Handler, error) {
	if records == nil || verifier == nil {
		return nil, fmt.Errorf("post handler needs a record store and a verifier")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &handlerImpl{
		Component: goutils.Component{
			LogTags: log.Fields{"package": "scribe", "module": "posts", "component": "handler"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		records:  records,
		verifier: verifier,
		stamper:  &monotonicStamper{clock: clock},
	}, nil
}

// checkShape the content checks which need no authorization or storage access
func checkShape(req CreatePostRequest) error {
	if err := models.TextError(req.Topic, req.Content); err != nil {
		return err
	}
	if !models.IsValidPostIdentity(req.Identity) {
		return models.ErrInvalidIdentity
	}
	return nil
}

func (h *handlerImpl) CreatePost(ctx context.Context, req CreatePostRequest) (models.Post, error) {
	logTags := h.GetLogTagsForContext(ctx)
	logTags["post-id"] = req.Identity

	if err := checkShape(req); err != nil {
		log.WithFields(logTags).WithError(err).Debug("Post rejected")
		return models.Post{}, err
	}

	principal, err := h.verifier.VerifyCreatePost(ctx, req.Authorization, req.Intent())
	if err != nil {
		return models.Post{}, err
	}
	if principal != req.Authorizer {
		log.WithFields(logTags).
			WithField("claimed", req.Authorizer).
			WithField("signed", principal).
			Debug("Post authorized by a different principal")
		return models.Post{}, fmt.Errorf(
			"authorized by '%s', not '%s' [%w]", principal, req.Authorizer, models.ErrUnauthorized,
		)
	}

	post := models.Post{
		ID:        req.Identity,
		Author:    principal.String(),
		Topic:     req.Topic,
		Content:   req.Content,
		CreatedAt: h.stamper.next(),
	}
	if err := h.records.Allocate(ctx, req.Identity, post); err != nil {
		log.WithFields(logTags).WithError(err).Debug("Post allocation failed")
		return models.Post{}, err
	}

	log.WithFields(logTags).WithField("author", principal).Info("Created post")
	return post, nil
}

func (h *handlerImpl) GetPost(ctx context.Context, identity string) (models.Post, error) {
	if !models.IsValidPostIdentity(identity) {
		return models.Post{}, models.ErrInvalidIdentity
	}
	return h.records.Fetch(ctx, identity)
}
