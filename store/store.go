// Package store - post record storage
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/alwitt/scribe/models"
	"github.com/go-playground/validator/v10"
)

// RecordStore keyed post storage. Each identity holds at most one post, which is never
// changed once allocated.
type RecordStore interface {
	/*
		Allocate persist a new post under an identity. The identity must not be occupied;
		if it is, models.ErrIdentityCollision is returned and nothing is written.

			@param ctx context.Context - execution context
			@param identity string - the post identity
			@param post models.Post - the post
	*/
	Allocate(ctx context.Context, identity string, post models.Post) error

	/*
		Fetch read back a post

			@param ctx context.Context - execution context
			@param identity string - the post identity
			@returns the post
	*/
	Fetch(ctx context.Context, identity string) (models.Post, error)
}

// newPostValidator define a validator which understands the post validation tags
func newPostValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := models.RegisterWithValidator(v); err != nil {
		return nil, fmt.Errorf("failed to install custom validation macros [%w]", err)
	}
	return v, nil
}

// preparePost bind the post to the identity, and verify it is storable
func preparePost(v *validator.Validate, identity string, post models.Post) (models.Post, error) {
	if !models.IsValidPostIdentity(identity) {
		return models.Post{}, fmt.Errorf("post identity '%s' rejected [%w]", identity, models.ErrInvalidIdentity)
	}
	post.ID = identity
	if err := v.Struct(&post); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				switch fieldErr.Tag() {
				case "post_topic", "post_content":
					if kindErr := models.TextError(post.Topic, post.Content); kindErr != nil {
						return models.Post{}, fmt.Errorf(
							"post '%s' is not valid: %s [%w]", identity, err.Error(), kindErr,
						)
					}
				}
			}
		}
		return models.Post{}, fmt.Errorf("post '%s' is not valid [%w]", identity, err)
	}
	return post, nil
}
