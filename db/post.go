package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/alwitt/scribe/models"
	"github.com/apex/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/*
AllocatePost persist a new sealed post under its identity. If the identity is
already occupied, returns models.ErrIdentityCollision and leaves the existing
post untouched.

	@param ctx context.Context - execution context
	@param post models.SealedPost - the sealed post
*/
func (d *databaseImpl) AllocatePost(ctx context.Context, post models.SealedPost) error {
	newEntry := PostDBEntry{SealedPost: post}

	if err := d.validator.Struct(&newEntry); err != nil {
		return fmt.Errorf("new post '%s' is not valid [%w]", post.ID, err)
	}

	// The insert is the collision check. A conflicting row means zero rows written.
	tmp := d.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&newEntry)
	if tmp.Error != nil {
		return fmt.Errorf("new post '%s' failed insert [%w]", post.ID, tmp.Error)
	}
	if tmp.RowsAffected == 0 {
		return fmt.Errorf("new post '%s' not inserted [%w]", post.ID, models.ErrIdentityCollision)
	}

	if _, err := d.appendAuditEvent(
		ctx,
		models.SystemEventTypeAddNewPost,
		models.SystemEventPostRelated{PostID: post.ID, Author: post.Author},
	); err != nil {
		return fmt.Errorf("failed to log add new post '%s' audit event [%w]", post.ID, err)
	}

	log.WithFields(d.GetLogTagsForContext(ctx)).
		WithField("post-id", post.ID).
		WithField("author", post.Author).
		Debug("Allocated new post")

	return nil
}

/*
GetPost fetch a sealed post by identity

	@param ctx context.Context - execution context
	@param postID string - post identity
	@returns sealed post entry
*/
func (d *databaseImpl) GetPost(ctx context.Context, postID string) (models.SealedPost, error) {
	var entry PostDBEntry
	if tmp := d.db.WithContext(ctx).Where("id = ?", postID).First(&entry); tmp.Error != nil {
		if errors.Is(tmp.Error, gorm.ErrRecordNotFound) {
			return models.SealedPost{}, fmt.Errorf(
				"failed to fetch post '%s' [%w]", postID, models.ErrPostNotFound,
			)
		}
		return models.SealedPost{}, fmt.Errorf("failed to fetch post '%s' [%w]", postID, tmp.Error)
	}
	return entry.SealedPost, nil
}
