package db_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alwitt/scribe/db"
	"github.com/alwitt/scribe/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

// recordTestKey record an encryption key for posts to reference
func recordTestKey(t *testing.T, uut db.Client) models.EncryptionKey {
	var key models.EncryptionKey
	err := uut.UseDatabaseInTransaction(
		context.Background(), func(ctx context.Context, dbClient db.Database) error {
			var err error
			key, err = dbClient.RecordEncryptionKey(ctx, []byte(randomHex(t, 16)))
			return err
		},
	)
	assert.Nil(t, err)
	return key
}

func TestDBAllocatePost(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut := newTestClient(t)
	key := recordTestKey(t, uut)

	post1 := models.SealedPost{
		ID:        randomHex(t, 32),
		Author:    randomHex(t, 32),
		EncKeyID:  key.ID,
		EncBody:   []byte(randomHex(t, 40)),
		EncNonce:  []byte(randomHex(t, 12)),
		CreatedAt: time.Now().Unix(),
	}

	// Case 0: allocate a new post
	err := uut.UseDatabaseInTransaction(utCtx, func(ctx context.Context, dbClient db.Database) error {
		return dbClient.AllocatePost(ctx, post1)
	})
	assert.Nil(err)

	// Case 1: read it back
	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		entry, err := dbClient.GetPost(ctx, post1.ID)
		if err != nil {
			return err
		}
		assert.Equal(post1, entry)
		return nil
	})
	assert.Nil(err)

	// Case 2: same identity again, with different content
	{
		collide := post1
		collide.Author = randomHex(t, 32)
		collide.EncBody = []byte(randomHex(t, 40))
		err = uut.UseDatabaseInTransaction(utCtx, func(ctx context.Context, dbClient db.Database) error {
			return dbClient.AllocatePost(ctx, collide)
		})
		assert.ErrorIs(err, models.ErrIdentityCollision)
		assert.Equal(models.ErrorKindIdentityCollision, models.KindOf(err))

		// The original is untouched
		err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
			entry, err := dbClient.GetPost(ctx, post1.ID)
			if err != nil {
				return err
			}
			assert.Equal(post1, entry)
			return nil
		})
		assert.Nil(err)
	}

	// Case 3: malformed entries are refused
	{
		bad := post1
		bad.ID = "not-hex"
		err = uut.UseDatabaseInTransaction(utCtx, func(ctx context.Context, dbClient db.Database) error {
			return dbClient.AllocatePost(ctx, bad)
		})
		assert.Error(err)

		bad = post1
		bad.ID = randomHex(t, 32)
		bad.EncBody = nil
		err = uut.UseDatabaseInTransaction(utCtx, func(ctx context.Context, dbClient db.Database) error {
			return dbClient.AllocatePost(ctx, bad)
		})
		assert.Error(err)
		err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
			_, err := dbClient.GetPost(ctx, bad.ID)
			return err
		})
		assert.ErrorIs(err, models.ErrPostNotFound)
	}

	// Case 4: unknown post
	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		_, err := dbClient.GetPost(ctx, randomHex(t, 32))
		return err
	})
	assert.ErrorIs(err, models.ErrPostNotFound)

	// Case 5: exactly one audit event for the post
	validate := validator.New()
	assert.Nil(models.RegisterWithValidator(validate))
	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		events, err := dbClient.ListSystemEvents(ctx, db.SystemEventQueryFilter{
			EventTypes: []models.SystemEventTypeENUMType{models.SystemEventTypeAddNewPost},
		})
		if err != nil {
			return err
		}
		assert.Len(events, 1)
		parsed, err := events[0].ParseMetadata(validate)
		assert.Nil(err)
		assert.Equal(
			models.SystemEventPostRelated{PostID: post1.ID, Author: post1.Author}, parsed,
		)
		return nil
	})
	assert.Nil(err)
}

func TestDBAllocatePostRollback(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut := newTestClient(t)
	key := recordTestKey(t, uut)

	post := models.SealedPost{
		ID:        randomHex(t, 32),
		Author:    randomHex(t, 32),
		EncKeyID:  key.ID,
		EncBody:   []byte(randomHex(t, 40)),
		EncNonce:  []byte(randomHex(t, 12)),
		CreatedAt: time.Now().Unix(),
	}

	// A failure later in the same transaction discards the allocation
	errLater := errors.New("later failure")
	err := uut.UseDatabaseInTransaction(utCtx, func(ctx context.Context, dbClient db.Database) error {
		if err := dbClient.AllocatePost(ctx, post); err != nil {
			return err
		}
		return errLater
	})
	assert.ErrorIs(err, errLater)

	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		_, err := dbClient.GetPost(ctx, post.ID)
		return err
	})
	assert.ErrorIs(err, models.ErrPostNotFound)

	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		events, err := dbClient.ListSystemEvents(ctx, db.SystemEventQueryFilter{
			EventTypes: []models.SystemEventTypeENUMType{models.SystemEventTypeAddNewPost},
		})
		assert.Len(events, 0)
		return err
	})
	assert.Nil(err)
}

func TestDBAllocatePostRace(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.InfoLevel)

	utCtx := context.Background()

	uut := newTestClient(t)
	key := recordTestKey(t, uut)

	postID := randomHex(t, 32)
	racers := 8

	results := make([]error, racers)
	wg := sync.WaitGroup{}
	for itr := 0; itr < racers; itr++ {
		wg.Add(1)
		post := models.SealedPost{
			ID:        postID,
			Author:    randomHex(t, 32),
			EncKeyID:  key.ID,
			EncBody:   []byte(randomHex(t, 40)),
			EncNonce:  []byte(randomHex(t, 12)),
			CreatedAt: time.Now().Unix(),
		}
		go func(idx int) {
			defer wg.Done()
			results[idx] = uut.UseDatabaseInTransaction(
				utCtx, func(ctx context.Context, dbClient db.Database) error {
					return dbClient.AllocatePost(ctx, post)
				},
			)
		}(itr)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(err, models.ErrIdentityCollision)
		}
	}
	assert.Equal(1, succeeded)
}
