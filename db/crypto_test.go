package db_test

import (
	"context"
	"testing"

	"github.com/alwitt/scribe/db"
	"github.com/alwitt/scribe/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDBEncryptionKeyRecord(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut := newTestClient(t)

	// Case 0: record two keys
	var key1, key2 models.EncryptionKey
	keyMaterial1 := []byte(uuid.NewString())
	keyMaterial2 := []byte(uuid.NewString())
	err := uut.UseDatabaseInTransaction(utCtx, func(ctx context.Context, dbClient db.Database) error {
		var err error
		if key1, err = dbClient.RecordEncryptionKey(ctx, keyMaterial1); err != nil {
			return err
		}
		key2, err = dbClient.RecordEncryptionKey(ctx, keyMaterial2)
		return err
	})
	assert.Nil(err)
	assert.Equal(models.EncryptionKeyStateActive, key1.State)
	assert.NotEqual(key1.ID, key2.ID)

	// Case 1: read back
	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		ek, err := dbClient.GetEncryptionKey(ctx, key1.ID)
		if err != nil {
			return err
		}
		assert.Equal(keyMaterial1, ek.EncKeyMaterial)
		ek, err = dbClient.GetEncryptionKey(ctx, key2.ID)
		if err != nil {
			return err
		}
		assert.Equal(keyMaterial2, ek.EncKeyMaterial)
		return nil
	})
	assert.Nil(err)

	// Case 2: unknown key
	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		_, err := dbClient.GetEncryptionKey(ctx, uuid.NewString())
		return err
	})
	assert.Error(err)

	// Case 3: list active keys
	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		keys, err := dbClient.ListEncryptionKeys(ctx, db.EncryptionKeyQueryFilter{
			TargetState: []models.EncryptionKeyStateENUMType{models.EncryptionKeyStateActive},
		})
		if err != nil {
			return err
		}
		assert.Len(keys, 2)
		ids := map[string]bool{}
		for _, key := range keys {
			ids[key.ID] = true
		}
		assert.True(ids[key1.ID])
		assert.True(ids[key2.ID])
		return nil
	})
	assert.Nil(err)

	// Case 4: no inactive keys
	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		keys, err := dbClient.ListEncryptionKeys(ctx, db.EncryptionKeyQueryFilter{
			TargetState: []models.EncryptionKeyStateENUMType{models.EncryptionKeyStateInactive},
		})
		if err != nil {
			return err
		}
		assert.Len(keys, 0)
		return nil
	})
	assert.Nil(err)

	// Case 5: audit events
	validate := validator.New()
	assert.Nil(models.RegisterWithValidator(validate))
	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		events, err := dbClient.ListSystemEvents(ctx, db.SystemEventQueryFilter{
			EventTypes: []models.SystemEventTypeENUMType{models.SystemEventTypeNewEncryptionKey},
		})
		if err != nil {
			return err
		}
		assert.Len(events, 2)
		for _, event := range events {
			parsed, err := event.ParseMetadata(validate)
			assert.Nil(err)
			meta, ok := parsed.(models.SystemEventEncKeyRelated)
			assert.True(ok)
			assert.True(meta.KeyID == key1.ID || meta.KeyID == key2.ID)
		}
		return nil
	})
	assert.Nil(err)
}
