package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/alwitt/scribe/db"
	"github.com/alwitt/scribe/encryption"
	"github.com/alwitt/scribe/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
)

// sealedStore implements RecordStore on the persistence layer, sealing post bodies
// before they are written
type sealedStore struct {
	goutils.Component
	validator *validator.Validate

	persistence db.Client

	cryptoEngine encryption.CryptographyEngine

	workingKey models.EncryptionKey
}

/*
NewSealedStore define new sealed record store

	@param ctx context.Context - execution context
	@param persistence db.Client - persistence layer client
	@param cryptoEngine encryption.CryptographyEngine - cryptography engine
	@returns store instance
*/
func NewSealedStore(
	ctx context.Context, persistence db.Client, cryptoEngine encryption.CryptographyEngine,
) (RecordStore, error) {
	logTags := log.Fields{"package": "scribe", "module": "store", "component": "sealed-store"}

	v, err := newPostValidator()
	if err != nil {
		return nil, err
	}

	instance := &sealedStore{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		validator:    v,
		persistence:  persistence,
		cryptoEngine: cryptoEngine,
	}

	// Seal with the newest active key, or make one if there is none
	if dbErr := persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			activeKeys, err := cryptoEngine.ListEncryptionKeys(
				dbCtx,
				db.EncryptionKeyQueryFilter{
					TargetState: []models.EncryptionKeyStateENUMType{models.EncryptionKeyStateActive},
				},
				dbClient,
			)
			if err != nil {
				return fmt.Errorf("failed to list active encryption keys [%w]", err)
			}

			if len(activeKeys) == 0 {
				instance.workingKey, err = cryptoEngine.NewEncryptionKey(dbCtx, dbClient)
				if err != nil {
					return fmt.Errorf("failed to define new encryption key [%w]", err)
				}
			} else {
				instance.workingKey = activeKeys[0]
			}

			return nil
		},
	); dbErr != nil {
		return nil, fmt.Errorf("failed to prepare working encryption key [%w]", dbErr)
	}

	log.WithFields(instance.GetLogTagsForContext(ctx)).
		WithField("key-id", instance.workingKey.ID).
		Info("Sealed store ready")

	return instance, nil
}

/*
Allocate persist a new post under an identity. The identity must not be occupied;
if it is, models.ErrIdentityCollision is returned and nothing is written.

	@param ctx context.Context - execution context
	@param identity string - the post identity
	@param post models.Post - the post
*/
func (s *sealedStore) Allocate(ctx context.Context, identity string, post models.Post) error {
	post, err := preparePost(s.validator, identity, post)
	if err != nil {
		return err
	}

	body, err := json.Marshal(models.PostBody{Topic: post.Topic, Content: post.Content})
	if err != nil {
		return fmt.Errorf("failed to serialize post '%s' body [%w]", identity, err)
	}

	if dbErr := s.persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			theKey, encrypted, err := s.cryptoEngine.EncryptData(
				dbCtx, s.workingKey.ID, body, dbClient,
			)
			if err != nil {
				return fmt.Errorf("failed to seal post '%s' body [%w]", identity, err)
			}

			return dbClient.AllocatePost(dbCtx, models.SealedPost{
				ID:        post.ID,
				Author:    post.Author,
				EncKeyID:  theKey.ID,
				EncBody:   encrypted.CipherText,
				EncNonce:  encrypted.Nonce,
				CreatedAt: post.CreatedAt,
			})
		},
	); dbErr != nil {
		return dbErr
	}

	log.WithFields(s.GetLogTagsForContext(ctx)).
		WithField("post-id", identity).
		WithField("key-id", s.workingKey.ID).
		Debug("Sealed new post")
	return nil
}

/*
Fetch read back a post

	@param ctx context.Context - execution context
	@param identity string - the post identity
	@returns the post
*/
func (s *sealedStore) Fetch(ctx context.Context, identity string) (models.Post, error) {
	var sealed models.SealedPost
	var plainBody []byte

	if dbErr := s.persistence.UseDatabase(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			if sealed, err = dbClient.GetPost(dbCtx, identity); err != nil {
				return err
			}
			_, plainBody, err = s.cryptoEngine.DecryptData(
				dbCtx,
				sealed.EncKeyID,
				encryption.EncryptedData{CipherText: sealed.EncBody, Nonce: sealed.EncNonce},
				dbClient,
			)
			if err != nil {
				return fmt.Errorf("failed to open post '%s' body [%w]", identity, err)
			}
			return nil
		},
	); dbErr != nil {
		return models.Post{}, dbErr
	}

	var body models.PostBody
	if err := json.Unmarshal(plainBody, &body); err != nil {
		return models.Post{}, fmt.Errorf("post '%s' body is corrupt [%w]", identity, err)
	}

	return models.Post{
		ID:        sealed.ID,
		Author:    sealed.Author,
		Topic:     body.Topic,
		Content:   body.Content,
		CreatedAt: sealed.CreatedAt,
	}, nil
}
