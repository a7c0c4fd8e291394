package db

import (
	"context"
	"fmt"

	"github.com/alwitt/scribe/models"
	"github.com/apex/log"
	"github.com/google/uuid"
)

/*
RecordEncryptionKey store a new post sealing key, already wrapped by the primary RSA key.
New keys start out active.

	@param ctx context.Context - execution context
	@param encKeyMaterial []byte - RSA wrapped key material
	@returns the key entry
*/
func (d *databaseImpl) RecordEncryptionKey(
	ctx context.Context, encKeyMaterial []byte,
) (models.EncryptionKey, error) {
	entry := EncryptionKeyDBEntry{
		EncryptionKey: models.EncryptionKey{
			ID:             uuid.NewString(),
			EncKeyMaterial: encKeyMaterial,
			State:          models.EncryptionKeyStateActive,
		},
	}
	if err := d.validator.Struct(&entry); err != nil {
		return models.EncryptionKey{}, fmt.Errorf("sealing key entry rejected [%w]", err)
	}

	if tmp := d.db.WithContext(ctx).Create(&entry); tmp.Error != nil {
		return models.EncryptionKey{}, fmt.Errorf("sealing key insert failed [%w]", tmp.Error)
	}

	if _, err := d.appendAuditEvent(
		ctx,
		models.SystemEventTypeNewEncryptionKey,
		models.SystemEventEncKeyRelated{KeyID: entry.ID},
	); err != nil {
		return models.EncryptionKey{}, fmt.Errorf("sealing key '%s' not audited [%w]", entry.ID, err)
	}

	log.WithFields(d.GetLogTagsForContext(ctx)).WithField("key-id", entry.ID).Info("Recorded new sealing key")

	return entry.EncryptionKey, nil
}

/*
GetEncryptionKey fetch one post sealing key

	@param ctx context.Context - execution context
	@param keyID string - the encryption key ID
	@return key entry
*/
func (d *databaseImpl) GetEncryptionKey(
	ctx context.Context, keyID string,
) (models.EncryptionKey, error) {
	var entry EncryptionKeyDBEntry
	if tmp := d.db.WithContext(ctx).Where("id = ?", keyID).First(&entry); tmp.Error != nil {
		return models.EncryptionKey{}, fmt.Errorf("sealing key '%s' not readable [%w]", keyID, tmp.Error)
	}
	return entry.EncryptionKey, nil
}

/*
ListEncryptionKeys list post sealing keys, newest first

	@param ctx context.Context - execution context
	@param filters EncryptionKeyQueryFilter - entry listing filter
	@return list of keys
*/
func (d *databaseImpl) ListEncryptionKeys(
	ctx context.Context, filters EncryptionKeyQueryFilter,
) ([]models.EncryptionKey, error) {
	query := d.db.WithContext(ctx).Model(&EncryptionKeyDBEntry{})
	if len(filters.TargetState) > 0 {
		query = query.Where("state IN ?", filters.TargetState)
	}

	var entries []EncryptionKeyDBEntry
	if tmp := applyPaging(query, filters.CommonListEntryQueryFilter).
		Order("created_at DESC").
		Find(&entries); tmp.Error != nil {
		return nil, fmt.Errorf("sealing key listing failed [%w]", tmp.Error)
	}

	keys := make([]models.EncryptionKey, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, entry.EncryptionKey)
	}
	return keys, nil
}
