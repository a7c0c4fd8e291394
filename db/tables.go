package db

import (
	"context"

	"github.com/alwitt/scribe/models"
	"gorm.io/gorm"
)

/*
DefineTables create or update the post store tables. Used by the migrate command and by
tests; production schemas can instead be managed through utils/atlas-migrate.

	@param ctx context.Context - execution context
	@param db *gorm.DB - the SQL session
*/
func DefineTables(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&SystemEventAuditDBEntry{},
		&EncryptionKeyDBEntry{},
		&PostDBEntry{},
	)
}

// --------------------------------------------------------------------------------------
// System audit events

// SystemEventAuditDBEntry system audit event DB entry
type SystemEventAuditDBEntry struct {
	models.SystemEventAudit
}

// TableName hard code table name
func (SystemEventAuditDBEntry) TableName() string {
	return "system_audit_events"
}

// --------------------------------------------------------------------------------------
// Encryption keys

// EncryptionKeyDBEntry encryption key DB entry
type EncryptionKeyDBEntry struct {
	models.EncryptionKey
}

// TableName hard code table name
func (EncryptionKeyDBEntry) TableName() string {
	return "encryption_keys"
}

// --------------------------------------------------------------------------------------
// Posts

// PostDBEntry sealed post DB entry
type PostDBEntry struct {
	models.SealedPost
	EncKey EncryptionKeyDBEntry `gorm:"constraint:OnDelete:RESTRICT;foreignKey:EncKeyID" validate:"-"`
}

// TableName hard code table name
func (PostDBEntry) TableName() string {
	return "posts"
}
