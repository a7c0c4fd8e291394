// Package db - post store persistence layer
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alwitt/scribe/models"
	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// applyPaging narrow a listing query to the requested page
func applyPaging(query *gorm.DB, page CommonListEntryQueryFilter) *gorm.DB {
	if page.Limit != nil {
		query = query.Limit(*page.Limit)
	}
	if page.Offset != nil {
		query = query.Offset(*page.Offset)
	}
	return query
}

/*
appendAuditEvent add an entry to the audit trail. It shares the caller's transaction, so
the event exists only if the change it describes does.

	@param ctx context.Context - execution context
	@param eventType models.SystemEventTypeENUMType - the event type
	@param metadata interface{} - event details, one of the SystemEvent*Related types
	@returns the audit entry
*/
func (d *databaseImpl) appendAuditEvent(
	ctx context.Context, eventType models.SystemEventTypeENUMType, metadata interface{},
) (models.SystemEventAudit, error) {
	entry := SystemEventAuditDBEntry{
		SystemEventAudit: models.SystemEventAudit{ID: ulid.Make().String(), EventType: eventType},
	}

	if metadata != nil {
		if err := d.validator.Struct(metadata); err != nil {
			return models.SystemEventAudit{}, fmt.Errorf(
				"'%s' audit metadata rejected [%w]", eventType, err,
			)
		}
		encoded, err := json.Marshal(metadata)
		if err != nil {
			return models.SystemEventAudit{}, fmt.Errorf(
				"'%s' audit metadata not serializable [%w]", eventType, err,
			)
		}
		entry.Metadata = datatypes.JSON(encoded)
	}

	if err := d.validator.Struct(&entry); err != nil {
		return models.SystemEventAudit{}, fmt.Errorf("'%s' audit entry rejected [%w]", eventType, err)
	}

	if tmp := d.db.WithContext(ctx).Create(&entry); tmp.Error != nil {
		return models.SystemEventAudit{}, fmt.Errorf(
			"'%s' audit entry insert failed [%w]", eventType, tmp.Error,
		)
	}

	return entry.SystemEventAudit, nil
}

/*
ListSystemEvents list the audit trail, oldest first

	@param ctx context.Context - execution context
	@param filters SystemEventQueryFilter - entry listing filter
	@return list of system events
*/
func (d *databaseImpl) ListSystemEvents(
	ctx context.Context, filters SystemEventQueryFilter,
) ([]models.SystemEventAudit, error) {
	query := d.db.WithContext(ctx).Model(&SystemEventAuditDBEntry{})

	if len(filters.EventTypes) > 0 {
		query = query.Where("type IN ?", filters.EventTypes)
	}
	if filters.EventsAfter != nil {
		query = query.Where("created_at >= ?", *filters.EventsAfter)
	}
	if filters.EventsBefore != nil {
		query = query.Where("created_at <= ?", *filters.EventsBefore)
	}

	var entries []SystemEventAuditDBEntry
	if tmp := applyPaging(query, filters.CommonListEntryQueryFilter).
		Order("created_at").Order("id").
		Find(&entries); tmp.Error != nil {
		return nil, fmt.Errorf("audit trail listing failed [%w]", tmp.Error)
	}

	events := make([]models.SystemEventAudit, 0, len(entries))
	for _, entry := range entries {
		events = append(events, entry.SystemEventAudit)
	}
	return events, nil
}
