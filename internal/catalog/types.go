// Package catalog defines the local catalog records the sync service maintains.
package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
)

// CollectionType names an independently checkpointed sync stream
type CollectionType string

const (
	// Events is the scheduled events collection
	Events CollectionType = "events"
	// EventTemplates is the event templates collection
	EventTemplates CollectionType = "eventtemplates"
	// OnlineActivities is the online activities collection
	OnlineActivities CollectionType = "onlineactivities"
)

// AllCollections lists the collections in the order a tenant is processed
var AllCollections = []CollectionType{Events, EventTemplates, OnlineActivities}

// ParseCollectionType validates s as a collection type
func ParseCollectionType(s string) (CollectionType, error) {
	for _, c := range AllCollections {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown collection type %q: must be one of events, eventtemplates, onlineactivities", s)
}

// Label is the human readable collection name used in progress output
func (c CollectionType) Label() string {
	switch c {
	case Events:
		return "Events"
	case EventTemplates:
		return "Templates"
	case OnlineActivities:
		return "Online Activities"
	default:
		return string(c)
	}
}

// Key identifies a record. At most one record exists per key.
type Key struct {
	Platform   string `json:"platform"`
	SourceID   int64  `json:"sourceId"`
	SourceGUID string `json:"sourceGuid"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d/%s", k.Platform, k.SourceID, k.SourceGUID)
}

// TemplateRef is a weak reference to a template record, never enforced
type TemplateRef struct {
	SourceID   int64  `json:"sourceTemplateId"`
	SourceGUID string `json:"sourceTemplateGuid"`
}

// Source holds the remote status and timestamps shared by every record kind
type Source struct {
	Status   string `json:"sourceStatus"`
	Created  string `json:"sourceCreated"`
	Modified string `json:"sourceModified"`
}

// EventRecord is the local copy of an Arlo event
type EventRecord struct {
	ID uuid.UUID `json:"id"`
	Key
	Code           string       `json:"code"`
	StartDateTime  string       `json:"startDateTime"`
	FinishDateTime string       `json:"finishDateTime"`
	Source         Source       `json:"source"`
	Template       *TemplateRef `json:"template,omitempty"`
	Modified       time.Time    `json:"modified"`
}

// TemplateRecord is the local copy of an Arlo event template
type TemplateRecord struct {
	ID uuid.UUID `json:"id"`
	Key
	Name     string    `json:"name"`
	Code     string    `json:"code"`
	Source   Source    `json:"source"`
	Modified time.Time `json:"modified"`
}

// OnlineActivityRecord is the local copy of an Arlo online activity
type OnlineActivityRecord struct {
	ID uuid.UUID `json:"id"`
	Key
	Name       string       `json:"name"`
	Code       string       `json:"code"`
	ContentURI string       `json:"contentUri"`
	Source     Source       `json:"source"`
	Template   *TemplateRef `json:"template,omitempty"`
	Modified   time.Time    `json:"modified"`
}

// NewEventRecord builds the record for ev under platform, stamped with modified
func NewEventRecord(platform string, ev *arlo.Event, modified time.Time) *EventRecord {
	return &EventRecord{
		Key:            Key{Platform: platform, SourceID: ev.EventID, SourceGUID: ev.UniqueIdentifier},
		Code:           ev.Code,
		StartDateTime:  ev.StartDateTime,
		FinishDateTime: ev.FinishDateTime,
		Source: Source{
			Status:   ev.Status,
			Created:  ev.CreatedDateTime,
			Modified: ev.LastModifiedDateTime,
		},
		Template: templateRef(ev.Template),
		Modified: modified,
	}
}

// NewTemplateRecord builds the record for tpl under platform, stamped with modified
func NewTemplateRecord(platform string, tpl *arlo.EventTemplate, modified time.Time) *TemplateRecord {
	return &TemplateRecord{
		Key:  Key{Platform: platform, SourceID: tpl.TemplateID, SourceGUID: tpl.UniqueIdentifier},
		Name: tpl.Name,
		Code: tpl.Code,
		Source: Source{
			Status:   tpl.Status,
			Created:  tpl.CreatedDateTime,
			Modified: tpl.LastModifiedDateTime,
		},
		Modified: modified,
	}
}

// NewOnlineActivityRecord builds the record for oa under platform, stamped with modified
func NewOnlineActivityRecord(platform string, oa *arlo.OnlineActivity, modified time.Time) *OnlineActivityRecord {
	return &OnlineActivityRecord{
		Key:        Key{Platform: platform, SourceID: oa.OnlineActivityID, SourceGUID: oa.UniqueIdentifier},
		Name:       oa.Name,
		Code:       oa.Code,
		ContentURI: oa.ContentURI,
		Source: Source{
			Status:   oa.Status,
			Created:  oa.CreatedDateTime,
			Modified: oa.LastModifiedDateTime,
		},
		Template: templateRef(oa.Template),
		Modified: modified,
	}
}

func templateRef(ref *arlo.TemplateRef) *TemplateRef {
	if ref == nil {
		return nil
	}
	return &TemplateRef{SourceID: ref.ID, SourceGUID: ref.GUID}
}
