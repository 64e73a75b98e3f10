package sqlc

import (
	"time"

	"github.com/google/uuid"
)

type ApiStatus struct {
	ID        int16     `json:"id"`
	Status    int32     `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CatalogEvent struct {
	ID                 uuid.UUID `json:"id"`
	Platform           string    `json:"platform"`
	SourceID           int64     `json:"source_id"`
	SourceGuid         string    `json:"source_guid"`
	Code               string    `json:"code"`
	StartDateTime      string    `json:"start_date_time"`
	FinishDateTime     string    `json:"finish_date_time"`
	SourceStatus       string    `json:"source_status"`
	SourceCreated      string    `json:"source_created"`
	SourceModified     string    `json:"source_modified"`
	SourceTemplateID   *int64    `json:"source_template_id"`
	SourceTemplateGuid *string   `json:"source_template_guid"`
	Modified           time.Time `json:"modified"`
}

type CatalogOnlineActivity struct {
	ID                 uuid.UUID `json:"id"`
	Platform           string    `json:"platform"`
	SourceID           int64     `json:"source_id"`
	SourceGuid         string    `json:"source_guid"`
	Name               string    `json:"name"`
	Code               string    `json:"code"`
	ContentUri         string    `json:"content_uri"`
	SourceStatus       string    `json:"source_status"`
	SourceCreated      string    `json:"source_created"`
	SourceModified     string    `json:"source_modified"`
	SourceTemplateID   *int64    `json:"source_template_id"`
	SourceTemplateGuid *string   `json:"source_template_guid"`
	Modified           time.Time `json:"modified"`
}

type CatalogTemplate struct {
	ID             uuid.UUID `json:"id"`
	Platform       string    `json:"platform"`
	SourceID       int64     `json:"source_id"`
	SourceGuid     string    `json:"source_guid"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	SourceStatus   string    `json:"source_status"`
	SourceCreated  string    `json:"source_created"`
	SourceModified string    `json:"source_modified"`
	Modified       time.Time `json:"modified"`
}

type CollectionCheckpoint struct {
	ID                   uuid.UUID  `json:"id"`
	Platform             string     `json:"platform"`
	CollectionType       string     `json:"collection_type"`
	LatestSourceModified *string    `json:"latest_source_modified"`
	NextPullTime         *time.Time `json:"next_pull_time"`
	EndPullTime          *time.Time `json:"end_pull_time"`
	LastPullTime         *time.Time `json:"last_pull_time"`
	LastError            *string    `json:"last_error"`
	ErrorCount           int32      `json:"error_count"`
}

type Tenant struct {
	Platform  string    `json:"platform"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
