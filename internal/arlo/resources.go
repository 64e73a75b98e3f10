// Package arlo models the Arlo Auth API resources consumed by the sync service
// and decodes its paginated XML collections.
package arlo

import "strings"

// Link is an Arlo hypermedia link. When a relation is expanded the linked
// resource is embedded as a child element.
type Link struct {
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr,omitempty"`
	Title string `xml:"title,attr,omitempty"`
	Href  string `xml:"href,attr"`

	Event          *Event          `xml:"Event"`
	EventTemplate  *EventTemplate  `xml:"EventTemplate"`
	OnlineActivity *OnlineActivity `xml:"OnlineActivity"`
}

// relIs reports whether the link relation ends with name, either bare
// ("next") or as the last path segment of a relation URI (".../rel/next").
func (l Link) relIs(name string) bool {
	return strings.EqualFold(l.Rel, name) || strings.HasSuffix(strings.ToLower(l.Rel), "/"+strings.ToLower(name))
}

// TemplateRef identifies the parent template of an event or online activity
type TemplateRef struct {
	ID   int64
	GUID string
}

// Event is a scheduled running of a template
type Event struct {
	EventID              int64  `xml:"EventID"`
	UniqueIdentifier     string `xml:"UniqueIdentifier"`
	Code                 string `xml:"Code"`
	StartDateTime        string `xml:"StartDateTime"`
	FinishDateTime       string `xml:"FinishDateTime"`
	Status               string `xml:"Status"`
	CreatedDateTime      string `xml:"CreatedDateTime"`
	LastModifiedDateTime string `xml:"LastModifiedDateTime"`
	Links                []Link `xml:"Link"`

	// Template is filled from an expanded EventTemplate link, nil when absent
	Template *TemplateRef `xml:"-"`
}

// EventTemplate is a catalog course template
type EventTemplate struct {
	TemplateID           int64  `xml:"TemplateID"`
	UniqueIdentifier     string `xml:"UniqueIdentifier"`
	Name                 string `xml:"Name"`
	Code                 string `xml:"Code"`
	Status               string `xml:"Status"`
	CreatedDateTime      string `xml:"CreatedDateTime"`
	LastModifiedDateTime string `xml:"LastModifiedDateTime"`
	Links                []Link `xml:"Link"`
}

// OnlineActivity is a self paced activity, optionally linked to a template
type OnlineActivity struct {
	OnlineActivityID     int64  `xml:"OnlineActivityID"`
	UniqueIdentifier     string `xml:"UniqueIdentifier"`
	Name                 string `xml:"Name"`
	Code                 string `xml:"Code"`
	ContentURI           string `xml:"ContentUri"`
	Status               string `xml:"Status"`
	CreatedDateTime      string `xml:"CreatedDateTime"`
	LastModifiedDateTime string `xml:"LastModifiedDateTime"`
	Links                []Link `xml:"Link"`

	// Template is filled from an expanded EventTemplate link, nil when absent
	Template *TemplateRef `xml:"-"`
}

// Modified returns the remote last modified timestamp
func (e *Event) Modified() string { return e.LastModifiedDateTime }

// Modified returns the remote last modified timestamp
func (t *EventTemplate) Modified() string { return t.LastModifiedDateTime }

// Modified returns the remote last modified timestamp
func (o *OnlineActivity) Modified() string { return o.LastModifiedDateTime }

func templateFromLinks(links []Link) *TemplateRef {
	for _, l := range links {
		if l.EventTemplate != nil {
			return &TemplateRef{ID: l.EventTemplate.TemplateID, GUID: l.EventTemplate.UniqueIdentifier}
		}
	}
	return nil
}
