package arlo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/enrolsync/arlo-catalog-sync/internal/httpclient"
)

// XMLMediaType is the only media type the decoder accepts
const XMLMediaType = "application/xml"

// Collection root element names
const (
	RootEvents           = "Events"
	RootEventTemplates   = "EventTemplates"
	RootOnlineActivities = "OnlineActivities"
)

// Page is one decoded page of a collection
type Page[R any] struct {
	Items   []R
	HasNext bool
}

// collectionXML accepts both expanded links and resources placed directly under the root
type collectionXML struct {
	XMLName          xml.Name
	Links            []Link           `xml:"Link"`
	Events           []Event          `xml:"Event"`
	EventTemplates   []EventTemplate  `xml:"EventTemplate"`
	OnlineActivities []OnlineActivity `xml:"OnlineActivity"`
}

func (c *collectionXML) hasNext() bool {
	for _, l := range c.Links {
		if l.relIs("next") {
			return true
		}
	}
	return false
}

// DecodeEvents decodes an Events collection page
func DecodeEvents(resp *httpclient.Response) (*Page[Event], error) {
	coll, err := decodeCollection(resp, RootEvents)
	if err != nil || coll == nil {
		return &Page[Event]{}, err
	}

	items := make([]Event, 0, len(coll.Links)+len(coll.Events))
	for _, l := range coll.Links {
		if l.Event != nil {
			items = append(items, *l.Event)
		}
	}
	items = append(items, coll.Events...)
	for i := range items {
		items[i].Template = templateFromLinks(items[i].Links)
	}
	return &Page[Event]{Items: items, HasNext: coll.hasNext()}, nil
}

// DecodeEventTemplates decodes an EventTemplates collection page
func DecodeEventTemplates(resp *httpclient.Response) (*Page[EventTemplate], error) {
	coll, err := decodeCollection(resp, RootEventTemplates)
	if err != nil || coll == nil {
		return &Page[EventTemplate]{}, err
	}

	items := make([]EventTemplate, 0, len(coll.Links)+len(coll.EventTemplates))
	for _, l := range coll.Links {
		if l.EventTemplate != nil {
			items = append(items, *l.EventTemplate)
		}
	}
	items = append(items, coll.EventTemplates...)
	return &Page[EventTemplate]{Items: items, HasNext: coll.hasNext()}, nil
}

// DecodeOnlineActivities decodes an OnlineActivities collection page
func DecodeOnlineActivities(resp *httpclient.Response) (*Page[OnlineActivity], error) {
	coll, err := decodeCollection(resp, RootOnlineActivities)
	if err != nil || coll == nil {
		return &Page[OnlineActivity]{}, err
	}

	items := make([]OnlineActivity, 0, len(coll.Links)+len(coll.OnlineActivities))
	for _, l := range coll.Links {
		if l.OnlineActivity != nil {
			items = append(items, *l.OnlineActivity)
		}
	}
	items = append(items, coll.OnlineActivities...)
	for i := range items {
		items[i].Template = templateFromLinks(items[i].Links)
	}
	return &Page[OnlineActivity]{Items: items, HasNext: coll.hasNext()}, nil
}

// decodeCollection checks the content type and unmarshals the body.
// It returns a nil collection and nil error for an empty body.
func decodeCollection(resp *httpclient.Response, root string) (*collectionXML, error) {
	if resp == nil {
		return nil, &DecodeError{Root: root, Err: fmt.Errorf("no response")}
	}

	if !strings.Contains(strings.ToLower(resp.ContentType), XMLMediaType) {
		return nil, &ResponseError{
			Kind:       KindServer,
			StatusCode: resp.StatusCode,
			Reason:     resp.Reason,
			Code:       CodeIncorrectContentType,
			Context:    map[string]string{"contenttype": resp.ContentType},
		}
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, nil
	}

	var coll collectionXML
	if err := xml.Unmarshal(resp.Body, &coll); err != nil {
		return nil, &DecodeError{Root: root, Err: err}
	}
	if coll.XMLName.Local != root {
		return nil, &DecodeError{Root: root, Err: fmt.Errorf("unexpected root element <%s>", coll.XMLName.Local)}
	}

	return &coll, nil
}
