package sync

import (
	"context"
	"fmt"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	"github.com/enrolsync/arlo-catalog-sync/internal/httpclient"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/writer"
)

// pageItem is one decoded resource, ready to be reconciled
type pageItem struct {
	modified  string
	reconcile func(ctx context.Context) (writer.Outcome, error)
}

type decodedPage struct {
	items   []pageItem
	hasNext bool
}

// descriptor tells the page loop where a collection lives and how to apply it
type descriptor struct {
	resourcePath string
	expansions   []string
	decode       func(resp *httpclient.Response, platform string, r *writer.Reconciler) (*decodedPage, error)
}

var descriptors = map[catalog.CollectionType]descriptor{
	catalog.Events: {
		resourcePath: "events/",
		expansions:   []string{"Event/EventTemplate"},
		decode: func(resp *httpclient.Response, platform string, r *writer.Reconciler) (*decodedPage, error) {
			page, err := arlo.DecodeEvents(resp)
			if err != nil {
				return nil, err
			}
			return newDecodedPage(page, func(ctx context.Context, ev *arlo.Event) (writer.Outcome, error) {
				return r.ReconcileEvent(ctx, platform, ev)
			}), nil
		},
	},
	catalog.EventTemplates: {
		resourcePath: "eventtemplates/",
		expansions:   []string{"EventTemplate"},
		decode: func(resp *httpclient.Response, platform string, r *writer.Reconciler) (*decodedPage, error) {
			page, err := arlo.DecodeEventTemplates(resp)
			if err != nil {
				return nil, err
			}
			return newDecodedPage(page, func(ctx context.Context, tpl *arlo.EventTemplate) (writer.Outcome, error) {
				return r.ReconcileTemplate(ctx, platform, tpl)
			}), nil
		},
	},
	catalog.OnlineActivities: {
		resourcePath: "onlineactivities/",
		expansions:   []string{"OnlineActivity/EventTemplate"},
		decode: func(resp *httpclient.Response, platform string, r *writer.Reconciler) (*decodedPage, error) {
			page, err := arlo.DecodeOnlineActivities(resp)
			if err != nil {
				return nil, err
			}
			return newDecodedPage(page, func(ctx context.Context, oa *arlo.OnlineActivity) (writer.Outcome, error) {
				return r.ReconcileOnlineActivity(ctx, platform, oa)
			}), nil
		},
	},
}

func descriptorFor(collectionType catalog.CollectionType) (descriptor, error) {
	d, ok := descriptors[collectionType]
	if !ok {
		return descriptor{}, fmt.Errorf("unknown collection type %q", collectionType)
	}
	return d, nil
}

type modifiable interface {
	Modified() string
}

func newDecodedPage[R any, P interface {
	*R
	modifiable
}](page *arlo.Page[R], reconcile func(context.Context, P) (writer.Outcome, error)) *decodedPage {
	items := make([]pageItem, len(page.Items))
	for i := range page.Items {
		resource := P(&page.Items[i])
		items[i] = pageItem{
			modified: resource.Modified(),
			reconcile: func(ctx context.Context) (writer.Outcome, error) {
				return reconcile(ctx, resource)
			},
		}
	}
	return &decodedPage{items: items, hasNext: page.HasNext}
}
