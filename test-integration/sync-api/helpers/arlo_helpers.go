package helpers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
)

const (
	// ResourceRoot is the path the fake Auth API serves collections under
	ResourceRoot = "/api/2012-02-01/auth/resources/"

	// Username and Password are the basic auth credentials the fake accepts
	Username = "sync"
	Password = "secret"

	relPrefix = "http://schemas.arlo.co/api/2012/01/auth/"
)

var modifiedFilter = regexp.MustCompile(`LastModifiedDateTime gt datetime\('([^']*)'\)`)

// ArloItem is a remote resource. Label is the event code or the template or
// online activity name.
type ArloItem struct {
	ID       int64
	GUID     string
	Label    string
	Status   string
	Modified string
	Template int64
}

type collectionXML struct {
	root, element, idTag, labelTag string
}

var collections = map[string]collectionXML{
	"events/":           {root: "Events", element: "Event", idTag: "EventID", labelTag: "Code"},
	"eventtemplates/":   {root: "EventTemplates", element: "EventTemplate", idTag: "TemplateID", labelTag: "Name"},
	"onlineactivities/": {root: "OnlineActivities", element: "OnlineActivity", idTag: "OnlineActivityID", labelTag: "Name"},
}

// FakeArlo serves collections the way the Arlo Auth API does: ordered by
// LastModifiedDateTime, honouring the modified-after filter and top, with a
// next link while more items remain.
type FakeArlo struct {
	server *httptest.Server

	mu         sync.Mutex
	items      map[string][]ArloItem
	requests   []string
	failStatus int
}

// NewFakeArlo starts a fake Arlo Auth API. Close it when done.
func NewFakeArlo() *FakeArlo {
	f := &FakeArlo{items: make(map[string][]ArloItem)}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

// BaseURL returns the resource root to configure tenants with
func (f *FakeArlo) BaseURL() string {
	return f.server.URL + ResourceRoot
}

// Close stops the server
func (f *FakeArlo) Close() {
	f.server.Close()
}

// SetEvents replaces the served events
func (f *FakeArlo) SetEvents(items ...ArloItem) {
	f.set("events/", items)
}

// SetEventTemplates replaces the served event templates
func (f *FakeArlo) SetEventTemplates(items ...ArloItem) {
	f.set("eventtemplates/", items)
}

// SetOnlineActivities replaces the served online activities
func (f *FakeArlo) SetOnlineActivities(items ...ArloItem) {
	f.set("onlineactivities/", items)
}

// FailWith makes every following request answer with status. Zero restores normal service.
func (f *FakeArlo) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
}

// Requests returns the request URIs received so far
func (f *FakeArlo) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeArlo) set(resourcePath string, items []ArloItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[resourcePath] = items
}

func (f *FakeArlo) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.URL.RequestURI())
	if user, pass, ok := r.BasicAuth(); !ok || user != Username || pass != Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if f.failStatus != 0 {
		w.WriteHeader(f.failStatus)
		return
	}

	resourcePath := strings.TrimPrefix(r.URL.Path, ResourceRoot)
	coll, ok := collections[resourcePath]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	watermark := ""
	if m := modifiedFilter.FindStringSubmatch(r.URL.Query().Get("filter")); m != nil {
		watermark = m[1]
	}
	var matching []ArloItem
	for _, item := range f.items[resourcePath] {
		if watermark == "" || arlo.CompareTimestamps(item.Modified, watermark) > 0 {
			matching = append(matching, item)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		return arlo.CompareTimestamps(matching[i].Modified, matching[j].Modified) < 0
	})

	hasNext := false
	if top, err := strconv.Atoi(r.URL.Query().Get("top")); err == nil && top > 0 && len(matching) > top {
		matching = matching[:top]
		hasNext = true
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(render(coll, matching, hasNext)))
}

func render(coll collectionXML, items []ArloItem, hasNext bool) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	fmt.Fprintf(&b, "<%s>", coll.root)
	for _, item := range items {
		status := item.Status
		if status == "" {
			status = "Active"
		}
		fmt.Fprintf(&b, `<Link rel="%s%s" type="application/xml" title="%s" href="x">`, relPrefix, coll.element, coll.element)
		fmt.Fprintf(&b, "<%s>", coll.element)
		fmt.Fprintf(&b, "<%s>%d</%s>", coll.idTag, item.ID, coll.idTag)
		fmt.Fprintf(&b, "<UniqueIdentifier>%s</UniqueIdentifier>", item.GUID)
		fmt.Fprintf(&b, "<%s>%s</%s>", coll.labelTag, item.Label, coll.labelTag)
		fmt.Fprintf(&b, "<Status>%s</Status>", status)
		fmt.Fprintf(&b, "<LastModifiedDateTime>%s</LastModifiedDateTime>", item.Modified)
		if item.Template != 0 {
			fmt.Fprintf(&b, `<Link rel="%sEventTemplate" type="application/xml" title="EventTemplate" href="x">`, relPrefix)
			fmt.Fprintf(&b, "<EventTemplate><TemplateID>%d</TemplateID><UniqueIdentifier>tpl-%d</UniqueIdentifier></EventTemplate>",
				item.Template, item.Template)
			b.WriteString("</Link>")
		}
		fmt.Fprintf(&b, "</%s></Link>", coll.element)
	}
	if hasNext {
		fmt.Fprintf(&b, `<Link rel="%snext" type="application/xml" title="next" href="x"/>`, relPrefix)
	}
	fmt.Fprintf(&b, "</%s>", coll.root)
	return b.String()
}
