package sync

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	stdsync "sync"
	"testing"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
)

const (
	resourceRoot = "/api/2012-02-01/auth/resources/"
	relPrefix    = "http://schemas.arlo.co/api/2012/01/auth/"
)

var modifiedFilter = regexp.MustCompile(`LastModifiedDateTime gt datetime\('([^']*)'\)`)

// fakeItem is a remote resource served by fakeArlo. Label is the event code or the
// template/online activity name.
type fakeItem struct {
	ID       int64
	GUID     string
	Label    string
	Modified string
	Template int64
}

type collectionXML struct {
	root, element, idTag, labelTag string
}

var fakeCollections = map[string]collectionXML{
	"events/":           {root: "Events", element: "Event", idTag: "EventID", labelTag: "Code"},
	"eventtemplates/":   {root: "EventTemplates", element: "EventTemplate", idTag: "TemplateID", labelTag: "Name"},
	"onlineactivities/": {root: "OnlineActivities", element: "OnlineActivity", idTag: "OnlineActivityID", labelTag: "Name"},
}

// fakeArlo serves paged collections ordered by LastModifiedDateTime, honouring the
// modified-after filter and top parameter the fetcher sends.
type fakeArlo struct {
	server *httptest.Server

	mu       stdsync.Mutex
	items    map[string][]fakeItem
	requests []string
	// failFrom makes request number failFrom (1-based) and later answer with failStatus
	failFrom     int
	failStatus   int
	contentType  string
	ignoreFilter bool
}

func newFakeArlo(t *testing.T) *fakeArlo {
	t.Helper()
	f := &fakeArlo{
		items:       make(map[string][]fakeItem),
		contentType: "application/xml; charset=utf-8",
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeArlo) baseURL() string {
	return f.server.URL + resourceRoot
}

func (f *fakeArlo) set(resourcePath string, items ...fakeItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[resourcePath] = items
}

func (f *fakeArlo) configure(fn func(f *fakeArlo)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeArlo) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeArlo) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.URL.RequestURI())
	if user, pass, ok := r.BasicAuth(); !ok || user != "sync" || pass != "secret" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if f.failFrom > 0 && len(f.requests) >= f.failFrom {
		w.WriteHeader(f.failStatus)
		return
	}

	resourcePath := strings.TrimPrefix(r.URL.Path, resourceRoot)
	coll, ok := fakeCollections[resourcePath]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	watermark := ""
	if m := modifiedFilter.FindStringSubmatch(r.URL.Query().Get("filter")); m != nil && !f.ignoreFilter {
		watermark = m[1]
	}
	var matching []fakeItem
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

	w.Header().Set("Content-Type", f.contentType)
	_, _ = w.Write([]byte(renderCollection(coll, matching, hasNext)))
}

func renderCollection(coll collectionXML, items []fakeItem, hasNext bool) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	fmt.Fprintf(&b, "<%s>", coll.root)
	for _, item := range items {
		fmt.Fprintf(&b, `<Link rel="%s%s" type="application/xml" title="%s" href="x">`, relPrefix, coll.element, coll.element)
		fmt.Fprintf(&b, "<%s>", coll.element)
		fmt.Fprintf(&b, "<%s>%d</%s>", coll.idTag, item.ID, coll.idTag)
		fmt.Fprintf(&b, "<UniqueIdentifier>%s</UniqueIdentifier>", item.GUID)
		fmt.Fprintf(&b, "<%s>%s</%s>", coll.labelTag, item.Label, coll.labelTag)
		b.WriteString("<Status>Active</Status>")
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
