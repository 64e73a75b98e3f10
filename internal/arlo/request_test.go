package arlo

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://demo.arlo.co/api/2012-02-01/auth/resources/", DefaultBaseURL("demo.arlo.co"))
}

func TestRequestURI_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		build      func() *RequestURI
		wantPath   string
		wantQuery  map[string]string
		wantAbsent []string
	}{
		{
			name: "first run has no filter",
			build: func() *RequestURI {
				return NewRequestURI("https://demo.arlo.co/api/2012-02-01/auth/resources").
					SetResourcePath("events/").
					AddExpand("Event/EventTemplate").
					ModifiedAfter("").
					OrderBy("LastModifiedDateTime ASC")
			},
			wantPath: "/api/2012-02-01/auth/resources/events/",
			wantQuery: map[string]string{
				"expand":  "Event/EventTemplate",
				"orderby": "LastModifiedDateTime ASC",
			},
			wantAbsent: []string{"filter", "top"},
		},
		{
			name: "watermark becomes a strict greater-than filter",
			build: func() *RequestURI {
				return NewRequestURI("https://demo.arlo.co/api/2012-02-01/auth/resources/").
					SetResourcePath("/onlineactivities/").
					AddExpand("OnlineActivity").
					AddExpand("OnlineActivity/EventTemplate").
					ModifiedAfter("2017-01-02T00:00:00.000Z").
					OrderBy("LastModifiedDateTime ASC").
					Top(50)
			},
			wantPath: "/api/2012-02-01/auth/resources/onlineactivities/",
			wantQuery: map[string]string{
				"expand":  "OnlineActivity,OnlineActivity/EventTemplate",
				"filter":  "LastModifiedDateTime gt datetime('2017-01-02T00:00:00.000Z')",
				"orderby": "LastModifiedDateTime ASC",
				"top":     "50",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := url.Parse(tt.build().String())
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, u.Path)

			q := u.Query()
			for k, v := range tt.wantQuery {
				assert.Equal(t, v, q.Get(k), "query %s", k)
			}
			for _, k := range tt.wantAbsent {
				assert.False(t, q.Has(k), "query %s should be absent", k)
			}
		})
	}
}

func TestRequestURI_NoQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://h/r/events/", NewRequestURI("https://h/r").SetResourcePath("events/").String())
}
