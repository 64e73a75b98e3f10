package arlo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrolsync/arlo-catalog-sync/internal/httpclient"
)

const eventsPage = `<?xml version="1.0" encoding="utf-8"?>
<Events>
  <Link rel="http://schemas.arlo.co/api/2012/01/auth/Event" type="application/xml" title="Event" href="https://demo.arlo.co/api/2012-02-01/auth/resources/events/1/">
    <Event>
      <EventID>1</EventID>
      <UniqueIdentifier>9b1a6c1e-0000-4000-8000-000000000001</UniqueIdentifier>
      <Code>EV-1</Code>
      <StartDateTime>2017-03-01T09:00:00.000+13:00</StartDateTime>
      <FinishDateTime>2017-03-01T17:00:00.000+13:00</FinishDateTime>
      <Status>Active</Status>
      <CreatedDateTime>2017-01-01T00:00:00.000Z</CreatedDateTime>
      <LastModifiedDateTime>2017-01-02T00:00:00.000Z</LastModifiedDateTime>
      <Link rel="http://schemas.arlo.co/api/2012/01/auth/EventTemplate" type="application/xml" title="EventTemplate" href="https://demo.arlo.co/api/2012-02-01/auth/resources/eventtemplates/7/">
        <EventTemplate>
          <TemplateID>7</TemplateID>
          <UniqueIdentifier>tpl-guid-7</UniqueIdentifier>
          <Name>First Aid</Name>
          <Code>FA</Code>
        </EventTemplate>
      </Link>
    </Event>
  </Link>
  <Link rel="http://schemas.arlo.co/api/2012/01/auth/Event" type="application/xml" title="Event" href="https://demo.arlo.co/api/2012-02-01/auth/resources/events/2/">
    <Event>
      <EventID>2</EventID>
      <UniqueIdentifier>9b1a6c1e-0000-4000-8000-000000000002</UniqueIdentifier>
      <Code>EV-2</Code>
      <LastModifiedDateTime>2017-01-03T00:00:00.000Z</LastModifiedDateTime>
    </Event>
  </Link>
  <Link rel="http://schemas.arlo.co/api/2012/01/auth/next" type="application/xml" title="next" href="https://demo.arlo.co/api/2012-02-01/auth/resources/events/?skip=2"/>
</Events>`

func xmlResponse(body string) *httpclient.Response {
	return &httpclient.Response{
		StatusCode:  200,
		Reason:      "OK",
		ContentType: "application/xml; charset=utf-8",
		Body:        []byte(body),
	}
}

func TestDecodeEvents(t *testing.T) {
	t.Parallel()

	page, err := DecodeEvents(xmlResponse(eventsPage))
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.True(t, page.HasNext)

	first := page.Items[0]
	assert.Equal(t, int64(1), first.EventID)
	assert.Equal(t, "EV-1", first.Code)
	assert.Equal(t, "2017-01-02T00:00:00.000Z", first.Modified())
	require.NotNil(t, first.Template)
	assert.Equal(t, int64(7), first.Template.ID)
	assert.Equal(t, "tpl-guid-7", first.Template.GUID)

	second := page.Items[1]
	assert.Equal(t, "EV-2", second.Code)
	assert.Nil(t, second.Template, "event without expanded template has no back-reference")
}

func TestDecodeEventTemplates_DirectChildren(t *testing.T) {
	t.Parallel()

	body := `<EventTemplates>
  <EventTemplate>
    <TemplateID>7</TemplateID>
    <UniqueIdentifier>tpl-guid-7</UniqueIdentifier>
    <Name>First Aid</Name>
    <Code>FA</Code>
    <Status>Active</Status>
    <CreatedDateTime>2016-01-01T00:00:00.000Z</CreatedDateTime>
    <LastModifiedDateTime>2016-06-01T00:00:00.000Z</LastModifiedDateTime>
  </EventTemplate>
</EventTemplates>`

	page, err := DecodeEventTemplates(xmlResponse(body))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.False(t, page.HasNext)
	assert.Equal(t, "First Aid", page.Items[0].Name)
	assert.Equal(t, "2016-06-01T00:00:00.000Z", page.Items[0].LastModifiedDateTime)
}

func TestDecodeOnlineActivities(t *testing.T) {
	t.Parallel()

	body := `<OnlineActivities>
  <Link rel="http://schemas.arlo.co/api/2012/01/auth/OnlineActivity" href="x">
    <OnlineActivity>
      <OnlineActivityID>42</OnlineActivityID>
      <UniqueIdentifier>oa-guid-42</UniqueIdentifier>
      <Name>Fire Safety eLearning</Name>
      <Code>FS-OL</Code>
      <ContentUri>https://lms.example.com/course/view.php?id=3</ContentUri>
      <Status>Active</Status>
      <LastModifiedDateTime>2017-02-01T00:00:00.000Z</LastModifiedDateTime>
      <Link rel="http://schemas.arlo.co/api/2012/01/auth/EventTemplate" href="y">
        <EventTemplate>
          <TemplateID>9</TemplateID>
          <UniqueIdentifier>tpl-guid-9</UniqueIdentifier>
        </EventTemplate>
      </Link>
    </OnlineActivity>
  </Link>
</OnlineActivities>`

	page, err := DecodeOnlineActivities(xmlResponse(body))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	oa := page.Items[0]
	assert.Equal(t, "https://lms.example.com/course/view.php?id=3", oa.ContentURI)
	require.NotNil(t, oa.Template)
	assert.Equal(t, int64(9), oa.Template.ID)
	assert.False(t, page.HasNext)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		resp      *httpclient.Response
		wantEmpty bool
		check     func(t *testing.T, err error)
	}{
		{
			name: "html content type with 200 is rejected",
			resp: &httpclient.Response{StatusCode: 200, Reason: "OK", ContentType: "text/html", Body: []byte("<html/>")},
			//nolint:thelper // We want to see these lines in the test output
			check: func(t *testing.T, err error) {
				var re *ResponseError
				require.True(t, errors.As(err, &re))
				assert.Equal(t, KindServer, re.Kind)
				assert.Equal(t, 200, re.StatusCode)
				assert.Equal(t, CodeIncorrectContentType, re.Code)
				assert.Equal(t, "text/html", re.Context["contenttype"])
				assert.Contains(t, err.Error(), "contenttype=text/html")
			},
		},
		{
			name: "missing content type is rejected",
			resp: &httpclient.Response{StatusCode: 200, Body: []byte("<Events/>")},
			//nolint:thelper // We want to see these lines in the test output
			check: func(t *testing.T, err error) {
				var re *ResponseError
				require.True(t, errors.As(err, &re))
			},
		},
		{
			name: "malformed xml",
			resp: xmlResponse("<Events><Link>"),
			//nolint:thelper // We want to see these lines in the test output
			check: func(t *testing.T, err error) {
				var de *DecodeError
				require.True(t, errors.As(err, &de))
				assert.Equal(t, RootEvents, de.Root)
			},
		},
		{
			name: "wrong root element",
			resp: xmlResponse("<EventTemplates/>"),
			//nolint:thelper // We want to see these lines in the test output
			check: func(t *testing.T, err error) {
				var de *DecodeError
				require.True(t, errors.As(err, &de))
				assert.Contains(t, err.Error(), "unexpected root element <EventTemplates>")
			},
		},
		{
			name:      "empty body is an empty page",
			resp:      xmlResponse("  \n "),
			wantEmpty: true,
		},
		{
			name:      "empty collection",
			resp:      xmlResponse("<Events/>"),
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := DecodeEvents(tt.resp)
			if tt.wantEmpty {
				require.NoError(t, err)
				require.NotNil(t, page)
				assert.Empty(t, page.Items)
				assert.False(t, page.HasNext)
				return
			}
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLinkRel(t *testing.T) {
	t.Parallel()

	assert.True(t, Link{Rel: "next"}.relIs("next"))
	assert.True(t, Link{Rel: "http://schemas.arlo.co/api/2012/01/auth/Next"}.relIs("next"))
	assert.False(t, Link{Rel: "http://schemas.arlo.co/api/2012/01/auth/nextpage"}.relIs("next"))
	assert.False(t, Link{Rel: "previous"}.relIs("next"))
}
