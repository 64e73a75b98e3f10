package integration

import (
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/enrolsync/arlo-catalog-sync/internal/api/v1"
	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
	pkgsync "github.com/enrolsync/arlo-catalog-sync/internal/sync"
	"github.com/enrolsync/arlo-catalog-sync/test-integration/sync-api/helpers"
)

// syncNow triggers a sync, retrying while the initial scheduled pass still holds the run lock
func syncNow(server *helpers.ServerTestHelper, collection string, manual bool) *http.Response {
	var resp *http.Response
	Eventually(func() int {
		if resp != nil {
			_ = resp.Body.Close()
		}
		var err error
		resp, err = server.TriggerSync(platform, collection, manual)
		Expect(err).NotTo(HaveOccurred())
		return resp.StatusCode
	}, 10*time.Second, 100*time.Millisecond).ShouldNot(Equal(http.StatusConflict))
	return resp
}

// drained reports whether the last collection of the initial pass finished
func drained(server *helpers.ServerTestHelper) func() bool {
	return func() bool {
		cps, err := server.Checkpoints(platform)
		if err != nil {
			return false
		}
		cp, ok := cps[string(catalog.OnlineActivities)]
		return ok && cp.EndPullTime != nil
	}
}

func filtersFor(requests []string, resourcePath string) []string {
	var filters []string
	for _, uri := range requests {
		u, err := url.ParseRequestURI(uri)
		Expect(err).NotTo(HaveOccurred())
		if strings.HasSuffix(u.Path, "/"+resourcePath) {
			filters = append(filters, u.Query().Get("filter"))
		}
	}
	return filters
}

var _ = Describe("Catalog Sync Integration", Label("sync"), func() {
	var (
		tempDir      string
		fake         *helpers.FakeArlo
		serverHelper *helpers.ServerTestHelper
	)

	BeforeEach(func() {
		tempDir = createTempDir("sync-test-")

		fake = helpers.NewFakeArlo()
		fake.SetEventTemplates(
			helpers.ArloItem{ID: 7, GUID: "tpl-7", Label: "Intro to Go", Modified: "2017-01-01T00:00:00Z"},
		)
		fake.SetEvents(
			helpers.ArloItem{ID: 1, GUID: "ev-1", Label: "EV-1", Modified: "2017-01-02T00:00:00Z"},
			helpers.ArloItem{ID: 2, GUID: "ev-2", Label: "EV-2", Modified: "2017-01-03T00:00:00Z", Template: 7},
		)
		fake.SetOnlineActivities(
			helpers.ArloItem{ID: 5, GUID: "oa-5", Label: "Go online", Modified: "2017-01-04T00:00:00Z", Template: 7},
		)

		configFile := helpers.WriteConfigYAML(tempDir, platform, fake.BaseURL(), helpers.ConfigOptions{PageSize: 1})
		serverHelper = helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		serverHelper.WaitForServerReady(10 * time.Second)
	})

	AfterEach(func() {
		if serverHelper != nil {
			Expect(serverHelper.StopServer()).To(Succeed())
		}
		fake.Close()
		cleanupTempDir(tempDir)
	})

	Context("Initial scheduled pass", func() {
		It("should pull every collection page by page", func() {
			Eventually(drained(serverHelper), 10*time.Second, 100*time.Millisecond).Should(BeTrue())

			cps, err := serverHelper.Checkpoints(platform)
			Expect(err).NotTo(HaveOccurred())
			Expect(cps).To(HaveLen(3))
			Expect(cps["events"].LatestSourceModified).To(Equal("2017-01-03T00:00:00Z"))
			Expect(cps["eventtemplates"].LatestSourceModified).To(Equal("2017-01-01T00:00:00Z"))
			Expect(cps["onlineactivities"].LatestSourceModified).To(Equal("2017-01-04T00:00:00Z"))
			for collection, cp := range cps {
				Expect(cp.ErrorCount).To(BeZero(), collection)
				Expect(cp.LastError).To(BeEmpty(), collection)
			}

			// one page per event with top=1, the second request filtered by the first watermark
			eventFilters := filtersFor(fake.Requests(), "events/")
			Expect(eventFilters).To(HaveLen(2))
			Expect(eventFilters[0]).To(BeEmpty())
			Expect(eventFilters[1]).To(ContainSubstring("2017-01-02T00:00:00Z"))
		})

		It("should store the records with their template", func() {
			Eventually(drained(serverHelper), 10*time.Second, 100*time.Millisecond).Should(BeTrue())

			store := serverHelper.App().GetComponents().RecordStore

			ev, err := store.GetEvent(ctx, catalog.Key{Platform: platform, SourceID: 2, SourceGUID: "ev-2"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Code).To(Equal("EV-2"))
			Expect(ev.Template).NotTo(BeNil())
			Expect(ev.Template.SourceID).To(Equal(int64(7)))

			oa, err := store.GetOnlineActivity(ctx, catalog.Key{Platform: platform, SourceID: 5, SourceGUID: "oa-5"})
			Expect(err).NotTo(HaveOccurred())
			Expect(oa.Name).To(Equal("Go online"))

			count, err := store.Count(ctx, platform, catalog.Events)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})

		It("should list the registered tenant", func() {
			Eventually(drained(serverHelper), 10*time.Second, 100*time.Millisecond).Should(BeTrue())

			resp, err := serverHelper.GetTenants()
			Expect(err).NotTo(HaveOccurred())

			var tenants []v1.TenantResponse
			helpers.ExpectJSON(resp, http.StatusOK, &tenants)
			Expect(tenants).To(HaveLen(1))
			Expect(tenants[0].Platform).To(Equal(platform))
			Expect(tenants[0].Enabled).To(BeTrue())
			Expect(tenants[0].NextPullTime).NotTo(BeNil())
		})
	})

	Context("Incremental manual sync", func() {
		It("should only pull changes after the watermark", func() {
			Eventually(drained(serverHelper), 10*time.Second, 100*time.Millisecond).Should(BeTrue())

			fake.SetEvents(
				helpers.ArloItem{ID: 1, GUID: "ev-1", Label: "EV-1B", Modified: "2017-02-02T00:00:00Z"},
				helpers.ArloItem{ID: 2, GUID: "ev-2", Label: "EV-2", Modified: "2017-01-03T00:00:00Z", Template: 7},
				helpers.ArloItem{ID: 3, GUID: "ev-3", Label: "EV-3", Modified: "2017-02-01T00:00:00Z"},
			)
			before := len(filtersFor(fake.Requests(), "events/"))

			var result pkgsync.Result
			helpers.ExpectJSON(syncNow(serverHelper, "events", true), http.StatusOK, &result)
			Expect(result.Skipped).To(BeFalse())
			Expect(result.Created).To(Equal(1))
			Expect(result.Updated).To(Equal(1))
			Expect(result.Pages).To(Equal(2))
			Expect(result.Watermark).To(Equal("2017-02-02T00:00:00Z"))

			filters := filtersFor(fake.Requests(), "events/")[before:]
			Expect(filters).NotTo(BeEmpty())
			Expect(filters[0]).To(ContainSubstring("2017-01-03T00:00:00Z"))

			ev, err := serverHelper.App().GetComponents().RecordStore.
				GetEvent(ctx, catalog.Key{Platform: platform, SourceID: 1, SourceGUID: "ev-1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ev.Code).To(Equal("EV-1B"))

			Expect(serverHelper.WatermarkOf(platform, "events")()).To(Equal("2017-02-02T00:00:00Z"))
		})

		It("should report a whole tenant pass", func() {
			Eventually(drained(serverHelper), 10*time.Second, 100*time.Millisecond).Should(BeTrue())

			var report struct {
				Platform string            `json:"platform"`
				Results  []*pkgsync.Result `json:"results"`
				Errors   []string          `json:"errors"`
			}
			helpers.ExpectJSON(syncNow(serverHelper, "", true), http.StatusOK, &report)
			Expect(report.Platform).To(Equal(platform))
			Expect(report.Results).To(HaveLen(3))
			Expect(report.Errors).To(BeEmpty())
			for _, r := range report.Results {
				Expect(r.Created + r.Updated).To(BeZero())
			}
		})
	})

	Context("Remote API status", func() {
		It("should block pulls after an authentication failure until reset", func() {
			Eventually(drained(serverHelper), 10*time.Second, 100*time.Millisecond).Should(BeTrue())

			fake.FailWith(http.StatusUnauthorized)
			resp := syncNow(serverHelper, "events", true)
			helpers.ExpectJSON(resp, http.StatusBadGateway, nil)

			var apiStatus v1.APIStatusResponse
			resp, err := serverHelper.GetAPIStatus()
			Expect(err).NotTo(HaveOccurred())
			helpers.ExpectJSON(resp, http.StatusOK, &apiStatus)
			Expect(apiStatus).To(Equal(v1.APIStatusResponse{Status: http.StatusUnauthorized, Blocked: true}))

			cps, err := serverHelper.Checkpoints(platform)
			Expect(err).NotTo(HaveOccurred())
			Expect(cps["events"].ErrorCount).To(Equal(1))
			Expect(cps["events"].LastError).NotTo(BeEmpty())

			// blocked: no request reaches the remote even though it recovered
			fake.FailWith(0)
			requests := len(fake.Requests())
			var result pkgsync.Result
			helpers.ExpectJSON(syncNow(serverHelper, "events", true), http.StatusOK, &result)
			Expect(result.Skipped).To(BeTrue())
			Expect(fake.Requests()).To(HaveLen(requests))

			resp, err = serverHelper.SetAPIStatus(http.StatusOK)
			Expect(err).NotTo(HaveOccurred())
			helpers.ExpectJSON(resp, http.StatusOK, &apiStatus)
			Expect(apiStatus.Blocked).To(BeFalse())

			helpers.ExpectJSON(syncNow(serverHelper, "events", true), http.StatusOK, &result)
			Expect(result.Skipped).To(BeFalse())
			Expect(len(fake.Requests())).To(BeNumerically(">", requests))
		})
	})

	Context("Restart", func() {
		It("should resume from the persisted watermark", func() {
			Eventually(drained(serverHelper), 10*time.Second, 100*time.Millisecond).Should(BeTrue())
			Expect(serverHelper.StopServer()).To(Succeed())

			configFile := filepath.Join(tempDir, "config.yaml")
			serverHelper = helpers.NewServerTestHelper(ctx, configFile)
			before := len(filtersFor(fake.Requests(), "events/"))
			Expect(serverHelper.StartServer()).To(Succeed())
			serverHelper.WaitForServerReady(10 * time.Second)

			Eventually(func() int {
				return len(filtersFor(fake.Requests(), "events/"))
			}, 10*time.Second, 100*time.Millisecond).Should(BeNumerically(">", before))

			filters := filtersFor(fake.Requests(), "events/")[before:]
			Expect(filters[0]).To(ContainSubstring("2017-01-03T00:00:00Z"))
		})
	})
})
