package integration

import (
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/enrolsync/arlo-catalog-sync/test-integration/sync-api/helpers"
)

var _ = Describe("Admin API Token Auth", Label("auth"), func() {
	const secret = "integration-secret-integration-secret"

	var (
		tempDir      string
		fake         *helpers.FakeArlo
		serverHelper *helpers.ServerTestHelper
	)

	BeforeEach(func() {
		tempDir = createTempDir("auth-test-")
		fake = helpers.NewFakeArlo()

		configFile := helpers.WriteConfigYAML(tempDir, platform, fake.BaseURL(), helpers.ConfigOptions{TokenSecret: secret})
		serverHelper = helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		serverHelper.WaitForServerReady(10 * time.Second)
		Eventually(drained(serverHelper.WithToken(helpers.SignToken(secret, "arlo-sync:read"))),
			10*time.Second, 100*time.Millisecond).Should(BeTrue())
	})

	AfterEach(func() {
		if serverHelper != nil {
			Expect(serverHelper.StopServer()).To(Succeed())
		}
		fake.Close()
		cleanupTempDir(tempDir)
	})

	It("should reject requests without a token", func() {
		resp, err := serverHelper.WithToken("").GetTenants()
		Expect(err).NotTo(HaveOccurred())
		defer func() {
			_ = resp.Body.Close()
		}()
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(resp.Header.Get("WWW-Authenticate")).To(ContainSubstring("Bearer"))
	})

	It("should reject tokens signed with another key", func() {
		resp, err := serverHelper.WithToken(helpers.SignToken("some-other-key", "arlo-sync:admin")).GetTenants()
		Expect(err).NotTo(HaveOccurred())
		helpers.ExpectJSON(resp, http.StatusUnauthorized, nil)
	})

	It("should let readers read but not trigger syncs", func() {
		serverHelper.WithToken(helpers.SignToken(secret, "arlo-sync:read"))

		resp, err := serverHelper.GetTenants()
		Expect(err).NotTo(HaveOccurred())
		helpers.ExpectJSON(resp, http.StatusOK, nil)

		resp, err = serverHelper.TriggerSync(platform, "events", true)
		Expect(err).NotTo(HaveOccurred())
		helpers.ExpectJSON(resp, http.StatusForbidden, nil)
	})

	It("should let writers trigger syncs but not reset the API status", func() {
		serverHelper.WithToken(helpers.SignToken(secret, "arlo-sync:write"))

		helpers.ExpectJSON(syncNow(serverHelper, "events", true), http.StatusOK, nil)

		resp, err := serverHelper.SetAPIStatus(http.StatusOK)
		Expect(err).NotTo(HaveOccurred())
		helpers.ExpectJSON(resp, http.StatusForbidden, nil)
	})

	It("should let admins reset the API status", func() {
		serverHelper.WithToken(helpers.SignToken(secret, "arlo-sync:admin"))

		resp, err := serverHelper.SetAPIStatus(http.StatusOK)
		Expect(err).NotTo(HaveOccurred())
		helpers.ExpectJSON(resp, http.StatusOK, nil)
	})

	It("should keep health public", func() {
		resp, err := http.Get(serverHelper.GetBaseURL() + "/health")
		Expect(err).NotTo(HaveOccurred())
		helpers.ExpectJSON(resp, http.StatusOK, nil)
	})
})
