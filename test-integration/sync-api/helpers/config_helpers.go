package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/onsi/gomega"
)

// ConfigOptions tunes the configuration written by WriteConfigYAML
type ConfigOptions struct {
	// PageSize is the tenant page size, zero leaves paging to the server
	PageSize int

	// Schedule defaults to hourly so only the initial pass runs during a test
	Schedule string

	// TokenSecret enables token auth on the admin API when set
	TokenSecret string
}

// WriteConfigYAML writes a file storage configuration for one tenant served by
// baseURL and returns its path
func WriteConfigYAML(dir, platform, baseURL string, opts ConfigOptions) string {
	passwordFile := filepath.Join(dir, "arlo-password")
	gomega.Expect(os.WriteFile(passwordFile, []byte(Password+"\n"), 0600)).To(gomega.Succeed())

	schedule := opts.Schedule
	if schedule == "" {
		schedule = "@every 1h"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `tenants:
  - platform: %s
    username: %s
    passwordFile: %s
    baseURL: %s
`, platform, Username, passwordFile, baseURL)
	if opts.PageSize > 0 {
		fmt.Fprintf(&b, "    pageSize: %d\n", opts.PageSize)
	}

	fmt.Fprintf(&b, `
sync:
  schedule: "%s"
  requestTimeout: 10s

storage:
  type: file
  dataDir: %s
`, schedule, filepath.Join(dir, "data"))

	if opts.TokenSecret != "" {
		secretFile := filepath.Join(dir, "token-secret")
		gomega.Expect(os.WriteFile(secretFile, []byte(opts.TokenSecret), 0600)).To(gomega.Succeed())
		fmt.Fprintf(&b, `
api:
  auth:
    mode: token
    secretFile: %s
`, secretFile)
	}

	configPath := filepath.Join(dir, "config.yaml")
	gomega.Expect(os.WriteFile(configPath, []byte(b.String()), 0600)).To(gomega.Succeed())
	return configPath
}
