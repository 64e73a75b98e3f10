package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/gomega"

	v1 "github.com/enrolsync/arlo-catalog-sync/internal/api/v1"
)

func (s *ServerTestHelper) do(method, path, body string) (*http.Response, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(s.ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	return s.httpClient.Do(req)
}

// GetTenants makes a GET request to /v1/tenants
func (s *ServerTestHelper) GetTenants() (*http.Response, error) {
	return s.do(http.MethodGet, "/v1/tenants", "")
}

// GetCheckpoints makes a GET request to /v1/tenants/{platform}/checkpoints
func (s *ServerTestHelper) GetCheckpoints(platform string) (*http.Response, error) {
	return s.do(http.MethodGet, "/v1/tenants/"+url.PathEscape(platform)+"/checkpoints", "")
}

// TriggerSync makes a POST request to /v1/tenants/{platform}/sync.
// An empty collection syncs the whole tenant.
func (s *ServerTestHelper) TriggerSync(platform, collection string, manual bool) (*http.Response, error) {
	q := url.Values{}
	if collection != "" {
		q.Set("collection", collection)
	}
	if manual {
		q.Set("manual", "true")
	}
	path := "/v1/tenants/" + url.PathEscape(platform) + "/sync"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return s.do(http.MethodPost, path, "")
}

// GetAPIStatus makes a GET request to /v1/api-status
func (s *ServerTestHelper) GetAPIStatus() (*http.Response, error) {
	return s.do(http.MethodGet, "/v1/api-status", "")
}

// SetAPIStatus makes a PUT request to /v1/api-status
func (s *ServerTestHelper) SetAPIStatus(code int) (*http.Response, error) {
	return s.do(http.MethodPut, "/v1/api-status", fmt.Sprintf(`{"status": %d}`, code))
}

// Checkpoints returns the tenant checkpoints keyed by collection. It fails
// until the tenant has been registered.
func (s *ServerTestHelper) Checkpoints(platform string) (map[string]v1.CheckpointResponse, error) {
	resp, err := s.GetCheckpoints(platform)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checkpoints returned status %d", resp.StatusCode)
	}

	var list []v1.CheckpointResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}
	byCollection := make(map[string]v1.CheckpointResponse, len(list))
	for _, cp := range list {
		byCollection[string(cp.Collection)] = cp
	}
	return byCollection, nil
}

// WatermarkOf polls the collection watermark, empty while unknown
func (s *ServerTestHelper) WatermarkOf(platform, collection string) func() string {
	return func() string {
		cps, err := s.Checkpoints(platform)
		if err != nil {
			return ""
		}
		return cps[collection].LatestSourceModified
	}
}

// ExpectJSON asserts the response status and decodes its body into out
func ExpectJSON(resp *http.Response, status int, out any) {
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	gomega.Expect(resp.StatusCode).To(gomega.Equal(status), string(body))
	if out != nil {
		gomega.Expect(json.Unmarshal(body, out)).To(gomega.Succeed(), string(body))
	}
}

// SignToken returns an HS256 token carrying scope, valid for an hour
func SignToken(secret, scope string) string {
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "integration",
		"scope": scope,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	gomega.Expect(err).NotTo(gomega.HaveOccurred())
	return token
}
