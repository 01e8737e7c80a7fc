// Package jenkins provides a client for the Jenkins REST API.
//
// The client exposes two call paths behind one error contract: typed JSON
// reads/mutations for the endpoints the API covers well, and raw form/XML
// posts for the endpoints it does not (rename, stop, credentials, views,
// queue cancel, script execution, restart). Both paths converge on the same
// sentinel errors, so callers never need to know which path served a call.
package jenkins

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jenkins-agent/src/logger"
)

// Sentinel errors for the canonical failure surfaces. HTTP statuses map onto
// these exactly once, inside the client; nothing above sees a status code.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
	ErrUnavailable    = errors.New("server unavailable")
)

var queueItemPattern = regexp.MustCompile(`/queue/item/(\d+)`)

// Client is an authenticated Jenkins API client. It holds no server state;
// every read is a fresh fetch.
type Client struct {
	baseURL  string
	username string
	token    string
	hc       *http.Client
	log      logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout sets the per-round-trip timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

// NewClient creates a Jenkins API client authenticating with the given
// username and API token (or password).
func NewClient(baseURL, username, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		token:    token,
		hc: &http.Client{
			Timeout: 30 * time.Second,
			// Jenkins signals success on many posts with a 302 back to the
			// UI; surface the original response instead of following it.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: logger.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Username returns the authenticated user.
func (c *Client) Username() string { return c.username }

// jobPath converts a qualified name ("folder/sub/job") into the Jenkins URL
// path ("job/folder/job/sub/job/job"), escaping each segment.
func jobPath(qualifiedName string) string {
	segments := strings.Split(strings.Trim(qualifiedName, "/"), "/")
	parts := make([]string, 0, len(segments)*2)
	for _, s := range segments {
		if s == "" {
			continue
		}
		parts = append(parts, "job", url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}

// SplitQualifiedName splits a qualified name into its enclosing folder path
// and leaf name. The folder path is empty for top-level items.
func SplitQualifiedName(qualifiedName string) (folder, leaf string) {
	name := strings.Trim(qualifiedName, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// nodePath returns the computer API path segment for a node name. Jenkins
// addresses the controller as "(master)" or "(built-in)" depending on
// version; both spellings are accepted.
func nodePath(name string) string {
	switch name {
	case "", "master", "(master)":
		return "(master)"
	case "built-in", "(built-in)":
		return "(built-in)"
	}
	return url.PathEscape(name)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.SetBasicAuth(c.username, c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.log.Debug("jenkins %s %s", method, path)
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// statusError maps a non-2xx response onto the sentinel taxonomy. The body
// snippet is included for diagnostics only.
func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(snippet))

	var kind error
	switch {
	case resp.StatusCode == http.StatusNotFound:
		kind = ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = ErrUnauthorized
	case resp.StatusCode >= 500:
		kind = ErrUnavailable
	default:
		kind = ErrInvalidRequest
	}
	if msg == "" {
		return fmt.Errorf("%w: status %d", kind, resp.StatusCode)
	}
	return fmt.Errorf("%w: status %d: %s", kind, resp.StatusCode, msg)
}

// GetJSON performs a structured read: GET the path and decode the JSON body.
// The path is relative to the server root and may carry a query string.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

// GetText performs a plain-text read (console output, config XML).
func (c *Client) GetText(ctx context.Context, path string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(resp)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	return string(b), nil
}

// PostForm performs a raw URL-encoded form post and discards the body.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) error {
	var body io.Reader
	contentType := ""
	if form != nil {
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}
	resp, err := c.do(ctx, http.MethodPost, path, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Jenkins answers many mutating posts with a 302 back to the UI, so
	// anything below 400 counts as accepted.
	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	return nil
}

// PostBody performs a raw post with an explicit content type (XML documents,
// config payloads) and discards the body.
func (c *Client) PostBody(ctx context.Context, path, contentType string, body []byte) error {
	resp, err := c.do(ctx, http.MethodPost, path, contentType, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	return nil
}

// postText performs a form post and returns the response body as text.
func (c *Client) postText(ctx context.Context, path string, form url.Values) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", statusError(resp)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	return string(b), nil
}

// Version reports the server version from the X-Jenkins response header.
func (c *Client) Version(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "api/json?tree=url", "", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", statusError(resp)
	}
	v := resp.Header.Get("X-Jenkins")
	if v == "" {
		return "", fmt.Errorf("%w: missing X-Jenkins header", ErrUnavailable)
	}
	return v, nil
}

// Jobs lists the jobs at the server root, or inside the given folder when
// folder is a non-empty qualified name.
func (c *Client) Jobs(ctx context.Context, folder string) ([]JobSummary, error) {
	path := "api/json?tree=jobs[name,url,color,fullName]"
	if folder != "" {
		path = jobPath(folder) + "/" + path
	}
	var out struct {
		Jobs []JobSummary `json:"jobs"`
	}
	if err := c.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

// JobInfo fetches the full job record for a qualified name.
func (c *Client) JobInfo(ctx context.Context, name string) (*Job, error) {
	var job Job
	if err := c.GetJSON(ctx, jobPath(name)+"/api/json", &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// JobConfig fetches the job's config.xml.
func (c *Client) JobConfig(ctx context.Context, name string) (string, error) {
	return c.GetText(ctx, jobPath(name)+"/config.xml")
}

// UpdateJobConfig replaces the job's config.xml.
func (c *Client) UpdateJobConfig(ctx context.Context, name, configXML string) error {
	return c.PostBody(ctx, jobPath(name)+"/config.xml", "application/xml", []byte(configXML))
}

// CreateItem creates a job or folder under the enclosing folder implied by
// the qualified name, with the given config.xml.
func (c *Client) CreateItem(ctx context.Context, name string, configXML []byte) error {
	folder, leaf := SplitQualifiedName(name)
	path := "createItem?name=" + url.QueryEscape(leaf)
	if folder != "" {
		path = jobPath(folder) + "/" + path
	}
	return c.PostBody(ctx, path, "application/xml", configXML)
}

// CopyItem copies a job to a new name within the same folder. Jenkins'
// copy endpoint resolves the source relative to the target's folder, so
// cross-folder copies are rejected here before any network call.
func (c *Client) CopyItem(ctx context.Context, source, target string) error {
	srcFolder, srcLeaf := SplitQualifiedName(source)
	dstFolder, dstLeaf := SplitQualifiedName(target)
	if srcFolder != dstFolder {
		return fmt.Errorf("%w: copy source and target must share a folder (%q vs %q)", ErrInvalidRequest, srcFolder, dstFolder)
	}
	path := fmt.Sprintf("createItem?name=%s&mode=copy&from=%s", url.QueryEscape(dstLeaf), url.QueryEscape(srcLeaf))
	if dstFolder != "" {
		path = jobPath(dstFolder) + "/" + path
	}
	return c.PostForm(ctx, path, nil)
}

// DeleteJob deletes a job or folder.
func (c *Client) DeleteJob(ctx context.Context, name string) error {
	return c.PostForm(ctx, jobPath(name)+"/doDelete", nil)
}

// EnableJob enables a disabled job.
func (c *Client) EnableJob(ctx context.Context, name string) error {
	return c.PostForm(ctx, jobPath(name)+"/enable", nil)
}

// DisableJob disables a job.
func (c *Client) DisableJob(ctx context.Context, name string) error {
	return c.PostForm(ctx, jobPath(name)+"/disable", nil)
}

// RenameJob renames a job within its folder. Like CopyItem, cross-folder
// moves are not supported by the rename endpoint.
func (c *Client) RenameJob(ctx context.Context, name, newName string) error {
	srcFolder, _ := SplitQualifiedName(name)
	dstFolder, dstLeaf := SplitQualifiedName(newName)
	if srcFolder != dstFolder {
		return fmt.Errorf("%w: rename cannot move between folders (%q vs %q)", ErrInvalidRequest, srcFolder, dstFolder)
	}
	form := url.Values{"newName": {dstLeaf}}
	return c.PostForm(ctx, jobPath(name)+"/doRename", form)
}

// TriggerBuild queues a build, with parameters when supplied, and returns the
// queue item id parsed from the Location header. The build number is not
// final until the job is re-read; the trigger never waits for the build.
func (c *Client) TriggerBuild(ctx context.Context, name string, params []Parameter) (int64, error) {
	path := jobPath(name) + "/build"
	var body io.Reader
	contentType := ""
	if len(params) > 0 {
		path = jobPath(name) + "/buildWithParameters"
		form := url.Values{}
		for _, p := range params {
			form.Add(p.Name, p.Value)
		}
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	resp, err := c.do(ctx, http.MethodPost, path, contentType, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, statusError(resp)
	}

	m := queueItemPattern.FindStringSubmatch(resp.Header.Get("Location"))
	if m == nil {
		return 0, nil // accepted, but the server did not report a queue id
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, nil
	}
	return id, nil
}

// BuildInfo fetches a build snapshot.
func (c *Client) BuildInfo(ctx context.Context, name string, number int) (*Build, error) {
	var b Build
	path := fmt.Sprintf("%s/%d/api/json", jobPath(name), number)
	if err := c.GetJSON(ctx, path, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ConsoleOutput fetches the build's console text. Large and fetched on
// demand; never cached.
func (c *Client) ConsoleOutput(ctx context.Context, name string, number int) (string, error) {
	return c.GetText(ctx, fmt.Sprintf("%s/%d/consoleText", jobPath(name), number))
}

// StopBuild aborts a running build.
func (c *Client) StopBuild(ctx context.Context, name string, number int) error {
	return c.PostForm(ctx, fmt.Sprintf("%s/%d/stop", jobPath(name), number), nil)
}

// TestReport fetches the aggregated test results for a build.
func (c *Client) TestReport(ctx context.Context, name string, number int) (*TestReport, error) {
	var r TestReport
	path := fmt.Sprintf("%s/%d/testReport/api/json", jobPath(name), number)
	if err := c.GetJSON(ctx, path, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// buildHistoryTree selects the compact build fields used by history reads.
const buildHistoryTree = "builds[number,url,result,timestamp,duration,building]"

// Builds fetches up to limit recent builds of a job via a tree query.
func (c *Client) Builds(ctx context.Context, name string, limit int) ([]Build, error) {
	var out struct {
		Builds []Build `json:"builds"`
	}
	path := fmt.Sprintf("%s/api/json?tree=%s{0,%d}", jobPath(name), buildHistoryTree, limit)
	if err := c.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Builds, nil
}

// JobBuilds pairs a job name with its recent builds.
type JobBuilds struct {
	Name   string  `json:"name"`
	Builds []Build `json:"builds"`
}

// RecentBuilds fetches recent builds across all top-level jobs.
func (c *Client) RecentBuilds(ctx context.Context, limit int) ([]JobBuilds, error) {
	var out struct {
		Jobs []JobBuilds `json:"jobs"`
	}
	path := fmt.Sprintf("api/json?tree=jobs[name,%s{0,%d}]", buildHistoryTree, limit)
	if err := c.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

// QueueInfo fetches the server-wide build queue.
func (c *Client) QueueInfo(ctx context.Context) ([]QueueItem, error) {
	var q Queue
	if err := c.GetJSON(ctx, "queue/api/json", &q); err != nil {
		return nil, err
	}
	return q.Items, nil
}

// QueueItem fetches a single queue item by id.
func (c *Client) QueueItem(ctx context.Context, id int64) (*QueueItem, error) {
	var item QueueItem
	if err := c.GetJSON(ctx, fmt.Sprintf("queue/item/%d/api/json", id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CancelQueueItem cancels a pending queue item.
func (c *Client) CancelQueueItem(ctx context.Context, id int64) error {
	return c.PostForm(ctx, fmt.Sprintf("queue/cancelItem?id=%d", id), nil)
}

// Computers fetches all nodes with executor totals. Also serves as the
// system information read.
func (c *Client) Computers(ctx context.Context) (*ComputerSet, error) {
	var set ComputerSet
	if err := c.GetJSON(ctx, "computer/api/json?depth=1", &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// NodeInfo fetches a single node.
func (c *Client) NodeInfo(ctx context.Context, name string) (*Computer, error) {
	var node Computer
	if err := c.GetJSON(ctx, "computer/"+nodePath(name)+"/api/json", &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// CreateNode creates an agent node from a pre-built form payload.
func (c *Client) CreateNode(ctx context.Context, form url.Values) error {
	return c.PostForm(ctx, "computer/doCreateItem", form)
}

// DeleteNode removes an agent node.
func (c *Client) DeleteNode(ctx context.Context, name string) error {
	return c.PostForm(ctx, "computer/"+nodePath(name)+"/doDelete", nil)
}

// ToggleNodeOffline flips the node's temporarily-offline state. The message
// is recorded as the offline cause when taking the node offline.
func (c *Client) ToggleNodeOffline(ctx context.Context, name, message string) error {
	form := url.Values{"offlineMessage": {message}}
	return c.PostForm(ctx, "computer/"+nodePath(name)+"/toggleOffline", form)
}

// Plugins lists installed plugins at the requested depth.
func (c *Client) Plugins(ctx context.Context, depth int) ([]Plugin, error) {
	var out struct {
		Plugins []Plugin `json:"plugins"`
	}
	path := fmt.Sprintf("pluginManager/api/json?depth=%d", depth)
	if err := c.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Plugins, nil
}

// InstallPlugin posts a plugin installation document to the plugin manager.
func (c *Client) InstallPlugin(ctx context.Context, installXML []byte) error {
	return c.PostBody(ctx, "pluginManager/installNecessaryPlugins", "text/xml", installXML)
}

// Views lists all views at the server root.
func (c *Client) Views(ctx context.Context) ([]View, error) {
	var out struct {
		Views []View `json:"views"`
	}
	if err := c.GetJSON(ctx, "api/json?tree=views[name,url]", &out); err != nil {
		return nil, err
	}
	return out.Views, nil
}

// ViewInfo fetches a view and its member jobs.
func (c *Client) ViewInfo(ctx context.Context, name string) (*View, error) {
	var v View
	if err := c.GetJSON(ctx, "view/"+url.PathEscape(name)+"/api/json", &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateView creates a view from a pre-built form payload.
func (c *Client) CreateView(ctx context.Context, form url.Values) error {
	return c.PostForm(ctx, "createView", form)
}

// DeleteView deletes a view.
func (c *Client) DeleteView(ctx context.Context, name string) error {
	return c.PostForm(ctx, "view/"+url.PathEscape(name)+"/doDelete", nil)
}

// AddJobToView adds a job to a view's membership.
func (c *Client) AddJobToView(ctx context.Context, view, job string) error {
	form := url.Values{"name": {job}}
	return c.PostForm(ctx, "view/"+url.PathEscape(view)+"/addJobToView", form)
}

// RemoveJobFromView removes a job from a view's membership.
func (c *Client) RemoveJobFromView(ctx context.Context, view, job string) error {
	form := url.Values{"name": {job}}
	return c.PostForm(ctx, "view/"+url.PathEscape(view)+"/removeJobFromView", form)
}

// Credentials lists credential metadata in a domain of the system store.
func (c *Client) Credentials(ctx context.Context, domain string) ([]Credential, error) {
	var out struct {
		Credentials []Credential `json:"credentials"`
	}
	path := "credentials/store/system/domain/" + url.PathEscape(domain) + "/api/json?depth=1"
	if err := c.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Credentials, nil
}

// CredentialDomains lists the domains of the system credential store.
func (c *Client) CredentialDomains(ctx context.Context) ([]CredentialDomain, error) {
	var out struct {
		Domains map[string]struct {
			Description string `json:"description"`
		} `json:"domains"`
	}
	if err := c.GetJSON(ctx, "credentials/store/system/api/json?depth=1", &out); err != nil {
		return nil, err
	}
	domains := make([]CredentialDomain, 0, len(out.Domains))
	for name, d := range out.Domains {
		domains = append(domains, CredentialDomain{Name: name, Description: d.Description})
	}
	return domains, nil
}

// CredentialInfo fetches metadata for a single credential, primarily for
// existence checks. Secret values are never returned by the server.
func (c *Client) CredentialInfo(ctx context.Context, domain, id string) (*Credential, error) {
	var cred Credential
	path := "credentials/store/system/domain/" + url.PathEscape(domain) + "/credential/" + url.PathEscape(id) + "/api/json"
	if err := c.GetJSON(ctx, path, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

// CreateCredential posts a pre-built credential form to a domain.
func (c *Client) CreateCredential(ctx context.Context, domain string, form url.Values) error {
	path := "credentials/store/system/domain/" + url.PathEscape(domain) + "/createCredentials"
	return c.PostForm(ctx, path, form)
}

// DeleteCredential removes a credential from a domain.
func (c *Client) DeleteCredential(ctx context.Context, domain, id string) error {
	path := "credentials/store/system/domain/" + url.PathEscape(domain) + "/credential/" + url.PathEscape(id) + "/doDelete"
	return c.PostForm(ctx, path, nil)
}

// RunScript executes a Groovy script on the controller and returns its
// output text.
func (c *Client) RunScript(ctx context.Context, script string) (string, error) {
	form := url.Values{"script": {script}}
	return c.postText(ctx, "scriptText", form)
}

// QuietDown puts the server in quiet-down mode (no new builds start).
func (c *Client) QuietDown(ctx context.Context) error {
	return c.PostForm(ctx, "quietDown", nil)
}

// CancelQuietDown leaves quiet-down mode.
func (c *Client) CancelQuietDown(ctx context.Context) error {
	return c.PostForm(ctx, "cancelQuietDown", nil)
}

// Restart restarts the server. Safe restarts wait for running builds.
func (c *Client) Restart(ctx context.Context, safe bool) error {
	path := "restart"
	if safe {
		path = "safeRestart"
	}
	return c.PostForm(ctx, path, nil)
}
