// Package github provides factory functions for authenticated GitHub API
// clients: per-request personal-access-token clients and an optional
// server-level GitHub App installation client for deployed environments.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gogithub "github.com/google/go-github/v75/github"
	"golang.org/x/oauth2"
)

const defaultAPIURL = "https://api.github.com"

// Options configures a ClientFactory. BaseURL overrides the GitHub API root
// (e.g. "http://localhost:9090" for a mock server); the App fields are only
// read when AppID is non-zero.
type Options struct {
	BaseURL        string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// ClientFactory builds go-github clients. One factory is created at process
// start and shared by all requests.
type ClientFactory struct {
	baseURL      string
	appTransport *ghinstallation.Transport
}

// NewClientFactory creates a factory. When opts.AppID is set the App
// installation transport is initialised eagerly so a bad key path fails at
// boot, not on the first request.
func NewClientFactory(opts Options) (*ClientFactory, error) {
	f := &ClientFactory{baseURL: opts.BaseURL}

	if opts.AppID != 0 {
		tr, err := ghinstallation.NewKeyFromFile(
			http.DefaultTransport, opts.AppID, opts.InstallationID, opts.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("github app auth: %w", err)
		}
		if opts.BaseURL != "" {
			tr.BaseURL = opts.BaseURL
		} else {
			tr.BaseURL = defaultAPIURL
		}
		f.appTransport = tr
	}

	return f, nil
}

// ServerAuthenticated reports whether App installation auth is configured.
func (f *ClientFactory) ServerAuthenticated() bool {
	return f.appTransport != nil
}

// TokenClient returns a client authenticated with a personal access token.
// The token is request-scoped: the client is built per call and discarded
// with the request.
func (f *ClientFactory) TokenClient(token string) *gogithub.Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	c := gogithub.NewClient(httpClient)
	f.applyBaseURL(c)
	return c
}

// AppClient returns a client authenticated as the configured GitHub App
// installation. Callers must check ServerAuthenticated first.
func (f *ClientFactory) AppClient() *gogithub.Client {
	c := gogithub.NewClient(&http.Client{Transport: f.appTransport})
	f.applyBaseURL(c)
	return c
}

func (f *ClientFactory) applyBaseURL(c *gogithub.Client) {
	if f.baseURL == "" || f.baseURL == defaultAPIURL {
		return
	}
	u, err := url.Parse(f.baseURL + "/")
	if err != nil {
		return
	}
	c.BaseURL = u
}
