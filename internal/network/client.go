package network

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// ClientFactory builds the outbound HTTP clients used for GitHub calls.
type ClientFactory struct {
	proxyURL      string
	timeout       time.Duration
	testTransport http.RoundTripper // tests only
}

// NewClientFactory returns a factory routing through proxyURL when it is set.
// HTTP, HTTPS and SOCKS5 proxy URLs are supported.
func NewClientFactory(proxyURL string, timeout time.Duration) (*ClientFactory, error) {
	proxyURL = strings.TrimSpace(proxyURL)
	if proxyURL != "" {
		if _, err := newTransportWithProxy(proxyURL); err != nil {
			return nil, err
		}
	}
	return &ClientFactory{proxyURL: proxyURL, timeout: timeout}, nil
}

// NewClientFactoryForTest returns a factory whose clients use transport.
func NewClientFactoryForTest(transport http.RoundTripper) *ClientFactory {
	return &ClientFactory{testTransport: transport}
}

// NewHTTPClient creates an http.Client with the configured timeout and proxy.
func (f *ClientFactory) NewHTTPClient() *http.Client {
	client := &http.Client{Timeout: f.timeout}
	if f.testTransport != nil {
		client.Transport = f.testTransport
		return client
	}
	if f.proxyURL != "" {
		// Validated in NewClientFactory.
		transport, _ := newTransportWithProxy(f.proxyURL)
		client.Transport = transport
	}
	return client
}

// ProxyURL returns the configured proxy with any password masked, or ""
// for direct connections.
func (f *ClientFactory) ProxyURL() string {
	if f.proxyURL == "" {
		return ""
	}
	parsed, err := url.Parse(f.proxyURL)
	if err != nil {
		return ""
	}
	return parsed.Redacted()
}

func newTransportWithProxy(proxyURL string) (*http.Transport, error) {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("proxy url %q has no host", proxyURL)
	}

	switch {
	case strings.HasPrefix(parsed.Scheme, "socks"):
		var auth *proxy.Auth
		if parsed.User != nil {
			auth = &proxy.Auth{User: parsed.User.Username()}
			if password, ok := parsed.User.Password(); ok {
				auth.Password = password
			}
		}
		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 dialer: %w", err)
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = nil
		if contextDialer, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = contextDialer.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
		return transport, nil
	case parsed.Scheme == "http" || parsed.Scheme == "https":
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = http.ProxyURL(parsed)
		return transport, nil
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", parsed.Scheme)
	}
}
