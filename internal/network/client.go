package network

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Noooste/azuretls-client"
	"golang.org/x/net/proxy"
)

// ProxyProvider provides proxy configuration.
// This interface is defined here to avoid import cycles with service package.
type ProxyProvider interface {
	GetProxyURL(ctx context.Context) string
}

// ClientFactory creates HTTP clients with proxy configuration. Lyrics sites
// are often geo-blocked or bot-guarded, so all outbound fetching goes
// through here.
type ClientFactory struct {
	proxyProvider  ProxyProvider
	testHTTPClient *http.Client // For testing only
}

// NewClientFactory creates a new client factory.
func NewClientFactory(proxyProvider ProxyProvider) *ClientFactory {
	return &ClientFactory{proxyProvider: proxyProvider}
}

// NewClientFactoryForTest creates a client factory that uses the given http.Client for testing.
// This is only for use in tests.
func NewClientFactoryForTest(client *http.Client) *ClientFactory {
	return &ClientFactory{
		proxyProvider:  &noopProxyProvider{},
		testHTTPClient: client,
	}
}

// noopProxyProvider returns empty proxy URL.
type noopProxyProvider struct{}

func (p *noopProxyProvider) GetProxyURL(ctx context.Context) string {
	return ""
}

// NewHTTPClient creates a standard http.Client with proxy configuration.
func (f *ClientFactory) NewHTTPClient(ctx context.Context, timeout time.Duration) *http.Client {
	// For testing: return the injected client
	if f.testHTTPClient != nil {
		return f.testHTTPClient
	}

	client := &http.Client{Timeout: timeout}

	proxyURL := f.proxyProvider.GetProxyURL(ctx)
	if proxyURL != "" {
		client.Transport = newTransportWithProxy(proxyURL)
	}

	return client
}

// NewAzureSession creates an azuretls.Session with a Chrome TLS fingerprint
// and proxy configuration. Used for lyrics pages behind bot protection.
func (f *ClientFactory) NewAzureSession(ctx context.Context, timeout time.Duration) *azuretls.Session {
	session := azuretls.NewSession()
	session.Browser = azuretls.Chrome
	session.SetTimeout(timeout)

	proxyURL := f.proxyProvider.GetProxyURL(ctx)
	if proxyURL != "" {
		_ = session.SetProxy(proxyURL)
	}

	return session
}

// GetProxyURL returns the current proxy URL.
func (f *ClientFactory) GetProxyURL(ctx context.Context) string {
	return f.proxyProvider.GetProxyURL(ctx)
}

// TestProxy tests a proxy configuration without saving it by making a
// request to the given URL. An empty proxyURL tests the direct connection.
func (f *ClientFactory) TestProxy(ctx context.Context, proxyURL, testURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	if f.testHTTPClient != nil {
		client = f.testHTTPClient
	} else if proxyURL != "" {
		client.Transport = newTransportWithProxy(proxyURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, testURL, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return nil
}

// newTransportWithProxy creates an http.Transport with proper proxy support.
// For SOCKS5 proxies, it uses golang.org/x/net/proxy for correct handling.
// For HTTP/HTTPS proxies, it uses the standard http.ProxyURL.
func newTransportWithProxy(proxyURL string) *http.Transport {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return &http.Transport{}
	}

	if strings.HasPrefix(parsed.Scheme, "socks") {
		var auth *proxy.Auth
		if parsed.User != nil {
			auth = &proxy.Auth{
				User: parsed.User.Username(),
			}
			if password, ok := parsed.User.Password(); ok {
				auth.Password = password
			}
		}

		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return &http.Transport{}
		}

		return &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}
	}

	return &http.Transport{
		Proxy: http.ProxyURL(parsed),
	}
}
