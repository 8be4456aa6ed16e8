package service

import (
	"context"
	"fmt"
	"strings"

	"lirik/internal/network"
	"lirik/internal/repository"
	"lirik/internal/service/ai"
)

// AISettings holds the LLM configuration. The API key itself lives in the
// credentials table; only a masked form ever leaves the service.
type AISettings struct {
	Provider  string `json:"provider"`
	APIKey    string `json:"apiKey"`
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	RateLimit int    `json:"rateLimit"`
}

// NetworkSettings holds the outbound network configuration.
type NetworkSettings struct {
	ProxyURL string `json:"proxyUrl"`
}

// DiscoverySettings holds the trending-feed configuration.
type DiscoverySettings struct {
	FeedURLs       []string `json:"feedUrls"`
	RefreshMinutes int      `json:"refreshMinutes"`
}

// Setting keys
const (
	keyAIProvider  = "ai.provider"
	keyAIBaseURL   = "ai.base_url"
	keyAIModel     = "ai.model"
	keyAIRateLimit = "ai.rate_limit"

	keyNetworkProxyURL = "network.proxy_url"

	keyDiscoveryFeeds          = "discovery.feeds"
	keyDiscoveryRefreshMinutes = "discovery.refresh_minutes"
)

// DefaultDiscoveryRefreshMinutes is used when no interval is configured.
const DefaultDiscoveryRefreshMinutes = 360

// credentialUserID identifies the API key owner. Single-user instance.
const credentialUserID = "admin"

// SettingsService provides settings management.
type SettingsService interface {
	// GetAISettings returns the LLM configuration with a masked API key.
	GetAISettings(ctx context.Context) (*AISettings, error)
	// SetAISettings updates the LLM configuration.
	// An empty or masked apiKey keeps the existing key.
	SetAISettings(ctx context.Context, settings *AISettings) error
	// TestAI tests the LLM connection with the given configuration.
	TestAI(ctx context.Context, provider, apiKey, baseURL, model string) (string, error)

	// GetNetworkSettings returns the network configuration.
	GetNetworkSettings(ctx context.Context) (*NetworkSettings, error)
	// SetNetworkSettings updates the network configuration.
	SetNetworkSettings(ctx context.Context, settings *NetworkSettings) error
	// TestProxy tests a proxy configuration without saving it.
	TestProxy(ctx context.Context, proxyURL, testURL string) error

	// GetDiscoverySettings returns the trending-feed configuration.
	GetDiscoverySettings(ctx context.Context) (*DiscoverySettings, error)
	// SetDiscoverySettings updates the trending-feed configuration.
	SetDiscoverySettings(ctx context.Context, settings *DiscoverySettings) error

	// GetProxyURL implements network.ProxyProvider.
	GetProxyURL(ctx context.Context) string
	// ProviderConfig resolves the full LLM config including the stored key.
	ProviderConfig(ctx context.Context) (ai.Config, error)
}

type settingsService struct {
	repo        repository.SettingsRepository
	credentials repository.CredentialRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingsRepository, credentials repository.CredentialRepository) SettingsService {
	return &settingsService{repo: repo, credentials: credentials}
}

// GetAISettings returns the LLM configuration with a masked API key.
func (s *settingsService) GetAISettings(ctx context.Context) (*AISettings, error) {
	settings := &AISettings{
		Provider:  ai.ProviderOpenAI, // default
		RateLimit: ai.DefaultRateLimit,
	}

	if val, err := s.getString(ctx, keyAIProvider); err == nil && val != "" {
		settings.Provider = val
	}
	if val, err := s.getString(ctx, keyAIBaseURL); err == nil {
		settings.BaseURL = val
	}
	if val, err := s.getString(ctx, keyAIModel); err == nil {
		settings.Model = val
	}
	if val, err := s.getInt(ctx, keyAIRateLimit); err == nil && val > 0 {
		settings.RateLimit = val
	}

	cred, err := s.credentials.Get(ctx, credentialUserID)
	if err != nil {
		return nil, fmt.Errorf("get api key: %w", err)
	}
	if cred != nil {
		settings.APIKey = maskAPIKey(cred.APIKey)
	}

	return settings, nil
}

// SetAISettings updates the LLM configuration.
func (s *settingsService) SetAISettings(ctx context.Context, settings *AISettings) error {
	if settings.Provider != "" {
		if err := s.repo.Set(ctx, keyAIProvider, settings.Provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
	}
	if err := s.repo.Set(ctx, keyAIBaseURL, settings.BaseURL); err != nil {
		return fmt.Errorf("set base url: %w", err)
	}
	if err := s.repo.Set(ctx, keyAIModel, settings.Model); err != nil {
		return fmt.Errorf("set model: %w", err)
	}
	if settings.RateLimit > 0 {
		if err := s.repo.Set(ctx, keyAIRateLimit, fmt.Sprintf("%d", settings.RateLimit)); err != nil {
			return fmt.Errorf("set rate limit: %w", err)
		}
	}
	if settings.APIKey != "" && !isMaskedKey(settings.APIKey) {
		if err := s.credentials.Set(ctx, credentialUserID, settings.APIKey); err != nil {
			return fmt.Errorf("set api key: %w", err)
		}
	}
	return nil
}

// TestAI tests the LLM connection with the given configuration.
func (s *settingsService) TestAI(ctx context.Context, provider, apiKey, baseURL, model string) (string, error) {
	// A masked key means "use the stored one"
	if isMaskedKey(apiKey) || apiKey == "" {
		cred, err := s.credentials.Get(ctx, credentialUserID)
		if err != nil {
			return "", fmt.Errorf("get stored api key: %w", err)
		}
		if cred != nil {
			apiKey = cred.APIKey
		} else {
			apiKey = ""
		}
	}

	p, err := ai.NewProvider(ai.Config{
		Provider: provider,
		APIKey:   apiKey,
		BaseURL:  baseURL,
		Model:    model,
	})
	if err != nil {
		return "", err
	}

	return p.Test(ctx)
}

// GetNetworkSettings returns the network configuration.
func (s *settingsService) GetNetworkSettings(ctx context.Context) (*NetworkSettings, error) {
	proxyURL, err := s.getString(ctx, keyNetworkProxyURL)
	if err != nil {
		return nil, fmt.Errorf("get proxy url: %w", err)
	}
	return &NetworkSettings{ProxyURL: proxyURL}, nil
}

// SetNetworkSettings updates the network configuration.
func (s *settingsService) SetNetworkSettings(ctx context.Context, settings *NetworkSettings) error {
	if err := s.repo.Set(ctx, keyNetworkProxyURL, settings.ProxyURL); err != nil {
		return fmt.Errorf("set proxy url: %w", err)
	}
	return nil
}

// TestProxy tests a proxy configuration without saving it.
func (s *settingsService) TestProxy(ctx context.Context, proxyURL, testURL string) error {
	return network.NewClientFactory(s).TestProxy(ctx, proxyURL, testURL)
}

// GetDiscoverySettings returns the trending-feed configuration.
func (s *settingsService) GetDiscoverySettings(ctx context.Context) (*DiscoverySettings, error) {
	settings := &DiscoverySettings{
		RefreshMinutes: DefaultDiscoveryRefreshMinutes,
	}

	raw, err := s.getString(ctx, keyDiscoveryFeeds)
	if err != nil {
		return nil, fmt.Errorf("get discovery feeds: %w", err)
	}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			settings.FeedURLs = append(settings.FeedURLs, line)
		}
	}

	if val, err := s.getInt(ctx, keyDiscoveryRefreshMinutes); err == nil && val > 0 {
		settings.RefreshMinutes = val
	}

	return settings, nil
}

// SetDiscoverySettings updates the trending-feed configuration.
func (s *settingsService) SetDiscoverySettings(ctx context.Context, settings *DiscoverySettings) error {
	if err := s.repo.Set(ctx, keyDiscoveryFeeds, strings.Join(settings.FeedURLs, "\n")); err != nil {
		return fmt.Errorf("set discovery feeds: %w", err)
	}
	if settings.RefreshMinutes > 0 {
		if err := s.repo.Set(ctx, keyDiscoveryRefreshMinutes, fmt.Sprintf("%d", settings.RefreshMinutes)); err != nil {
			return fmt.Errorf("set refresh interval: %w", err)
		}
	}
	return nil
}

// GetProxyURL implements network.ProxyProvider. Errors degrade to a direct
// connection.
func (s *settingsService) GetProxyURL(ctx context.Context) string {
	proxyURL, err := s.getString(ctx, keyNetworkProxyURL)
	if err != nil {
		return ""
	}
	return proxyURL
}

// ProviderConfig resolves the full LLM config including the stored key.
// Returns ErrNoProvider when no API key has been configured.
func (s *settingsService) ProviderConfig(ctx context.Context) (ai.Config, error) {
	cred, err := s.credentials.Get(ctx, credentialUserID)
	if err != nil {
		return ai.Config{}, fmt.Errorf("get api key: %w", err)
	}
	if cred == nil || cred.APIKey == "" {
		return ai.Config{}, ErrNoProvider
	}

	cfg := ai.Config{
		Provider: ai.ProviderOpenAI,
		APIKey:   cred.APIKey,
	}
	if val, err := s.getString(ctx, keyAIProvider); err == nil && val != "" {
		cfg.Provider = val
	}
	if val, err := s.getString(ctx, keyAIBaseURL); err == nil {
		cfg.BaseURL = val
	}
	if val, err := s.getString(ctx, keyAIModel); err == nil {
		cfg.Model = val
	}
	return cfg, nil
}

// maskAPIKey returns a masked version of the API key for display.
func maskAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return "***"
	}
	// Find prefix (e.g., "sk-" for OpenAI)
	prefixEnd := 0
	for i, c := range apiKey {
		if c == '-' {
			prefixEnd = i + 1
			break
		}
		if i >= 4 {
			break
		}
	}
	prefix := apiKey[:prefixEnd]
	suffix := apiKey[len(apiKey)-3:]
	return prefix + "***" + suffix
}

// isMaskedKey checks if a string looks like a masked API key.
func isMaskedKey(key string) bool {
	if len(key) == 0 || len(key) >= 20 {
		return false
	}
	for i := 0; i <= len(key)-3; i++ {
		if key[i:i+3] == "***" {
			return true
		}
	}
	return false
}

// getString gets a plain string value from settings.
func (s *settingsService) getString(ctx context.Context, key string) (string, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return "", nil
	}
	return setting.Value, nil
}

// getInt gets an integer value from settings.
func (s *settingsService) getInt(ctx context.Context, key string) (int, error) {
	val, err := s.getString(ctx, key)
	if err != nil || val == "" {
		return 0, err
	}
	var result int
	_, err = fmt.Sscanf(val, "%d", &result)
	return result, err
}
