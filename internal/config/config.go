package config

import (
	"os"
	"path/filepath"
)

const (
	AppName    = "Lirik"
	AppVersion = "1.0.0"
)

// DefaultUserAgent identifies Lirik on outbound requests (discovery feeds,
// search queries).
var DefaultUserAgent = AppName + "/" + AppVersion

// Chrome headers for TLS fingerprinting; must match the azuretls Chrome
// profile version. Lyric sites are aggressive about blocking non-browser
// clients.
const (
	ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
	ChromeSecChUa   = `"Google Chrome";v="135", "Chromium";v="135", "Not-A.Brand";v="8"`
)

type Config struct {
	Addr      string
	DBPath    string
	DataDir   string
	StaticDir string
	LogLevel  string
}

func Load() Config {
	addr := os.Getenv("LIRIK_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dataDir := os.Getenv("LIRIK_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	path := os.Getenv("LIRIK_DB_PATH")
	if path == "" {
		path = filepath.Join(dataDir, "lirik.db")
	}
	staticDir := os.Getenv("LIRIK_STATIC_DIR")
	if staticDir == "" {
		staticDir = detectStaticDir()
	}
	logLevel := os.Getenv("LIRIK_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		Addr:      addr,
		DBPath:    filepath.Clean(path),
		DataDir:   filepath.Clean(dataDir),
		StaticDir: filepath.Clean(staticDir),
		LogLevel:  logLevel,
	}
}

func detectStaticDir() string {
	candidates := []string{
		"./frontend/dist",
		"../frontend/dist",
	}
	for _, candidate := range candidates {
		indexPath := filepath.Join(candidate, "index.html")
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return "./frontend/dist"
}
