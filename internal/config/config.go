package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"bdo_market_go/internal/model"
	"bdo_market_go/pkg/bdoapi"
)

type Config struct {
	Port              string             `yaml:"port"`
	RedisURL          string             `yaml:"redis_url"`
	RedisClusterAddrs []string           `yaml:"redis_cluster_addrs"`
	DatabaseURL       string             `yaml:"database_url"`
	CacheTTL          time.Duration      `yaml:"cache_ttl"`
	RequestTimeout    time.Duration      `yaml:"request_timeout"`
	Retries           int                `yaml:"retries"`
	Regions           []string           `yaml:"regions"`
	Items             []model.ConfigItem `yaml:"items"`
}

func Default() *Config {
	return &Config{
		Port:           "8080",
		CacheTTL:       5 * time.Minute,
		RequestTimeout: 5 * time.Second,
		Retries:        3,
		Regions:        []string{"na", "eu"},
	}
}

// Load reads .env (optional), then $CONFIG_DIR/$CONFIG_NAME (optional), then
// environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	dir := getenv("CONFIG_DIR", ".")
	name := getenv("CONFIG_NAME", "default_config.yml")

	cfg, err := LoadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadFile parses one YAML file on top of Default.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("REDIS_CLUSTER_ADDRS"); v != "" {
		c.RedisClusterAddrs = strings.Split(v, ",")
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.CacheTTL = d
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := c.ParsedRegions(); err != nil {
		return err
	}
	type itemKey struct{ id, sid int }
	seen := make(map[itemKey]int, len(c.Items))
	for i, it := range c.Items {
		if it.ID <= 0 {
			return fmt.Errorf("items[%d] %q: id must be positive", i, it.Name)
		}
		if it.SID < 0 {
			return fmt.Errorf("items[%d] %q: sid must not be negative", i, it.Name)
		}
		// 같은 (id, sid)는 메트릭 시리즈가 중복되어 스크레이프 전체가 실패한다
		k := itemKey{it.ID, it.SID}
		if j, ok := seen[k]; ok {
			return fmt.Errorf("items[%d] %q: id %d sid %d already used by items[%d]", i, it.Name, it.ID, it.SID, j)
		}
		seen[k] = i
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	return nil
}

func (c *Config) ParsedRegions() ([]bdoapi.Region, error) {
	out := make([]bdoapi.Region, 0, len(c.Regions))
	for _, s := range c.Regions {
		r, err := bdoapi.ParseRegion(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
