package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type AppConfig struct {
	k *koanf.Koanf
}

func NewAppConfig() *AppConfig {
	c := &AppConfig{k: koanf.New(".")}

	setDefaults(c.k)

	return c
}

func (c *AppConfig) Load(filename ...string) bool {
	loaded := false

	for _, name := range filename {
		if err := c.k.Load(file.Provider(name), yaml.Parser()); err != nil {
			slog.Info(fmt.Sprintf("error loading config: %s", err.Error()))
		} else {
			loaded = true
		}
	}

	return loaded
}

func (c *AppConfig) LoadEnv(prefix string) error {
	return c.k.Load(env.Provider(prefix, ".", func(s string) string {
		s1 := strings.ToLower(strings.TrimPrefix(s, prefix))
		for _, pr := range []string{"token_"} {
			if strings.HasPrefix(s1, pr) {
				return strings.Replace(s1, "_", ".", 1)
			}
		}

		return s1
	}), nil)
}

func (c *AppConfig) Bool(key string) bool {
	return c.k.Bool(key)
}

func (c *AppConfig) String(key string) string {
	return c.k.String(key)
}

func (c *AppConfig) Set(key string, v any) error {
	return c.k.Set(key, v)
}

func (c *AppConfig) ApiAddr() string {
	return c.k.String("api_addr")
}

func (c *AppConfig) DB() string {
	return c.k.String("db")
}

func (c *AppConfig) TokenKey() []byte {
	return []byte(c.k.String("token.key"))
}

func (c *AppConfig) TokenMaxAge() time.Duration {
	return c.k.Duration("token.max_age")
}

func (c *AppConfig) Debug() bool {
	return c.k.Bool("debug")
}

func setDefaults(k *koanf.Koanf) {
	k.Set("api_addr", ":9000")
	k.Set("db", "campaigns.sqlite")
	k.Set("debug", false)

	k.Set("token.key", "change-me")
	k.Set("token.max_age", "24h")
}
