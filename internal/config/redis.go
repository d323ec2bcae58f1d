package config

import "time"

// Redis configures the product read-through cache. An empty Addr disables caching.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_PRODUCT_TTL" envDefault:"5m"`

	// EvictionGuard is how long an evicted product refuses to be cached again.
	EvictionGuard time.Duration `env:"REDIS_EVICTION_GUARD" envDefault:"5s"`
}

func (r Redis) Enabled() bool {
	return r.Addr != ""
}
