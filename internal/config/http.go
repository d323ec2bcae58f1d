package config

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"8000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`

	CorsAllowedOrigins []string `env:"HTTP_CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// RateLimit is the number of requests per second accepted across the whole server.
	// Zero disables limiting.
	RateLimit float64 `env:"HTTP_RATE_LIMIT" envDefault:"0"`
	RateBurst int     `env:"HTTP_RATE_BURST" envDefault:"50"`
}
