package config

import "time"

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	BasePath string `yaml:"base_path"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`

	// StrictRevocation переключает поведение проверки чёрного списка
	// при недоступности Redis: false — запрос пропускается (доступность
	// важнее строгого отзыва), true — запрос отклоняется.
	StrictRevocation bool `yaml:"strict_revocation"`

	// Заполняются один раз при загрузке конфигурации,
	// строки TTL повторно не разбираются.
	AccessTokenDuration  time.Duration `yaml:"-"`
	RefreshTokenDuration time.Duration `yaml:"-"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	// Политика повторов go-redis: ограниченное число попыток
	// с экспоненциальной задержкой между ними.
	MaxRetries      int    `yaml:"max_retries"`
	MinRetryBackoff string `yaml:"min_retry_backoff"`
	MaxRetryBackoff string `yaml:"max_retry_backoff"`
	DialTimeout     string `yaml:"dial_timeout"`
}

type TTL struct {
	PresignedURL int `yaml:"presignedURL"`
}
