package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Transaction TransactionConfig `yaml:"transaction"`
	Log         LogConfig         `yaml:"log"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	Path            string        `yaml:"path"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	DialTimeout     time.Duration `yaml:"dialTimeout"`
	QueryTimeout    time.Duration `yaml:"queryTimeout"`
}

type TransactionConfig struct {
	Timeout          time.Duration `yaml:"timeout"`
	MaxRetryAttempts int           `yaml:"maxRetryAttempts"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults holds tunables only. Address and credentials have no compiled-in
// value and must come from the environment or a config file.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          DriverMySQL,
			Port:            3306,
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			DialTimeout:     5 * time.Second,
			QueryTimeout:    10 * time.Second,
		},
		Transaction: TransactionConfig{
			Timeout:          5 * time.Second,
			MaxRetryAttempts: 3,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

func Load() (*Config, error) {
	return LoadWithBase(Defaults())
}

// LoadWithBase reads the environment on top of base: any variable that is
// set wins over the corresponding base value.
func LoadWithBase(base Config) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", base.Server.Port)
	v.SetDefault("SERVER_READ_TIMEOUT", base.Server.ReadTimeout.String())
	v.SetDefault("SERVER_WRITE_TIMEOUT", base.Server.WriteTimeout.String())
	v.SetDefault("SERVER_IDLE_TIMEOUT", base.Server.IdleTimeout.String())
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", base.Server.ShutdownTimeout.String())
	v.SetDefault("DB_DRIVER", base.Database.Driver)
	v.SetDefault("DB_HOST", base.Database.Host)
	v.SetDefault("DB_PORT", base.Database.Port)
	v.SetDefault("DB_USER", base.Database.User)
	v.SetDefault("DB_PASSWORD", base.Database.Password)
	v.SetDefault("DB_NAME", base.Database.Name)
	v.SetDefault("DB_PATH", base.Database.Path)
	v.SetDefault("DB_MAX_OPEN_CONNS", base.Database.MaxOpenConns)
	v.SetDefault("DB_MAX_IDLE_CONNS", base.Database.MaxIdleConns)
	v.SetDefault("DB_CONN_MAX_LIFETIME", base.Database.ConnMaxLifetime.String())
	v.SetDefault("DB_DIAL_TIMEOUT", base.Database.DialTimeout.String())
	v.SetDefault("DB_QUERY_TIMEOUT", base.Database.QueryTimeout.String())
	v.SetDefault("TX_TIMEOUT", base.Transaction.Timeout.String())
	v.SetDefault("TX_MAX_RETRY_ATTEMPTS", base.Transaction.MaxRetryAttempts)
	v.SetDefault("LOG_LEVEL", base.Log.Level)
	v.SetDefault("LOG_FORMAT", base.Log.Format)

	readTimeout, err := durationOf(v, "SERVER_READ_TIMEOUT")
	if err != nil {
		return nil, err
	}
	writeTimeout, err := durationOf(v, "SERVER_WRITE_TIMEOUT")
	if err != nil {
		return nil, err
	}
	idleTimeout, err := durationOf(v, "SERVER_IDLE_TIMEOUT")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := durationOf(v, "SERVER_SHUTDOWN_TIMEOUT")
	if err != nil {
		return nil, err
	}
	connMaxLifetime, err := durationOf(v, "DB_CONN_MAX_LIFETIME")
	if err != nil {
		return nil, err
	}
	dialTimeout, err := durationOf(v, "DB_DIAL_TIMEOUT")
	if err != nil {
		return nil, err
	}
	queryTimeout, err := durationOf(v, "DB_QUERY_TIMEOUT")
	if err != nil {
		return nil, err
	}
	txTimeout, err := durationOf(v, "TX_TIMEOUT")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			IdleTimeout:     idleTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("DB_DRIVER"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			Path:            v.GetString("DB_PATH"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
			DialTimeout:     dialTimeout,
			QueryTimeout:    queryTimeout,
		},
		Transaction: TransactionConfig{
			Timeout:          txTimeout,
			MaxRetryAttempts: v.GetInt("TX_MAX_RETRY_ATTEMPTS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func durationOf(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for the mysql driver")
		}
		if c.Database.User == "" {
			return fmt.Errorf("DB_USER is required for the mysql driver")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required for the mysql driver")
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Transaction.MaxRetryAttempts < 1 {
		return fmt.Errorf("TX_MAX_RETRY_ATTEMPTS must be at least 1")
	}

	return nil
}
