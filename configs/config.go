package configs

import (
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	config *Config
	once   sync.Once
)

type Config struct {
	Viper *viper.Viper
}

func GetConfig() *Config {
	once.Do(func() {
		v, err := Load("config", ".", "./configs")
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		config = &Config{Viper: v}
		config.watch()
	})
	return config
}

// Load reads the named config file from the first path that has it. A missing
// file is not an error: defaults and MG_* environment variables still apply.
func Load(name string, paths ...string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(name)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("MG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Println("No config file found, using defaults and environment")
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.cors_origins", "http://localhost:5173,http://localhost:3000")

	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.expiration_time", 60*60*24*7)

	v.SetDefault("admin.login", "admin")
	v.SetDefault("admin.password", "1234")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "mg")
	v.SetDefault("database.password", "mg")
	v.SetDefault("database.name", "mgmessenger")
	v.SetDefault("database.ssl", "disable")
	v.SetDefault("database.timezone", "UTC")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.external_endpoint", "localhost:9000")
	v.SetDefault("minio.access_key_id", "minioadmin")
	v.SetDefault("minio.secret_access_key", "minioadmin")
	v.SetDefault("minio.use_ssl", false)

	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.ping_period", "54s")
	v.SetDefault("websocket.max_message_size", 64*1024)
	v.SetDefault("websocket.send_buffer_size", 256)
}

// watch logs config file changes. Values read through Viper pick them up;
// listeners, pools and clients created at startup keep their settings.
func (c *Config) watch() {
	if c.Viper.ConfigFileUsed() == "" {
		return
	}
	c.Viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Has(fsnotify.Write) || e.Has(fsnotify.Create) {
			log.Printf("Config file changed: %v", e.Name)
		}
	})
	c.Viper.WatchConfig()
}
