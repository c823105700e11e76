package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	MongoURI        string
	MongoHost       string
	MongoPort       string
	MongoUser       string
	MongoPassword   string
	MongoDB         string
	MongoAuthSource string
	CORSOrigins     []string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// MongoConnectionURI returns the full connection string, preferring an
// explicitly configured URI over one assembled from components.
func (c Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}

	return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
		c.MongoUser, c.MongoPassword, c.MongoHost, c.MongoPort, c.MongoDB, c.MongoAuthSource)
}

// CORSAllowOrigins renders the origin list for the CORS middleware.
func (c Config) CORSAllowOrigins() string {
	return strings.Join(c.CORSOrigins, ",")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PROBLEMS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Problems API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8000")
	v.SetDefault("mongo.host", "mongo")
	v.SetDefault("mongo.port", "27017")
	v.SetDefault("mongo.user", "mongoadmin")
	v.SetDefault("mongo.password", "mongoadmin")
	v.SetDefault("mongo.db", "my_database")
	v.SetDefault("mongo.auth_source", "admin")
	v.SetDefault("cors.origins", "http://localhost:8080,https://localhost:8080")

	origins := make([]string, 0)
	for _, origin := range strings.Split(v.GetString("cors.origins"), ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return Config{}, fmt.Errorf("cors origins must not be empty")
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		MongoURI:        v.GetString("mongo.uri"),
		MongoHost:       v.GetString("mongo.host"),
		MongoPort:       v.GetString("mongo.port"),
		MongoUser:       v.GetString("mongo.user"),
		MongoPassword:   v.GetString("mongo.password"),
		MongoDB:         v.GetString("mongo.db"),
		MongoAuthSource: v.GetString("mongo.auth_source"),
		CORSOrigins:     origins,
	}

	return cfg, nil
}
