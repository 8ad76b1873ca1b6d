// config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Policy        PolicyConfiguration
	Evidence      EvidenceConfiguration
	Knowledge     KnowledgeConfiguration
	Retrieval     RetrievalConfiguration
	Elasticsearch ElasticsearchConfiguration
	Directory     DirectoryConfiguration
	Redis         RedisConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// PolicyConfiguration points at the static policy document
type PolicyConfiguration struct {
	File string
}

// EvidenceConfiguration stores the evidence sink settings
type EvidenceConfiguration struct {
	File string
}

// KnowledgeConfiguration stores the local knowledge fallback settings
type KnowledgeConfiguration struct {
	Dir string
}

// RetrievalConfiguration stores retrieval backend call settings
type RetrievalConfiguration struct {
	Timeout time.Duration
	TopK    int
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL   string
	Index string
}

// DirectoryConfiguration selects the user directory backend
type DirectoryConfiguration struct {
	Backend string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("policy.file", "config/policies.yaml")
	viper.SetDefault("evidence.file", "logs/evidence.log.jsonl")
	viper.SetDefault("knowledge.dir", "docs/knowledge")
	viper.SetDefault("retrieval.timeout", "3s")
	viper.SetDefault("retrieval.topK", 5)
	viper.SetDefault("elasticsearch.url", "")
	viper.SetDefault("elasticsearch.index", "healthcare-rag")
	viper.SetDefault("directory.backend", "memory")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("ratelimit.enabled", false)
	viper.SetDefault("ratelimit.requests", 100)
	viper.SetDefault("ratelimit.window", "1m")
	viper.SetDefault("log.dir", "logs")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
