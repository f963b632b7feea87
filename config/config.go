package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AWS      AWSConfig
	DynamoDB DynamoDBConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Server   ServerConfig
	Rules    RulesConfig
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

type DynamoDBConfig struct {
	TableName        string
	MaxRetries       int
	UseLocalEndpoint bool
}

type RedisConfig struct {
	Address  string
	Password string
}

type NATSConfig struct {
	URL                  string
	MaxReconnect         int
	ReconnectWaitSeconds int
	TimeoutSeconds       int
}

type ServerConfig struct {
	HTTPPort          int
	Environment       string
	LogLevel          string
	PhaseTickSeconds  int
	ShutdownTimeoutMs int
}

// RulesConfig carries the reference data tournament validation runs
// against. It is loaded once and passed down read-only; nothing in the
// service mutates it.
type RulesConfig struct {
	MinimumLeadTime       time.Duration
	MinTournamentDuration time.Duration
	MinSubmissionWindow   time.Duration
	MaxCurveWeight        float64
	SettlementContract    string
	TokenWhitelist        []string
	GameWhitelist         []string
}

func Load(configPath string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath(configPath)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PODIUM")

	setRuleDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Secrets come from the environment, never the yaml file.
	env := NewEnvLoader("PODIUM")
	cfg.Redis.Password = env.GetString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.AWS.AccessKeyID = env.GetString("AWS_ACCESS_KEY_ID", cfg.AWS.AccessKeyID)
	cfg.AWS.SecretAccessKey = env.GetString("AWS_SECRET_ACCESS_KEY", cfg.AWS.SecretAccessKey)

	return &cfg, nil
}

func setRuleDefaults() {
	viper.SetDefault("rules.minimumleadtime", 30*time.Minute)
	viper.SetDefault("rules.mintournamentduration", 15*time.Minute)
	viper.SetDefault("rules.minsubmissionwindow", 24*time.Hour)
	viper.SetDefault("rules.maxcurveweight", 5.0)
	viper.SetDefault("server.phasetickseconds", 30)
}

// DefaultRules returns the rule set used when no config file is in
// play, e.g. in tests and the stateless timeline preview endpoint.
func DefaultRules() RulesConfig {
	return RulesConfig{
		MinimumLeadTime:       30 * time.Minute,
		MinTournamentDuration: 15 * time.Minute,
		MinSubmissionWindow:   24 * time.Hour,
		MaxCurveWeight:        5,
	}
}
