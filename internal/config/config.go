package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Logging  LoggingConfig
	Matching MatchingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret string
}

type LoggingConfig struct {
	Level string
}

// MatchingWeights is the additive score each preference dimension contributes
// when it matches. The evaluation order of the dimensions is fixed in the
// scorer; only the magnitudes are tunable here.
type MatchingWeights struct {
	Species    float64
	Breed      float64
	Gender     float64
	Age        float64
	Size       float64
	Color      float64
	Pedigree   float64
	Vaccinated float64
	Passport   float64
}

// MatchingConfig holds the tunable parameters of the matching engine and the
// lost-pet matcher.
type MatchingConfig struct {
	Weights              MatchingWeights
	LocationBoost        float64
	InteractionBoost     float64
	CandidatePoolSize    int
	DefaultMatchLimit    int
	DefaultMaxDistanceKm int
	ScoreRetention       time.Duration
	RepeatWindow         time.Duration
	FeedCacheTTL         time.Duration
	LostFound            LostFoundConfig
}

type LostFoundConfig struct {
	BreedWeight     float64
	ColorWeight     float64
	FeaturesWeight  float64
	ProximityWeight float64
	SearchRadiusKm  float64
	RecencyWindow   time.Duration
	MinScore        float64
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	setDefaults()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret: viper.GetString("JWT_ACCESS_SECRET"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Matching: MatchingConfig{
			Weights: MatchingWeights{
				Species:    viper.GetFloat64("MATCH_WEIGHT_SPECIES"),
				Breed:      viper.GetFloat64("MATCH_WEIGHT_BREED"),
				Gender:     viper.GetFloat64("MATCH_WEIGHT_GENDER"),
				Age:        viper.GetFloat64("MATCH_WEIGHT_AGE"),
				Size:       viper.GetFloat64("MATCH_WEIGHT_SIZE"),
				Color:      viper.GetFloat64("MATCH_WEIGHT_COLOR"),
				Pedigree:   viper.GetFloat64("MATCH_WEIGHT_PEDIGREE"),
				Vaccinated: viper.GetFloat64("MATCH_WEIGHT_VACCINATED"),
				Passport:   viper.GetFloat64("MATCH_WEIGHT_PASSPORT"),
			},
			LocationBoost:        viper.GetFloat64("MATCH_LOCATION_BOOST"),
			InteractionBoost:     viper.GetFloat64("MATCH_INTERACTION_BOOST"),
			CandidatePoolSize:    viper.GetInt("MATCH_CANDIDATE_POOL_SIZE"),
			DefaultMatchLimit:    viper.GetInt("MATCH_DEFAULT_LIMIT"),
			DefaultMaxDistanceKm: viper.GetInt("MATCH_DEFAULT_MAX_DISTANCE_KM"),
			ScoreRetention:       viper.GetDuration("MATCH_SCORE_RETENTION"),
			RepeatWindow:         viper.GetDuration("RECOMMENDATION_REPEAT_WINDOW"),
			FeedCacheTTL:         viper.GetDuration("RECOMMENDATION_CACHE_TTL"),
			LostFound: LostFoundConfig{
				BreedWeight:     viper.GetFloat64("LOSTFOUND_WEIGHT_BREED"),
				ColorWeight:     viper.GetFloat64("LOSTFOUND_WEIGHT_COLOR"),
				FeaturesWeight:  viper.GetFloat64("LOSTFOUND_WEIGHT_FEATURES"),
				ProximityWeight: viper.GetFloat64("LOSTFOUND_WEIGHT_PROXIMITY"),
				SearchRadiusKm:  viper.GetFloat64("LOSTFOUND_SEARCH_RADIUS_KM"),
				RecencyWindow:   viper.GetDuration("LOSTFOUND_RECENCY_WINDOW"),
				MinScore:        viper.GetFloat64("LOSTFOUND_MIN_SCORE"),
			},
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("MATCH_WEIGHT_SPECIES", 20.0)
	viper.SetDefault("MATCH_WEIGHT_BREED", 15.0)
	viper.SetDefault("MATCH_WEIGHT_GENDER", 10.0)
	viper.SetDefault("MATCH_WEIGHT_AGE", 10.0)
	viper.SetDefault("MATCH_WEIGHT_SIZE", 5.0)
	viper.SetDefault("MATCH_WEIGHT_COLOR", 5.0)
	viper.SetDefault("MATCH_WEIGHT_PEDIGREE", 5.0)
	viper.SetDefault("MATCH_WEIGHT_VACCINATED", 5.0)
	viper.SetDefault("MATCH_WEIGHT_PASSPORT", 5.0)

	viper.SetDefault("MATCH_LOCATION_BOOST", 0.2)
	viper.SetDefault("MATCH_INTERACTION_BOOST", 0.1)
	viper.SetDefault("MATCH_CANDIDATE_POOL_SIZE", 100)
	viper.SetDefault("MATCH_DEFAULT_LIMIT", 20)
	viper.SetDefault("MATCH_DEFAULT_MAX_DISTANCE_KM", 50)
	viper.SetDefault("MATCH_SCORE_RETENTION", 7*24*time.Hour)
	viper.SetDefault("RECOMMENDATION_REPEAT_WINDOW", 24*time.Hour)
	viper.SetDefault("RECOMMENDATION_CACHE_TTL", 5*time.Minute)

	viper.SetDefault("LOSTFOUND_WEIGHT_BREED", 0.3)
	viper.SetDefault("LOSTFOUND_WEIGHT_COLOR", 0.2)
	viper.SetDefault("LOSTFOUND_WEIGHT_FEATURES", 0.3)
	viper.SetDefault("LOSTFOUND_WEIGHT_PROXIMITY", 0.2)
	viper.SetDefault("LOSTFOUND_SEARCH_RADIUS_KM", 50.0)
	viper.SetDefault("LOSTFOUND_RECENCY_WINDOW", 90*24*time.Hour)
	viper.SetDefault("LOSTFOUND_MIN_SCORE", 0.3)
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Matching.CandidatePoolSize <= 0 {
		return fmt.Errorf("candidate pool size must be positive")
	}
	if c.Matching.DefaultMaxDistanceKm <= 0 {
		return fmt.Errorf("default max distance must be positive")
	}
	if c.Matching.LostFound.SearchRadiusKm <= 0 {
		return fmt.Errorf("lost-found search radius must be positive")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
