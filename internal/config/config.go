package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	// UDOT feeds.
	UDOTAPIKey    string
	UDOTBaseURL   string
	FeedTimeout   time.Duration
	InterestsFile string

	// Nominatim reverse geocoding.
	NominatimURL       string
	NominatimUserAgent string
	GeocodeTimeout     time.Duration
	GeocodeCacheSize   int
	GeocodeRedisAddr   string
	GeocodeRedisTTL    time.Duration

	// Speech synthesis. Credentials come from GOOGLE_APPLICATION_CREDENTIALS.
	TTSLanguage string
	TTSVoice    string
	TTSGender   string

	// Audio rendering.
	MusicFile        string
	OutputFile       string
	VoiceFile        string
	MusicGainDB      float64
	FadeIn           time.Duration
	FadeOut          time.Duration
	OutputSampleRate int
	TagArtist        string
	TagTitle         string

	// Report policy.
	ReportLocation                 *time.Location
	VehicleWindow                  time.Duration
	PassModerateSuppressesAllClear bool

	// Optional outputs. Empty disables them.
	KafkaBrokers     []string
	KafkaReportTopic string
	PushgatewayURL   string

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where
// unset. Variables in a .env file in the working directory are loaded first
// but never override the real environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		UDOTAPIKey:    os.Getenv("UDOT_API_KEY"),
		UDOTBaseURL:   sharedcfg.EnvOrDefault("UDOT_BASE_URL", "https://www.udottraffic.utah.gov/api/v2/get"),
		InterestsFile: sharedcfg.EnvOrDefault("INTERESTS_FILE", "/etc/radio_weather_report/interests.yaml"),

		NominatimURL:       sharedcfg.EnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org/reverse"),
		NominatimUserAgent: sharedcfg.EnvOrDefault("NOMINATIM_USER_AGENT", "Traffic_Update"),
		GeocodeRedisAddr:   os.Getenv("GEOCODE_REDIS_ADDR"),

		TTSLanguage: sharedcfg.EnvOrDefault("TTS_LANGUAGE", "en-US"),
		TTSVoice:    sharedcfg.EnvOrDefault("TTS_VOICE", "en-US-Neural2-I"),
		TTSGender:   sharedcfg.EnvOrDefault("TTS_GENDER", "MALE"),

		MusicFile:  sharedcfg.EnvOrDefault("MUSIC_FILE", "/etc/radio_weather_report/music.mp3"),
		OutputFile: sharedcfg.EnvOrDefault("OUTPUT_FILE", "traffic_update.mp3"),
		VoiceFile:  sharedcfg.EnvOrDefault("VOICE_FILE", "traffic_report.mp3"),
		TagArtist:  sharedcfg.EnvOrDefault("TAG_ARTIST", "Morgan Valley Radio"),
		TagTitle:   sharedcfg.EnvOrDefault("TAG_TITLE", "Traffic Update"),

		KafkaBrokers:     sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "traffic-reports"),
		PushgatewayURL:   os.Getenv("PUSHGATEWAY_URL"),

		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
		zeroOK   bool
	}{
		{"FEED_TIMEOUT", "10s", &cfg.FeedTimeout, false},
		{"GEOCODE_TIMEOUT", "5s", &cfg.GeocodeTimeout, false},
		{"GEOCODE_REDIS_TTL", "24h", &cfg.GeocodeRedisTTL, false},
		{"FADE_IN", "1s", &cfg.FadeIn, true},
		{"FADE_OUT", "1.5s", &cfg.FadeOut, true},
		{"VEHICLE_WINDOW", "1h", &cfg.VehicleWindow, false},
	}
	for _, d := range durations {
		if *d.dst, err = parseDuration(d.key, d.fallback, d.zeroOK); err != nil {
			return nil, err
		}
	}

	if cfg.GeocodeCacheSize, err = parsePositiveInt("GEOCODE_CACHE_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.OutputSampleRate, err = parsePositiveInt("OUTPUT_SAMPLE_RATE", 44100); err != nil {
		return nil, err
	}
	if cfg.MusicGainDB, err = parseFloat("MUSIC_GAIN_DB", -8); err != nil {
		return nil, err
	}
	if cfg.PassModerateSuppressesAllClear, err = parseBool("PASS_MODERATE_SUPPRESSES_ALL_CLEAR", false); err != nil {
		return nil, err
	}
	if cfg.ReportLocation, err = parseLocation("REPORT_TIMEZONE"); err != nil {
		return nil, err
	}

	if cfg.UDOTAPIKey == "" {
		return nil, errors.New("UDOT_API_KEY is required")
	}
	if cfg.OutputFile == "" {
		return nil, errors.New("OUTPUT_FILE is required")
	}
	if cfg.OutputFile == cfg.VoiceFile {
		return nil, errors.New("VOICE_FILE must differ from OUTPUT_FILE")
	}

	return cfg, nil
}

// PublishEnabled reports whether finished reports are sent to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseDuration(key, fallback string, zeroOK bool) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d < 0 || (d == 0 && !zeroOK) {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return b, nil
}

func parseLocation(key string) (*time.Location, error) {
	name := os.Getenv(key)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return loc, nil
}
