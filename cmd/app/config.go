package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
)

const EnvPrefix = "HVACSTD_"

type Config struct {
	Standard   string `koanf:"standard"`
	InstanceID string `koanf:"instance_id"`

	Data        DataConfig        `koanf:"data"`
	Log         LogConfig         `koanf:"log"`
	Controllers ControllersConfig `koanf:"controllers"`
	Mongo       MongoConfig       `koanf:"mongo"`

	Requirements RequirementsConfig `koanf:"requirements"`
	Weather      WeatherConfig      `koanf:"weather"`
}

// DataConfig selects the reference data. An S3 bucket wins over a local
// path, and with neither the bundled data is used.
type DataConfig struct {
	Path     string `koanf:"path"`
	S3Bucket string `koanf:"s3_bucket"`
	S3Key    string `koanf:"s3_key"`
	Region   string `koanf:"region"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

type ControllersConfig struct {
	HTTP HTTPConfig `koanf:"http"`
	MQTT MQTTConfig `koanf:"mqtt"`
}

type HTTPConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

type MQTTConfig struct {
	Enabled        bool          `koanf:"enabled"`
	BrokerURL      string        `koanf:"broker_url"`
	ClientID       string        `koanf:"client_id"`
	BaseTopic      string        `koanf:"base_topic"`
	QoS            byte          `koanf:"qos"`
	Retain         bool          `koanf:"retain"`
	StatusInterval time.Duration `koanf:"status_interval"`
	Username       string        `koanf:"username"`
	Password       string        `koanf:"password"`
}

type MongoConfig struct {
	Enabled    bool   `koanf:"enabled"`
	URI        string `koanf:"uri"`
	Database   string `koanf:"database"`
	Collection string `koanf:"collection"`
}

// RequirementsConfig lists loop name substrings exempt from a requirement.
type RequirementsConfig struct {
	EconomizerExclusions []string `koanf:"economizer_exclusions"`
	ERVExclusions        []string `koanf:"erv_exclusions"`
}

// WeatherConfig overrides the site design conditions.
type WeatherConfig struct {
	HeatingDesignTemperature *float64 `koanf:"heating_design_temperature"`
}

// HeatingDesign implements ports.WeatherData.
type HeatingDesign struct {
	t *float64
}

func (h HeatingDesign) HeatingDesignTemperature() model.Optional[float64] {
	if h.t == nil {
		return model.None[float64]()
	}
	return model.Some(*h.t)
}

func (w WeatherConfig) Data() HeatingDesign { return HeatingDesign{t: w.HeatingDesignTemperature} }

func defaults() Config {
	return Config{
		Standard:   "NECB2011",
		InstanceID: "default",
		Log:        LogConfig{Level: "info"},
		Controllers: ControllersConfig{
			HTTP: HTTPConfig{Enabled: true, Addr: ":8080"},
			MQTT: MQTTConfig{StatusInterval: 30 * time.Second},
		},
		Mongo: MongoConfig{Database: "hvacstd", Collection: "reports"},
	}
}

// LoadConfig merges defaults, the optional file at path and HVACSTD_*
// environment variables, in that order. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return Config{}, err
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKeyTransform(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

var (
	// sections whose first two tokens are path segments
	twoLevelSections = map[string]bool{"controllers": true}
	// sections whose first token is a path segment
	oneLevelSections = map[string]bool{
		"data":         true,
		"log":          true,
		"mongo":        true,
		"requirements": true,
		"weather":      true,
	}
)

// envKeyTransform maps an unprefixed environment key to a config path:
// CONTROLLERS_HTTP_ADDR becomes controllers.http.addr and DATA_S3_BUCKET
// becomes data.s3_bucket.
func envKeyTransform(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	if k == "" {
		return ""
	}
	parts := strings.Split(k, "_")

	if twoLevelSections[parts[0]] && len(parts) >= 3 {
		return parts[0] + "." + parts[1] + "." + strings.Join(parts[2:], "_")
	}
	if oneLevelSections[parts[0]] && len(parts) >= 2 {
		return parts[0] + "." + strings.Join(parts[1:], "_")
	}
	return k
}

func (c Config) Validate() error {
	var errs []error
	if c.Standard == "" {
		errs = append(errs, errors.New("standard is required"))
	}
	if c.Controllers.MQTT.QoS > 1 {
		errs = append(errs, errors.New("controllers.mqtt.qos must be 0 or 1"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Mongo.Enabled && c.Mongo.URI == "" {
		errs = append(errs, errors.New("mongo.uri is required when mongo is enabled"))
	}
	if c.Data.S3Bucket != "" && c.Data.S3Key == "" {
		errs = append(errs, errors.New("data.s3_key is required with data.s3_bucket"))
	}
	return errors.Join(errs...)
}
