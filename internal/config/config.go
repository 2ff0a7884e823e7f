// Package config provides application configuration with YAML loading and
// struct-tag defaults.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Storage StorageConfig `yaml:"storage"`
	AI      AIConfig      `yaml:"ai"`
	Logging LoggingConfig `yaml:"logging"`
}

type SiteConfig struct {
	Name   string `yaml:"name" default:"Blogger Pro"`
	Author string `yaml:"author" default:"Jane Preston"`

	// PublicURL is the simulated public address shown on the settings
	// screen. Nothing is actually served there.
	PublicURL string `yaml:"public_url" default:"https://blogger.pro/sim/jane-preston"`
}

type StorageConfig struct {
	// Backend selects the snapshot persistence: file, sqlite or s3.
	Backend string `yaml:"backend" default:"file"`

	Path       string `yaml:"path" default:"bloggerpro.json"`
	SQLitePath string `yaml:"sqlite_path" default:"bloggerpro.db"`

	// Compression applies to the file backend: none, zstd or gzip.
	Compression string `yaml:"compression" default:"none"`

	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint string `yaml:"endpoint" default:""`
	Bucket   string `yaml:"bucket" default:""`
}

type AIConfig struct {
	TextModel  string `yaml:"text_model" default:"gemini-3-flash-preview"`
	ImageModel string `yaml:"image_model" default:"gemini-2.5-flash-image"`
	BaseURL    string `yaml:"base_url" default:"https://generativelanguage.googleapis.com"`

	// APIKeyEnv names the environment variable holding the provider credential.
	APIKeyEnv string `yaml:"api_key_env" default:"GEMINI_API_KEY"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`

	// File receives log output; stderr belongs to the terminal UI.
	File string `yaml:"file" default:"bloggerpro.log"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	AppConfig = config
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
