package config

import (
	"reflect"
	"strings"

	"sales-reconciler/core/database"
	"sales-reconciler/core/domain"
	"sales-reconciler/core/logger"
	"sales-reconciler/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SourceConfig identifies one of the two analytics sources.
type SourceConfig struct {
	// Name is the logical source name used in batch tags, merge priorities,
	// and reconciliation reports.
	Name string `mapstructure:"name" default:"mysql"`
	// Database is the connection configuration for this source.
	Database database.Config `mapstructure:"database"`
}

// MergeConfig controls deduplication and null handling during the merge stage.
type MergeConfig struct {
	// Priority is the comma-separated source order applied to every entity
	// type; the first listed source wins identifier collisions.
	Priority string `mapstructure:"priority" default:"mysql,postgres"`
	// CustomerPriority overrides Priority for customer records.
	CustomerPriority string `mapstructure:"customer_priority" default:""`
	// ProductPriority overrides Priority for product records.
	ProductPriority string `mapstructure:"product_priority" default:""`
	// SalePriority overrides Priority for sale records.
	SalePriority string `mapstructure:"sale_priority" default:""`
}

// PriorityFor returns the source priority order for an entity type, highest
// priority first.
func (m MergeConfig) PriorityFor(entity domain.EntityType) []string {
	order := m.Priority
	switch entity {
	case domain.EntityCustomer:
		if m.CustomerPriority != "" {
			order = m.CustomerPriority
		}
	case domain.EntityProduct:
		if m.ProductPriority != "" {
			order = m.ProductPriority
		}
	case domain.EntitySale:
		if m.SalePriority != "" {
			order = m.SalePriority
		}
	}

	parts := strings.Split(order, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig controls the validation battery.
type ValidateConfig struct {
	// JoinQualityThreshold is the minimum acceptable ratio of successfully
	// joined sales to total raw sales.
	JoinQualityThreshold float64 `mapstructure:"join_quality_threshold" default:"0.95"`
}

// ReportConfig controls where run artifacts are written.
type ReportConfig struct {
	// OutputDir is the local directory report artifacts are written to.
	OutputDir string `mapstructure:"output_dir" default:"./out"`
	// Upload enables publishing artifacts to object storage after writing.
	Upload bool `mapstructure:"upload" default:"false"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// SourceA is the first analytics source (MySQL by default).
	SourceA SourceConfig `mapstructure:"source_a"`
	// SourceB is the second analytics source (PostgreSQL by default).
	SourceB SourceConfig `mapstructure:"source_b"`
	// Storage holds configuration for report artifact storage (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Merge holds deduplication and null-policy settings.
	Merge MergeConfig `mapstructure:"merge"`
	// Validate holds validation battery settings.
	Validate ValidateConfig `mapstructure:"validate"`
	// Report holds artifact output settings.
	Report ReportConfig `mapstructure:"report"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// The shared struct defaults describe source A; source B defaults to the
	// Postgres replica.
	v.SetDefault("source_b.name", "postgres")
	v.SetDefault("source_b.database.driver", "postgres")
	v.SetDefault("source_b.database.port", "5432")

	// Map environment variables to nested keys (e.g. SOURCE_A_DATABASE_HOST -> source_a.database.host)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
