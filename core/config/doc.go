// Package config provides configuration management for the sales reconciler.
//
// It utilizes Viper for loading configuration from environment variables and
// a local .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - SourceA / SourceB: connection details for the two analytics sources
//   - Merge: source priority order and null-policy settings
//   - Validate: validation battery thresholds
//   - Report: artifact output directory and upload toggle
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//
// There is no implicit global connection state: each source's credentials
// live in its own section and are passed explicitly to the extract stage.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.SourceA.Database.Host)
package config
