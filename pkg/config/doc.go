// Package config loads the feature toggle settings from the process
// environment, optionally seeded from .env files.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. Every
// variable carries the FEATURETOGGLE_ prefix:
//
//	FEATURETOGGLE_ENV=production
//	FEATURETOGGLE_SERVICE=checkout
//	FEATURETOGGLE_SHOW_LOGS=true
//	FEATURETOGGLE_LOG_LEVEL=debug
//	FEATURETOGGLE_LOG_FORMAT=json
//	FEATURETOGGLE_RULES_FILE=/etc/featuretoggle/rules.yaml
//	FEATURETOGGLE_FEATURES=beta=true,checkout#b=false
//	FEATURETOGGLE_METRICS_NAMESPACE=checkout
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	log := cfg.Logger(os.Stderr)
//	engine, err := feature.New(initial, cfg.EngineOptions(log, prometheus.DefaultRegisterer)...)
package config
