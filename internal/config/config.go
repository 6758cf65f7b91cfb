package config

import (
	"log"
	"os"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string
	// StrictImageBounds turns on the min/max resolution and file-size checks
	// before normalization. Off by default.
	StrictImageBounds bool
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "techmart.db" // sqlite file in project root
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./techmart.log"
	}
	strict := os.Getenv("STRICT_IMAGE_BOUNDS") == "1"

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, LogFile: logFile, StrictImageBounds: strict}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s STRICT_IMAGE_BOUNDS=%v",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.StrictImageBounds)
	return cfg
}
