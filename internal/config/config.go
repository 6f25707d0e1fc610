package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/kelseyhightower/envconfig"
)

// Prefix for every environment variable, e.g. XIANGQI_SERVER_ADDR.
const Prefix = "XIANGQI"

type Server struct {
	Addr        string `split_words:"true" default:":2888"`
	WebDir      string `split_words:"true"`
	MobileDir   string `split_words:"true"`
	OpenBrowser bool   `split_words:"true" default:"false"`
}

type Store struct {
	Backend         string `split_words:"true" default:"file"` // file | mongo | memory
	Dir             string `split_words:"true"`
	MongoURI        string `split_words:"true"`
	MongoDatabase   string `split_words:"true" default:"xiangqi"`
	MongoCollection string `split_words:"true" default:"records"`
}

type Log struct {
	Level   string `split_words:"true" default:"info"`
	Console bool   `split_words:"true" default:"true"`
}

type Configuration struct {
	Server Server
	Store  Store
	Log    Log
}

func Load() (*Configuration, error) {
	var cfg Configuration
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = DefaultRecordDir()
	}
	switch cfg.Store.Backend {
	case "file", "mongo", "memory":
	default:
		return nil, fmt.Errorf("config: unknown store backend %q", cfg.Store.Backend)
	}
	if cfg.Store.Backend == "mongo" && cfg.Store.MongoURI == "" {
		return nil, fmt.Errorf("config: %s_STORE_MONGO_URI is required for the mongo backend", Prefix)
	}
	return &cfg, nil
}

// DefaultRecordDir is $XDG_DATA_HOME/xiangqi/records.
func DefaultRecordDir() string {
	return filepath.Join(xdg.DataHome, "xiangqi", "records")
}
