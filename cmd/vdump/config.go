package main

import (
	"encoding/binary"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// config is the optional configuration file.
//
//	log_level = "warn"
//	host_order = "big"
type config struct {
	LogLevel  string `toml:"log_level"`
	HostOrder string `toml:"host_order"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, errors.Newf("config %s: unknown key %q", path, undec[0].String())
	}
	return cfg, nil
}

func (c config) level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.WarnLevel, nil
	}
	return log.ParseLevel(c.LogLevel)
}

// hostOrder returns the byte order decoded pixels are held in.
func (c config) hostOrder() (binary.ByteOrder, error) {
	switch strings.ToLower(c.HostOrder) {
	case "", "native":
		return binary.NativeEndian, nil
	case "big":
		return binary.BigEndian, nil
	case "little":
		return binary.LittleEndian, nil
	}
	return nil, errors.Newf("unknown host_order %q", c.HostOrder)
}
