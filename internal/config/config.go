package config

import (
	"flag"
	"fmt"
	"io"
	"os"
)

const (
	DefaultPort = 6789
	DefaultRoot = "."
)

type Config struct {
	Port int
	Root string
}

// Load parses command line arguments, without the program name
func Load(name string, args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Port, "port", DefaultPort, "port to listen on")
	fs.StringVar(&cfg.Root, "root", DefaultRoot, "document root to serve files from")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("couldn't use document root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("document root %s is not a directory", c.Root)
	}

	return nil
}
