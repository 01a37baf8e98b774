package tools

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	enc "github.com/JamsawColPH/esp8266ndn/std/encoding"
	"github.com/JamsawColPH/esp8266ndn/std/face"
	"github.com/JamsawColPH/esp8266ndn/std/log"
	"github.com/JamsawColPH/esp8266ndn/std/ndn"
	"github.com/JamsawColPH/esp8266ndn/std/security/key"
	"github.com/JamsawColPH/esp8266ndn/std/utils/toolutils"
)

// Config is the configuration file of the command line tools.
type Config struct {
	Face *face.Config `yaml:"face"`

	Transport struct {
		// Router URI, e.g. udp://127.0.0.1:6363
		Uri string `yaml:"uri"`
	} `yaml:"transport"`

	Log struct {
		// Logging level
		Level string `yaml:"level"`
		// Output log to file
		File string `yaml:"file"`
	} `yaml:"log"`

	Key struct {
		// One of digest, hmac, ec
		Type string `yaml:"type"`
		// Shared secret of an hmac key
		HmacSecret string `yaml:"hmac_secret"`
		// Hex private scalar of an ec key
		EcPrivate string `yaml:"ec_private"`
		// KeyLocator name of an ec key
		Name string `yaml:"name"`
	} `yaml:"key"`
}

func DefaultConfig() *Config {
	c := &Config{Face: face.DefaultConfig()}
	c.Transport.Uri = "udp://127.0.0.1:6363"
	c.Log.Level = "INFO"
	c.Key.Type = "digest"
	return c
}

// CommonFlags are the flags shared by every command.
type CommonFlags struct {
	ConfigFile string
	Router     string
	LogLevel   string
}

var Flags CommonFlags

// LoadConfig reads the configuration file named by flags, if any, and applies
// command line overrides.
func LoadConfig(flags CommonFlags) (*Config, error) {
	c := DefaultConfig()
	if flags.ConfigFile != "" {
		if err := toolutils.ReadYaml(c, flags.ConfigFile); err != nil {
			return nil, err
		}
	}
	if flags.Router != "" {
		c.Transport.Uri = flags.Router
	}
	if flags.LogLevel != "" {
		c.Log.Level = flags.LogLevel
	}
	if c.Face == nil {
		c.Face = face.DefaultConfig()
	}
	if err := c.Face.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetupLogger installs the default logger. The returned closer releases the log file.
func (c *Config) SetupLogger() (io.Closer, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	var w io.WriteCloser = nopCloser{os.Stderr}
	if c.Log.File != "" {
		f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		}
		w = f
	}

	logger := log.NewText(w)
	logger.SetLevel(level)
	log.SetDefault(logger)
	return w, nil
}

// SigningKey makes the key described by the key section.
func (c *Config) SigningKey() (ndn.PrivateKey, error) {
	switch strings.ToLower(c.Key.Type) {
	case "", "digest":
		return key.DigestKey{}, nil
	case "hmac":
		k, err := key.NewHmacKey([]byte(c.Key.HmacSecret))
		if err != nil {
			return nil, err
		}
		return k, nil
	case "ec":
		var name enc.Name
		if c.Key.Name != "" {
			var err error
			if name, err = enc.NameFromStr(c.Key.Name); err != nil {
				return nil, fmt.Errorf("invalid key name: %w", err)
			}
		}
		scalar, err := hex.DecodeString(c.Key.EcPrivate)
		if err != nil {
			return nil, fmt.Errorf("invalid ec_private: %w", err)
		}
		k := key.NewEcPrivateKey(name)
		if err = k.Import(scalar); err != nil {
			return nil, err
		}
		return k, nil
	default:
		return nil, fmt.Errorf("unknown key type %q", c.Key.Type)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
