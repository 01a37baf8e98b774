package face

import "fmt"

// Config sizes the buffers and decode scratch of a Face.
// All storage is allocated once by NewFace.
type Config struct {
	// Maximum datagrams processed by one Loop call
	ReceiveMax int `yaml:"receive_max"`
	// Size of the receive buffer
	InbufSize int `yaml:"inbuf_size"`
	// Size of the transmit buffer
	OutbufSize int `yaml:"outbuf_size"`
	// Capacity of decoded packet names
	NameCompsMax int `yaml:"name_comps_max"`
	// Capacity of decoded Exclude selectors
	ExcludeMax int `yaml:"exclude_max"`
	// Capacity of decoded KeyLocator names
	KeyNameCompsMax int `yaml:"keyname_comps_max"`
}

func DefaultConfig() *Config {
	return &Config{
		ReceiveMax:      20,
		InbufSize:       1500,
		OutbufSize:      1500,
		NameCompsMax:    24,
		ExcludeMax:      4,
		KeyNameCompsMax: 24,
	}
}

// Validate rejects non-positive sizes.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name string
		val  int
	}{
		{"receive_max", c.ReceiveMax},
		{"inbuf_size", c.InbufSize},
		{"outbuf_size", c.OutbufSize},
		{"name_comps_max", c.NameCompsMax},
		{"exclude_max", c.ExcludeMax},
		{"keyname_comps_max", c.KeyNameCompsMax},
	} {
		if f.val <= 0 {
			return fmt.Errorf("face config: %s must be positive, got %d", f.name, f.val)
		}
	}
	return nil
}
