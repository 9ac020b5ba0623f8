package netlink

import (
	"time"

	"github.com/goccy/go-yaml"
)

type Config struct {
	// ReceiveBufferSize bounds every datagram read off the socket. It
	// must be large enough for the kernel's dump chunks or they'll be
	// truncated.
	ReceiveBufferSize int `yaml:"receiveBufferSize"`

	// ReadTimeoutMs caps the whole receive loop. Zero blocks forever.
	ReadTimeoutMs int `yaml:"readTimeoutMs"`

	// Strict turns malformed input into ErrMalformed instead of a warning.
	Strict bool `yaml:"strict"`
}

var DefaultConfig = Config{
	ReceiveBufferSize: DefaultReceiveBufferSize,
	ReadTimeoutMs:     0,
	Strict:            false,
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := config(DefaultConfig)

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = Config(def)

	return nil
}

func (c *Config) readTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMs) * time.Millisecond
}

func (c *Config) bufferSize() int {
	if c.ReceiveBufferSize < sizeofHeader {
		return DefaultReceiveBufferSize
	}
	return c.ReceiveBufferSize
}
