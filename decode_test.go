// FILE: treeline/config/decode_test.go
package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeSection tests struct decoding of sections
func TestDecodeSection(t *testing.T) {
	s := storeFromTree(t, Tree{
		"server": Tree{
			"host":    "example.com",
			"port":    9000,
			"timeout": "30s",
			"tags":    "primary,replica",
			"tls": Tree{
				"cert": "/path/cert.pem",
			},
		},
	})

	type TLSConfig struct {
		Cert string `yaml:"cert"`
	}
	type ServerConfig struct {
		Host    string        `yaml:"host"`
		Port    int           `yaml:"port"`
		Timeout time.Duration `yaml:"timeout"`
		Tags    []string      `yaml:"tags"`
		TLS     TLSConfig     `yaml:"tls"`
	}

	t.Run("Decode", func(t *testing.T) {
		var cfg ServerConfig
		require.NoError(t, s.DecodeSection("server", &cfg))

		assert.Equal(t, "example.com", cfg.Host)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, []string{"primary", "replica"}, cfg.Tags)
		assert.Equal(t, "/path/cert.pem", cfg.TLS.Cert)
	})

	t.Run("WholeTree", func(t *testing.T) {
		var all struct {
			Server ServerConfig `yaml:"server"`
		}
		require.NoError(t, s.DecodeSection("", &all))
		assert.Equal(t, "example.com", all.Server.Host)
	})

	t.Run("MissingSection", func(t *testing.T) {
		var cfg ServerConfig
		err := s.DecodeSection("no.such", &cfg)
		assert.ErrorIs(t, err, ErrSectionNotFound)
	})

	t.Run("NonPointerTarget", func(t *testing.T) {
		var cfg ServerConfig
		assert.Error(t, s.DecodeSection("server", cfg))
	})

	t.Run("CustomTagName", func(t *testing.T) {
		s2, err := New(FromTree(Tree{"db": Tree{"max_connections": 10}}), WithTagName("toml"))
		require.NoError(t, err)

		var cfg struct {
			MaxConns int `toml:"max_connections"`
		}
		require.NoError(t, s2.DecodeSection("db", &cfg))
		assert.Equal(t, 10, cfg.MaxConns)
	})
}

// TestTypedAccessors tests conversion rules of the typed getters
func TestTypedAccessors(t *testing.T) {
	s := storeFromTree(t, Tree{
		"vals": Tree{
			"str":      "hello",
			"int":      42,
			"int64":    int64(43),
			"float":    3.5,
			"boolTrue": true,
			"boolStr":  "true",
			"numStr":   "123",
			"num":      json.Number("7"),
			"nil":      nil,
		},
	})

	t.Run("String", func(t *testing.T) {
		v, err := s.String("vals", "str")
		require.NoError(t, err)
		assert.Equal(t, "hello", v)

		v, err = s.String("vals", "int")
		require.NoError(t, err)
		assert.Equal(t, "42", v)

		v, err = s.String("vals", "boolTrue")
		require.NoError(t, err)
		assert.Equal(t, "true", v)

		v, err = s.String("vals", "nil")
		require.NoError(t, err)
		assert.Equal(t, "", v)
	})

	t.Run("Int64", func(t *testing.T) {
		v, err := s.Int64("vals", "int")
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)

		v, err = s.Int64("vals", "numStr")
		require.NoError(t, err)
		assert.Equal(t, int64(123), v)

		v, err = s.Int64("vals", "num")
		require.NoError(t, err)
		assert.Equal(t, int64(7), v)

		v, err = s.Int64("vals", "float")
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)

		_, err = s.Int64("vals", "str")
		assert.Error(t, err)
	})

	t.Run("Bool", func(t *testing.T) {
		v, err := s.Bool("vals", "boolTrue")
		require.NoError(t, err)
		assert.True(t, v)

		v, err = s.Bool("vals", "boolStr")
		require.NoError(t, err)
		assert.True(t, v)

		v, err = s.Bool("vals", "int")
		require.NoError(t, err)
		assert.True(t, v, "non-zero numbers read as true")
	})

	t.Run("Float64", func(t *testing.T) {
		v, err := s.Float64("vals", "float")
		require.NoError(t, err)
		assert.Equal(t, 3.5, v)

		v, err = s.Float64("vals", "int")
		require.NoError(t, err)
		assert.Equal(t, 42.0, v)
	})

	t.Run("MissingKey", func(t *testing.T) {
		_, err := s.String("vals", "absent")
		assert.ErrorIs(t, err, ErrSectionNotFound)

		_, err = s.Int64("no.such", "key")
		assert.ErrorIs(t, err, ErrSectionNotFound)
	})
}
