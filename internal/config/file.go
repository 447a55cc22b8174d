package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v3"
)

// fileConfig is the on-disk shape. Unknown keys are rejected.
type fileConfig struct {
	Strategy string `json:"strategy"`
	Today    string `json:"today"`

	Log struct {
		Level   string `json:"level"`
		File    string `json:"file"`
		Console *bool  `json:"console"`
	} `json:"log"`

	Quotes struct {
		URL        string `json:"url"`
		Timeout    string `json:"timeout"`
		RatePerSec int    `json:"rate_per_sec"`
	} `json:"quotes"`

	HTTP struct {
		Addr string `json:"addr"`
	} `json:"http"`

	SFTP struct {
		Host                  string `json:"host"`
		Port                  int    `json:"port"`
		User                  string `json:"user"`
		Pass                  string `json:"pass"`
		Dir                   string `json:"dir"`
		KnownHosts            string `json:"known_hosts"`
		InsecureIgnoreHostKey *bool  `json:"insecure_ignore_host_key"`
	} `json:"sftp"`
}

// LoadFile reads a YAML or JSON config file, then lets the environment
// override it. An empty path behaves like Load.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		fc, err := parseFile(path, b)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		if err := fc.merge(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func parseFile(path string, data []byte) (fileConfig, error) {
	jb, err := coerceToJSONBytes(path, data)
	if err != nil {
		return fileConfig{}, err
	}

	var fc fileConfig
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fileConfig{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fileConfig{}, fmt.Errorf("trailing data")
		}
		return fileConfig{}, err
	}
	return fc, nil
}

func (fc fileConfig) merge(cfg *Config) error {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&cfg.Strategy, fc.Strategy)
	set(&cfg.Today, fc.Today)

	set(&cfg.LogLevel, fc.Log.Level)
	set(&cfg.LogFile, fc.Log.File)
	if fc.Log.Console != nil {
		cfg.LogConsole = *fc.Log.Console
	}

	set(&cfg.QuoteURL, fc.Quotes.URL)
	d, err := ParseDurationOrDefault("quotes.timeout", fc.Quotes.Timeout, cfg.QuoteTimeout)
	if err != nil {
		return err
	}
	cfg.QuoteTimeout = d
	if fc.Quotes.RatePerSec > 0 {
		cfg.QuoteRatePerSec = fc.Quotes.RatePerSec
	}

	set(&cfg.HTTPAddr, fc.HTTP.Addr)

	set(&cfg.SFTPHost, fc.SFTP.Host)
	if fc.SFTP.Port > 0 {
		cfg.SFTPPort = fc.SFTP.Port
	}
	set(&cfg.SFTPUser, fc.SFTP.User)
	set(&cfg.SFTPPass, fc.SFTP.Pass)
	set(&cfg.SFTPDir, fc.SFTP.Dir)
	set(&cfg.SFTPKnownHosts, fc.SFTP.KnownHosts)
	if fc.SFTP.InsecureIgnoreHostKey != nil {
		cfg.SFTPInsecureIgnoreHostKey = *fc.SFTP.InsecureIgnoreHostKey
	}
	return nil
}

// coerceToJSONBytes converts YAML to JSON so both formats share the strict decoder.
func coerceToJSONBytes(path string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return data, nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if v == nil {
		return []byte("{}"), nil
	}
	j, err := json.Marshal(normalizeYAML(v))
	if err != nil {
		return nil, fmt.Errorf("yaml->json marshal: %w", err)
	}
	return j, nil
}

// normalizeYAML makes every map key a string so the value can be JSON-marshaled.
func normalizeYAML(in any) any {
	switch x := in.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[k] = normalizeYAML(v)
		}
		return m
	case []any:
		for i := range x {
			x[i] = normalizeYAML(x[i])
		}
		return x
	default:
		return in
	}
}

func ParseDurationOrDefault(path, raw string, def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", path)
	}
	if d == 0 {
		return def, nil
	}
	return d, nil
}
