package servo

import (
	"encoding/json"
	"os"
	"time"
)

const DefaultConfigFile = "herkulex.json"

// FileConfig is the persisted bus setup, written by servo-scan and
// read by the other tools.
type FileConfig struct {
	Port        string         `json:"port"`
	Baud        int            `json:"baud,omitempty"`
	TimeoutMS   int            `json:"timeout_ms,omitempty"`
	ServoIDs    []byte         `json:"servo_ids,omitempty"`
	Calibration CalibrationSet `json:"calibration,omitempty"`
}

// IsCalibrated returns true if the config carries calibration data.
func (c *FileConfig) IsCalibrated() bool {
	return len(c.Calibration) > 0
}

// BusConfig converts the persisted form into an Open configuration.
func (c *FileConfig) BusConfig() Config {
	cfg := Config{Port: c.Port, Baud: c.Baud}
	if c.TimeoutMS > 0 {
		cfg.Timeout = time.Duration(c.TimeoutMS) * time.Millisecond
	}
	return cfg
}

// LoadConfig loads configuration from the default config file.
func LoadConfig() (*FileConfig, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file.
func LoadConfigFrom(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves configuration to the default config file.
func (c *FileConfig) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file.
func (c *FileConfig) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists.
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
