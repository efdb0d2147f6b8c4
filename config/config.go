package config

import (
	"fmt"
	"os"
	"gopkg.in/yaml.v3"

	"stegocoder/stegano/img"
	"stegocoder/util"
)

/*
 * Full configuration of the coder. Every field is optional, missing ones
 * keep the values from Default().
 */
type Config struct {
	Logger		util.LoggerInfo		`yaml:"logger_config"`
	OutputFormat	string			`yaml:"output_format"`		// used when the stego path has no known extension
	VerifyAfterEncode	bool		`yaml:"verify_after_encode"`	// re-read the written image and decode it
	Debug		bool			`yaml:"debug"`
}

func Default() *Config {
	return &Config{
		Logger: util.LoggerInfo{
			Filename: "",
			Password: "",
			IsEncrypted: false,
			IsColored: true,
			SaveTime: false,
			Mode: util.Error | util.Info,
		},
		OutputFormat: string(img.PNG),
		VerifyAfterEncode: true,
		Debug: false,
	}
}

// Format returns the fallback output format, which must be lossless.
func(c *Config) Format() (img.Format, error) {
	f, err := img.ParseFormat( c.OutputFormat )
	if err != nil {
		return img.Unknown, err
	}
	if !f.Lossless() {
		return img.Unknown, fmt.Errorf("%w: output_format %s", img.ErrLossyFormat, f)
	}
	return f, nil
}

func(c *Config) Validate() error {
	if _, err := c.Format(); err != nil {
		return err
	}
	if c.Logger.IsEncrypted {
		if c.Logger.Filename == "" {
			return fmt.Errorf("encrypted logging requires logger_config.filename")
		}
		if c.Logger.Password == "" {
			return fmt.Errorf("encrypted logging requires logger_config.password")
		}
	}
	return nil
}

/*
 * Functions for loading and saving configuration in YAML format.
 */
func LoadConfig( filename string ) (*Config, error) {
	data, err := os.ReadFile( filename )
	if err != nil {
		return nil, err
	}

	conf := Default()
	if err := yaml.Unmarshal( data, conf ); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return conf, nil
}

func SaveConfig( filename string, c *Config ) error {
	data, err := yaml.Marshal( c )
	if err != nil {
		return err
	}
	return os.WriteFile( filename, data, 0600 )
}
