package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly
// durations ("30s", "1h").
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		HashKey        string   `json:"hash_key"`
		PlayerIDPrefix string   `json:"player_id_prefix"`
		ResetTokenTTL  Duration `json:"reset_token_ttl"`
		ResetURL       string   `json:"reset_url"`
		BcryptCost     int      `json:"bcrypt_cost"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			ArtifactDir string `json:"artifact_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		MailerAddress string   `json:"mailer_address"`
		MailerFrom    string   `json:"mailer_from"`
		MailerTimeout Duration `json:"mailer_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		PoolSize           int      `json:"pool_size"`
		QueueSize          int      `json:"queue_size"`
		ResetSweepInterval Duration `json:"reset_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.App.TokenDuration),
			HashKey:        jsonCfg.App.HashKey,
			PlayerIDPrefix: jsonCfg.App.PlayerIDPrefix,
			ResetTokenTTL:  time.Duration(jsonCfg.App.ResetTokenTTL),
			ResetURL:       jsonCfg.App.ResetURL,
			BcryptCost:     jsonCfg.App.BcryptCost,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				ArtifactDir: jsonCfg.Storage.Files.ArtifactDir,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			MailerAddress: jsonCfg.Adapter.MailerAddress,
			MailerFrom:    jsonCfg.Adapter.MailerFrom,
			MailerTimeout: time.Duration(jsonCfg.Adapter.MailerTimeout),
		},
		Workers: Workers{
			PoolSize:           jsonCfg.Workers.PoolSize,
			QueueSize:          jsonCfg.Workers.QueueSize,
			ResetSweepInterval: time.Duration(jsonCfg.Workers.ResetSweepInterval),
		},
	}

	return cfg, nil
}

// Duration accepts either a Go duration string or a number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
