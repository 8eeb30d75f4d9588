package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bnema/link-portal-cli/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".link-portal"
	envPrefix  = "LP"

	DefaultRPCURL            = "https://api.devnet.solana.com"
	DefaultCommitment        = "processed"
	DefaultAppendInstruction = "add_gif"
	DefaultAccountType       = "BaseAccount"
	DefaultWalletName        = "default"
	DefaultOrigin            = "link-portal"
)

var endpointPattern = regexp.MustCompile(`^https?://[^\s]+$`)

var commitments = []interface{}{"processed", "confirmed", "finalized"}

// Config is the resolved configuration of one lp invocation.
type Config struct {
	RPC     RPCConfig
	Program ProgramConfig
	Target  TargetConfig
	Wallet  WalletConfig
	Trust   TrustConfig
	Log     LogConfig
}

type RPCConfig struct {
	URL            string
	Timeout        time.Duration
	Commitment     string
	Rate           float64
	Burst          int
	ConfirmTimeout time.Duration
}

func (c *RPCConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required, validation.Match(endpointPattern).Error("must be an http(s) URL")),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.Commitment, validation.Required, validation.In(commitments...)),
		validation.Field(&c.Rate, validation.Min(0.0)),
		validation.Field(&c.Burst, validation.Min(1)),
		validation.Field(&c.ConfirmTimeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

type ProgramConfig struct {
	ID                string
	AppendInstruction string
	AccountType       string
}

func (c *ProgramConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required.Error("program.id is required"), validation.By(identityRule)),
		validation.Field(&c.AppendInstruction, validation.Required),
		validation.Field(&c.AccountType, validation.Required),
	)
}

// TargetConfig names the shared record. Keypair, when set, also lets this
// client co-sign the record's creation.
type TargetConfig struct {
	Account string
	Keypair string
}

func (c *TargetConfig) Validate() error {
	if c.Account == "" && c.Keypair == "" {
		return errors.New("target: one of target.account or target.keypair is required")
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Account, validation.By(identityRule)),
	)
}

type WalletConfig struct {
	Dir        string
	Name       string
	Passphrase string
	Origin     string
}

func (c *WalletConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Origin, validation.Required),
	)
}

type TrustConfig struct {
	Path string
}

func (c *TrustConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

type LogConfig struct {
	Level string
}

func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
	)
}

func (c *LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) Validate() error {
	if err := c.RPC.Validate(); err != nil {
		return fmt.Errorf("rpc: %w", err)
	}
	if err := c.Program.Validate(); err != nil {
		return fmt.Errorf("program: %w", err)
	}
	if err := c.Target.Validate(); err != nil {
		return err
	}
	if err := c.Wallet.Validate(); err != nil {
		return fmt.Errorf("wallet: %w", err)
	}
	if err := c.Trust.Validate(); err != nil {
		return fmt.Errorf("trust: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Deployment returns the deployment constants. TargetAccount is left zero
// when only a target keypair is configured; the caller fills it from the
// keypair's public key.
func (c *Config) Deployment() (domain.Deployment, error) {
	programID, err := domain.ParseIdentity(c.Program.ID)
	if err != nil {
		return domain.Deployment{}, fmt.Errorf("parse program id: %w", err)
	}

	deployment := domain.Deployment{ProgramID: programID, Endpoint: c.RPC.URL}
	if c.Target.Account != "" {
		target, err := domain.ParseIdentity(c.Target.Account)
		if err != nil {
			return domain.Deployment{}, fmt.Errorf("parse target account: %w", err)
		}
		deployment.TargetAccount = target
	}

	return deployment, nil
}

// Load reads ~/.link-portal/config.toml (a missing file is fine) and LP_*
// environment overrides into a validated Config.
func Load(cfg *viper.Viper) (*Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(baseDir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	setDefaults(cfg, baseDir)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	out := &Config{
		RPC: RPCConfig{
			URL:            cfg.GetString("rpc.url"),
			Timeout:        cfg.GetDuration("rpc.timeout"),
			Commitment:     cfg.GetString("rpc.commitment"),
			Rate:           cfg.GetFloat64("rpc.rate"),
			Burst:          cfg.GetInt("rpc.burst"),
			ConfirmTimeout: cfg.GetDuration("rpc.confirm_timeout"),
		},
		Program: ProgramConfig{
			ID:                strings.TrimSpace(cfg.GetString("program.id")),
			AppendInstruction: cfg.GetString("program.append_instruction"),
			AccountType:       cfg.GetString("program.account_type"),
		},
		Target: TargetConfig{
			Account: strings.TrimSpace(cfg.GetString("target.account")),
			Keypair: expandHome(cfg.GetString("target.keypair"), homeDir),
		},
		Wallet: WalletConfig{
			Dir:        expandHome(cfg.GetString("wallet.dir"), homeDir),
			Name:       cfg.GetString("wallet.name"),
			Passphrase: cfg.GetString("wallet.passphrase"),
			Origin:     cfg.GetString("wallet.origin"),
		},
		Trust: TrustConfig{Path: expandHome(cfg.GetString("trust.path"), homeDir)},
		Log:   LogConfig{Level: strings.ToLower(cfg.GetString("log.level"))},
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return out, nil
}

func setDefaults(cfg *viper.Viper, baseDir string) {
	cfg.SetDefault("rpc.url", DefaultRPCURL)
	cfg.SetDefault("rpc.timeout", 30*time.Second)
	cfg.SetDefault("rpc.commitment", DefaultCommitment)
	cfg.SetDefault("rpc.rate", 8.0)
	cfg.SetDefault("rpc.burst", 4)
	cfg.SetDefault("rpc.confirm_timeout", 60*time.Second)
	cfg.SetDefault("program.id", "")
	cfg.SetDefault("program.append_instruction", DefaultAppendInstruction)
	cfg.SetDefault("program.account_type", DefaultAccountType)
	cfg.SetDefault("target.account", "")
	cfg.SetDefault("target.keypair", "")
	cfg.SetDefault("wallet.dir", filepath.Join(baseDir, "wallet"))
	cfg.SetDefault("wallet.name", DefaultWalletName)
	cfg.SetDefault("wallet.passphrase", "")
	cfg.SetDefault("wallet.origin", DefaultOrigin)
	cfg.SetDefault("trust.path", filepath.Join(baseDir, "trusted.toml"))
	cfg.SetDefault("log.level", "info")
}

func identityRule(value interface{}) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	if _, err := domain.ParseIdentity(raw); err != nil {
		return errors.New("must be a base58 encoded 32-byte key")
	}
	return nil
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
