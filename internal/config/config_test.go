package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testProgramID = "Gj6aVNeKmqHFfCN6Tq46dAFvGzVEyrGM2ykVbSFvWj4M"
	testTargetID  = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
)

func TestLoadDefaultsWithMissingConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LP_PROGRAM_ID", testProgramID)
	t.Setenv("LP_TARGET_ACCOUNT", testTargetID)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultRPCURL, cfg.RPC.URL)
	assert.Equal(t, 30*time.Second, cfg.RPC.Timeout)
	assert.Equal(t, "processed", cfg.RPC.Commitment)
	assert.Equal(t, 60*time.Second, cfg.RPC.ConfirmTimeout)
	assert.InDelta(t, 8.0, cfg.RPC.Rate, 0.0001)
	assert.Equal(t, 4, cfg.RPC.Burst)
	assert.Equal(t, "add_gif", cfg.Program.AppendInstruction)
	assert.Equal(t, "BaseAccount", cfg.Program.AccountType)
	assert.Equal(t, filepath.Join(home, ".link-portal", "wallet"), cfg.Wallet.Dir)
	assert.Equal(t, "default", cfg.Wallet.Name)
	assert.Equal(t, "link-portal", cfg.Wallet.Origin)
	assert.Equal(t, filepath.Join(home, ".link-portal", "trusted.toml"), cfg.Trust.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadReadsConfigFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".link-portal"), 0o700))
	content := `
[rpc]
url = "http://127.0.0.1:8899"
timeout = "5s"
commitment = "confirmed"

[program]
id = "` + testProgramID + `"

[target]
keypair = "~/keys/base.json"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(home, ".link-portal", "config.toml"), []byte(content), 0o600))
	t.Setenv("LP_RPC_URL", "http://localhost:9900")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9900", cfg.RPC.URL)
	assert.Equal(t, 5*time.Second, cfg.RPC.Timeout)
	assert.Equal(t, "confirmed", cfg.RPC.Commitment)
	assert.Equal(t, filepath.Join(home, "keys", "base.json"), cfg.Target.Keypair)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "DEBUG", cfg.Log.SlogLevel().String())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing program id",
			env:     map[string]string{"LP_TARGET_ACCOUNT": testTargetID},
			wantErr: "program.id is required",
		},
		{
			name:    "missing target",
			env:     map[string]string{"LP_PROGRAM_ID": testProgramID},
			wantErr: "target.account or target.keypair",
		},
		{
			name:    "bad program id",
			env:     map[string]string{"LP_PROGRAM_ID": "not-base58!", "LP_TARGET_ACCOUNT": testTargetID},
			wantErr: "base58",
		},
		{
			name:    "bad commitment",
			env:     map[string]string{"LP_PROGRAM_ID": testProgramID, "LP_TARGET_ACCOUNT": testTargetID, "LP_RPC_COMMITMENT": "eventually"},
			wantErr: "rpc",
		},
		{
			name:    "bad endpoint",
			env:     map[string]string{"LP_PROGRAM_ID": testProgramID, "LP_TARGET_ACCOUNT": testTargetID, "LP_RPC_URL": "ftp://ledger"},
			wantErr: "http(s) URL",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"LP_PROGRAM_ID": testProgramID, "LP_TARGET_ACCOUNT": testTargetID, "LP_LOG_LEVEL": "loud"},
			wantErr: "log",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			_, err := Load(viper.New())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDeployment(t *testing.T) {
	cfg := &Config{
		RPC:     RPCConfig{URL: "http://127.0.0.1:8899"},
		Program: ProgramConfig{ID: testProgramID},
		Target:  TargetConfig{Account: testTargetID},
	}

	deployment, err := cfg.Deployment()
	require.NoError(t, err)
	assert.Equal(t, domain.MustParseIdentity(testProgramID), deployment.ProgramID)
	assert.Equal(t, domain.MustParseIdentity(testTargetID), deployment.TargetAccount)
	assert.Equal(t, "http://127.0.0.1:8899", deployment.Endpoint)
	require.NoError(t, deployment.Validate())

	cfg.Target = TargetConfig{Keypair: "/tmp/base.json"}
	deployment, err = cfg.Deployment()
	require.NoError(t, err)
	assert.True(t, deployment.TargetAccount.IsZero())
}
