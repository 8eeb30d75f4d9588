package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bnema/link-portal-cli/internal/adapters/ledger/rpc"
	"github.com/bnema/link-portal-cli/internal/adapters/program"
	sessionrender "github.com/bnema/link-portal-cli/internal/adapters/render/session"
	tomlrepo "github.com/bnema/link-portal-cli/internal/adapters/repo/toml"
	filevault "github.com/bnema/link-portal-cli/internal/adapters/vault/file"
	"github.com/bnema/link-portal-cli/internal/adapters/wallet/keypair"
	"github.com/bnema/link-portal-cli/internal/adapters/wallet/local"
	"github.com/bnema/link-portal-cli/internal/application"
	"github.com/bnema/link-portal-cli/internal/config"
	"github.com/bnema/link-portal-cli/internal/domain"
	"github.com/bnema/link-portal-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose bool
	metrics bool
	yes     bool
}

type app struct {
	config     *config.Config
	deployment domain.Deployment
	controller *application.SessionController
	wallet     *local.Agent
	approver   *local.PromptApprover
	registry   *prometheus.Registry
	logger     *slog.Logger
	renderer   func(domain.Session, sessionrender.RenderOptions) (string, error)
	clock      ports.Clock
}

func wireApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Log.SlogLevel()
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	deployment, err := cfg.Deployment()
	if err != nil {
		return nil, fmt.Errorf("wire deployment: %w", err)
	}

	var targetSigner ports.TransactionSigner
	if cfg.Target.Keypair != "" {
		targetKey, err := keypair.Load(cfg.Target.Keypair)
		if err != nil {
			return nil, fmt.Errorf("wire target keypair: %w", err)
		}
		if !deployment.TargetAccount.IsZero() && deployment.TargetAccount != targetKey.Identity() {
			logger.Warn("target.account differs from target keypair, using keypair",
				slog.String("account", deployment.TargetAccount.String()),
				slog.String("keypair", targetKey.Identity().String()),
			)
		}
		deployment.TargetAccount = targetKey.Identity()
		targetSigner = targetKey
	}
	if err := deployment.Validate(); err != nil {
		return nil, fmt.Errorf("wire deployment: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics, err := rpc.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("wire ledger metrics: %w", err)
	}
	ledger := &rpc.Client{
		Endpoint:       deployment.Endpoint,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.RPC.Timeout,
		Commitment:     cfg.RPC.Commitment,
		ConfirmTimeout: cfg.RPC.ConfirmTimeout,
		Limiter:        rpc.NewLimiter(cfg.RPC.Rate, cfg.RPC.Burst),
		Metrics:        metrics,
		Logger:         logger,
	}

	trust, err := tomlrepo.NewTrustRepository(cfg.Trust.Path)
	if err != nil {
		return nil, fmt.Errorf("wire trust registry: %w", err)
	}
	approver := &local.PromptApprover{
		In:          cmd.InOrStdin(),
		Out:         cmd.ErrOrStderr(),
		AutoApprove: flags.yes,
	}
	clock := ports.SystemClock{}
	wallet := local.NewAgent(filevault.NewVault(cfg.Wallet.Dir), trust, local.Options{
		Name:       cfg.Wallet.Name,
		Origin:     cfg.Wallet.Origin,
		Passphrase: cfg.Wallet.Passphrase,
		Approver:   approver,
		Clock:      clock,
		Logger:     logger,
	})

	programClient := program.NewClient(ledger, wallet, program.Options{
		ProgramID:         deployment.ProgramID,
		AppendInstruction: cfg.Program.AppendInstruction,
		AccountType:       cfg.Program.AccountType,
		TargetSigner:      targetSigner,
		Logger:            logger,
	})

	return &app{
		config:     cfg,
		deployment: deployment,
		controller: application.NewSessionController(deployment, wallet, programClient, clock, logger),
		wallet:     wallet,
		approver:   approver,
		registry:   registry,
		logger:     logger,
		renderer:   sessionrender.Render,
		clock:      clock,
	}, nil
}

// withApp wires a fresh app for one command run and dumps ledger metrics
// afterwards when --metrics is set.
func withApp(flags *globalFlags, run func(cmd *cobra.Command, app *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := wireApp(cmd, flags)
		if err != nil {
			return err
		}

		runErr := run(cmd, app, args)
		if flags.metrics {
			if err := rpc.WriteText(cmd.ErrOrStderr(), app.registry); err != nil {
				return errors.Join(runErr, fmt.Errorf("write metrics: %w", err))
			}
		}
		return runErr
	}
}
