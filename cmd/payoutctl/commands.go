package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/app"
	"github.com/GlebRadaev/payoutengine/internal/config"
	"github.com/GlebRadaev/payoutengine/internal/dto"
	"github.com/GlebRadaev/payoutengine/pkg/auth"
	"github.com/GlebRadaev/payoutengine/pkg/logger"
)

func settleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle <promoterID>",
		Short: "Pay out a promoter's PENDING commissions if the merchant policy says they are due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.Application) error {
				result, err := a.Services().PayoutService.EvaluateAndSettle(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.NewSettleResponse(result))
			})
		},
	}
}

func retryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <payoutID>",
		Short: "Send a FAILED payout to the transfer provider again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.Application) error {
				status, err := a.Services().PayoutService.RetryFailed(ctx, args[0])
				if status != "" {
					if perr := printJSON(cmd.OutOrStdout(), dto.RetryResponseDTO{PayoutID: args[0], Status: string(status)}); perr != nil {
						return perr
					}
				}
				return err
			})
		},
	}
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Recover stale payouts and settle every due promoter once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.Application) error {
				defer a.Scheduler().Close()
				return printJSON(cmd.OutOrStdout(), a.Scheduler().Sweep(ctx))
			})
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <promoterID>",
		Short: "List a promoter's payout records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.Application) error {
				records, err := a.Services().PayoutService.ListPayouts(ctx, args[0])
				if err != nil {
					return err
				}
				response := make([]dto.PayoutResponseDTO, 0, len(records))
				for _, rec := range records {
					response = append(response, dto.NewPayoutResponse(rec))
				}
				return printJSON(cmd.OutOrStdout(), response)
			})
		},
	}
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <operator>",
		Short: "Issue a bearer token for the payout API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			ttl, _ := cmd.Flags().GetDuration("ttl")
			token, err := auth.NewJWTService(cfg.JWTSecret).GenerateJWT(args[0], time.Now().Add(ttl))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.Application) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	ctx := cmd.Context()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			zap.L().Warn("failed to release resources", zap.Error(err))
		}
	}()
	return fn(ctx, a)
}

// loadConfig reads the environment and applies the logging flags. Logs go
// to stderr unless redirected, since stdout carries the JSON result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLvl = lvl
	}
	switch out, _ := cmd.Flags().GetString("log-output"); {
	case out != "":
		cfg.LogOutput = out
	case cfg.LogOutput == "" || cfg.LogOutput == "stdout":
		cfg.LogOutput = "stderr"
	}
	return cfg, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
