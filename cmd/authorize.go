package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"follower-tracker/feature/followers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// authorizeCmd runs the OAuth 2.0 consent flow and stores the credential.
var authorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Authorize the tracker against the Twitter API",
	Long: `Prints a consent URL, waits for the redirect URL (or code) to be pasted
back and stores the resulting credential. Any cached credential is replaced.`,
	Args: cobra.NoArgs,
	RunE: runAuthorize,
}

func init() {
	RootCmd.AddCommand(authorizeCmd)
}

func runAuthorize(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, false, true)
	if err != nil {
		return err
	}
	defer a.close()

	cred, err := a.client.Authorize(ctx)
	if err != nil {
		return err
	}
	if err := a.tokens.Put(ctx, cred); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	fields := []zap.Field{zap.String("name", followers.DefaultCredentialName)}
	if cred.Expiry != nil {
		fields = append(fields, zap.Time("expiry", *cred.Expiry))
	}
	a.logger.Info("Credential stored", fields...)
	return nil
}
