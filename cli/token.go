// file: cli/token.go
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"civil-quest-admin/auth"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Work with API session tokens",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "inspect <jwt>",
		Short: "Decode a token the way the dashboard's session gate does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectToken(cmd, args[0], time.Now())
		},
	})
	return cmd
}

func inspectToken(cmd *cobra.Command, token string, now time.Time) error {
	claims, err := auth.Decode(token, now)
	expired := errors.Is(err, auth.ErrTokenExpired)
	if err != nil && !expired {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Subject:  %s\n", claims.Subject)
	fmt.Fprintf(out, "Name:     %s\n", claims.Name)
	fmt.Fprintf(out, "Role:     %s (%s)\n", claims.Role, roleNote(claims))
	fmt.Fprintf(out, "Province: %s\n", claims.Province)
	fmt.Fprintf(out, "Expires:  %s\n", claims.ExpiresAt.Format(time.RFC3339))
	fmt.Fprintf(out, "Expired:  %t\n", expired)
	for _, item := range auth.MenuFor(claims.Role) {
		fmt.Fprintf(out, "  menu %s\n", item.Path)
	}
	return nil
}

func roleNote(c auth.Claims) string {
	if !c.Role.Valid() {
		return "not allowed to sign in"
	}
	return c.Role.Label()
}
