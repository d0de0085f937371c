package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	registerPassword string
	registerConfirm  string

	registerCmd = &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegister,
	}
)

func init() {
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm", "", "password, repeated")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("confirm")
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	gate, err := a.authGate(cfg)
	if err != nil {
		return err
	}

	user, err := gate.Register(ctx, args[0], registerPassword, registerConfirm)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", user.Username)
	return nil
}
