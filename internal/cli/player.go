package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerGameCmd())
	cmd.AddCommand(newPlayerDeleteCmd())
	cmd.AddCommand(newPlayerWhoamiCmd())

	return cmd
}

func newPlayerRegisterCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new player and save its ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			req := map[string]string{"display_name": name}
			var result RegisteredPlayer

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			creds := Credentials{
				PrivateID:   result.PrivateID,
				PublicID:    result.PublicID,
				DisplayName: result.DisplayName,
			}
			if err := cfg.SaveCredentials(creds); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active players in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [publicId]",
		Short: "Get a player (defaults to the saved player)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			publicID, err := publicIDArg(args)
			if err != nil {
				return err
			}

			var result Player
			if err := client.Get(fmt.Sprintf("/api/v1/players/%s", publicID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game [publicId]",
		Short: "Show the game a player is in (defaults to the saved player)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			publicID, err := publicIDArg(args)
			if err != nil {
				return err
			}

			var result Game
			if err := client.Get(fmt.Sprintf("/api/v1/players/%s/game", publicID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Unregister the saved player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			publicID, err := cfg.RequirePublicID()
			if err != nil {
				return err
			}

			if err := client.Delete(fmt.Sprintf("/api/v1/players/%s", publicID)); err != nil {
				return err
			}

			if err := cfg.ClearCredentials(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player deleted")
			return nil
		},
	}
}

func newPlayerWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cfg.RequirePublicID(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(Player{
				PublicID:    cfg.Credentials.PublicID,
				DisplayName: cfg.Credentials.DisplayName,
			})
			return nil
		},
	}
}

// publicIDArg returns the first argument or the saved player's public id
func publicIDArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return cfg.RequirePublicID()
}
