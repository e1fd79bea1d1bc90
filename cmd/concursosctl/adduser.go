package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	bundb "github.com/padraicbc/concursos/db"
	"github.com/padraicbc/concursos/services"
)

func newAddUserCmd(e *env) *cobra.Command {
	var in services.UserInput
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a local user or replace the password and profile of an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Username == "" || in.Password == "" {
				return errors.New("both --username and --password are required")
			}

			db, err := e.open()
			if err != nil {
				return err
			}
			defer db.Close()

			svc := services.New(bundb.NewStore(db), nil, services.Options{Logger: e.logger})
			u, err := svc.Users.Save(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %q saved (role %s)\n", u.Username, u.Role)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Username, "username", "", "username (required)")
	f.StringVar(&in.Password, "password", "", "plain-text password (required)")
	f.StringVar(&in.Role, "role", "", "role claim, e.g. admin (default USER)")
	f.StringVar(&in.Nombre, "name", "", "display name")
	f.StringVar(&in.Email, "email", "", "email address")
	return cmd
}
