package main

import (
	"io"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func newUserCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Look up or register users",
	}

	cmd.AddCommand(newUserGetCommand(c), newUserAddCommand(c))
	return cmd
}

func newUserGetCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|email>",
		Short: "Show a user by id or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				user *model.User
				err  error
			)

			if id, convErr := cast.ToIntE(args[0]); convErr == nil {
				user, err = c.app.Services.Users.GetByID(c.ctx, id)
			} else {
				user, err = c.app.Services.Users.GetByEmail(c.ctx, args[0])
			}
			if err != nil {
				return err
			}

			return c.print(user, func(w io.Writer) { writeUser(w, user) })
		},
	}
}

func newUserAddCommand(c *cli) *cobra.Command {
	var input model.NewUser

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.Services.Users.Register(c.ctx, input)
			if err != nil {
				return err
			}

			return c.print(user, func(w io.Writer) { writeUser(w, user) })
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "full name")
	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.Password, "password", "", "plain text password, stored hashed")

	return cmd
}
