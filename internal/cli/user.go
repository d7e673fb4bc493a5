package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"socialfeed/internal/domain"
	"socialfeed/internal/service"
)

// UserAddOptions holds flags for the user add command.
type UserAddOptions struct {
	*RootOptions
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth string
	Telephone   string
	Inactive    bool
}

// NewUserCommand creates the user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage feed users",
	}

	cmd.AddCommand(newUserAddCommand(rootOpts))
	cmd.AddCommand(newUserListCommand(rootOpts))

	return cmd
}

func newUserAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UserAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Long: `Create a user directly in the store.

Example:
  socialfeed user add --first Ada --last Lovelace --email ada@example.com --dob 1815-12-10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := &domain.User{
				FirstName: opts.FirstName,
				LastName:  opts.LastName,
				Email:     opts.Email,
				Telephone: opts.Telephone,
				IsActive:  !opts.Inactive,
			}
			if opts.DateOfBirth != "" {
				dob, err := time.Parse("2006-01-02", opts.DateOfBirth)
				if err != nil {
					return fmt.Errorf("invalid --dob %q: expected YYYY-MM-DD", opts.DateOfBirth)
				}
				user.DateOfBirth = dob
			}

			env, err := setup(opts.RootOptions)
			if err != nil {
				return err
			}
			defer env.Close()

			svc := service.NewUserService(env.store, nil, env.log)
			created, err := svc.CreateUser(cmd.Context(), user)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", created.ID, created.FullName())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.FirstName, "first", "", "first name (required)")
	cmd.Flags().StringVar(&opts.LastName, "last", "", "last name (required)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&opts.DateOfBirth, "dob", "", "date of birth, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.Telephone, "phone", "", "telephone number")
	cmd.Flags().BoolVar(&opts.Inactive, "inactive", false, "create the user as inactive")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newUserListCommand(rootOpts *RootOptions) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			svc := service.NewUserService(env.store, nil, env.log,
				service.WithUserPageDefaults(pageDefaults(env.cfg.Pagination)),
			)
			users, err := svc.ListUsers(cmd.Context(), page, size)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tACTIVE")
			for _, u := range users.Items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%t\n", u.ID, u.FullName(), u.Email, u.IsActive)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d users)\n", users.CurrentPage, users.TotalPages, users.TotalCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number (default from config)")
	cmd.Flags().IntVar(&size, "size", 0, "page size (default from config)")

	return cmd
}
