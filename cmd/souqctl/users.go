package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"souqmanaqil/internal/domain/entity"
)

func newUsersCmd(a *app) *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Inspect and manage directory profiles",
	}

	var role string
	list := &cobra.Command{
		Use:   "list",
		Short: "List profiles, optionally narrowed to one role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "" && !entity.Role(role).Valid() {
				return fmt.Errorf("unknown role %q", role)
			}

			all, err := a.directory.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROLE\tLOCATION\tBALANCE")
			for _, u := range all {
				if role != "" && u.Role != entity.Role(role) {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\n", u.ID, u.Name, u.Role, u.Location, u.Balance)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&role, "role", "", "only show this role")

	setRole := &cobra.Command{
		Use:   "set-role <phone> <role>",
		Short: "Change the role of a profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.directory.SetRole(cmd.Context(), args[0], entity.Role(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s is now %s\n", a.directory.SanitizeIdentifier(args[0]), args[1])
			return nil
		},
	}

	users.AddCommand(list, setRole)
	return users
}
