package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/nikolayk812/fluxshop/internal/admin"
	"github.com/spf13/cobra"
)

func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage catalog products (admin only)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := c.app.Admin.List(cmd.Context())
			if err != nil {
				return c.userError(err, "Failed to load products")
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tCATEGORY")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Price.StringFixed(2), p.Category)
			}
			return w.Flush()
		},
	}

	var form struct {
		id, title, description, price, category, image string
	}
	save := &cobra.Command{
		Use:   "save",
		Short: "Create a product, or update it when --id is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft, err := admin.DraftFromForm(form.title, form.description, form.price, form.category, form.image)
			if err != nil {
				return err
			}

			p, err := c.app.Admin.Save(cmd.Context(), form.id, draft)
			if err != nil {
				return c.userError(err, admin.SaveFailure(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s).\n", p.Title, p.ID)
			return nil
		},
	}
	flags := save.Flags()
	flags.StringVar(&form.id, "id", "", "product to update; empty creates a new one")
	flags.StringVar(&form.title, "title", "", "title")
	flags.StringVar(&form.description, "description", "", "description")
	flags.StringVar(&form.price, "price", "", "price, e.g. 19.99")
	flags.StringVar(&form.category, "category", "", "category")
	flags.StringVar(&form.image, "image", "", "image URL")

	del := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Admin.Delete(cmd.Context(), args[0]); err != nil {
				return c.userError(err, admin.SaveFailure(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, save, del)
	return cmd
}
