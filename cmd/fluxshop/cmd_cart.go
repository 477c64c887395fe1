package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *cli) productsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := c.app.API.ListProducts(cmd.Context(), search)
			if err != nil {
				return c.userError(err, "Failed to load products")
			}

			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Title, p.Price.StringFixed(2))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search term")

	return cmd
}

func (c *cli) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and edit the local cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show cart lines and the total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lines := c.app.Cart.Lines()
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tQTY\tSUBTOTAL")
			for _, l := range lines {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					l.ProductID, l.Title, l.Price.StringFixed(2), l.Quantity, l.Subtotal().StringFixed(2))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Subtotal: %s\n", c.app.CartTotal())
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.FindProduct(cmd.Context(), args[0])
			if err != nil {
				return c.userError(err, "Product not found")
			}
			if err := c.app.Cart.Add(cmd.Context(), p); err != nil {
				return c.userError(err, "Failed to update cart")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s.\n", p.Title)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Cart.Remove(cmd.Context(), args[0]); err != nil {
				return c.userError(err, "Failed to update cart")
			}
			return nil
		},
	}

	qty := &cobra.Command{
		Use:   "qty <product-id> <quantity>",
		Short: "Set the quantity of a product (minimum 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity[%s] is not a number", args[1])
			}
			if err := c.app.Cart.SetQuantity(cmd.Context(), args[0], q); err != nil {
				return c.userError(err, "Failed to update cart")
			}
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Cart.Clear(cmd.Context()); err != nil {
				return c.userError(err, "Failed to update cart")
			}
			return nil
		},
	}

	cmd.AddCommand(show, add, remove, qty, clear)
	return cmd
}
