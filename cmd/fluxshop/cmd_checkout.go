package main

import (
	"errors"
	"fmt"

	"github.com/nikolayk812/fluxshop/internal/checkout"
	"github.com/nikolayk812/fluxshop/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) checkoutCmd() *cobra.Command {
	var (
		name    string
		address string
		payment string
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the whole cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			method, err := domain.ParsePaymentMethod(payment)
			if err != nil {
				return err
			}

			receipt, err := c.app.Checkout.Submit(cmd.Context(), domain.ShippingForm{
				Name:          name,
				Address:       address,
				PaymentMethod: method,
			})
			switch {
			case errors.Is(err, checkout.ErrCartNotCleared):
				c.logger.Warn("order placed but cart not cleared", zap.Error(err))
			case err != nil:
				return c.userError(err, checkout.FailureReason(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Thank you! Your order has been received. Total paid: %s\n", receipt.Total)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "full name")
	flags.StringVar(&address, "address", "", "shipping address")
	flags.StringVar(&payment, "payment", string(domain.PaymentCard), "payment method: card or cod")

	return cmd
}
