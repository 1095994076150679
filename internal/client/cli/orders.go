package cli

import (
	"context"
	"fmt"
)

// Orders lists the user's orders.
func (a *App) Orders(ctx context.Context) {
	orders, err := a.client.Orders(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if len(orders) == 0 {
		fmt.Println("No orders.")
		return
	}

	for _, o := range orders {
		fmt.Printf("%-12s  %-10s  R$ %8.2f  %s\n",
			o.ID, o.Status, o.Total, o.CreatedAt.Format("2006-01-02"))
	}
}
