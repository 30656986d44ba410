package client_test

import (
	"context"
	"fmt"

	"crm-api/pkg/client"
)

func ExampleClient() {
	ctx := context.Background()
	c := client.New("http://localhost:5000")
	if _, err := c.Login(ctx, "alice@example.com", "Secret123!"); err != nil {
		fmt.Println(err)
		return
	}

	phone := "+1-555-0100"
	created, err := c.CreateCustomer(ctx, client.CreateCustomerRequest{
		Name:  "Acme Corp",
		Email: "sales@acme.com",
		Phone: &phone,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	empty := ""
	if _, err := c.UpdateCustomer(ctx, created.ID, client.UpdateCustomerRequest{Phone: &empty}); err != nil {
		fmt.Println(err)
	}
	list, meta := c.Customers.Snapshot()
	fmt.Println(len(list), meta.Total)
}
