package main

import (
	"context"
	"fmt"

	"github.com/jobtrackr/jobtrackr/pkg/client"
)

func main() {
	c := client.New("http://localhost:9")
	amt := 100.0
	req := &client.CreateJobRequest{
		Position: "Engineer",
		Company:  "Acme",
		Salary:   &client.SalaryRequest{Amount: &amt, Currency: "USD"},
		Link:     "https://acme.example/jobs/1",
	}
	_, err := c.CreateJob(context.Background(), req)
	fmt.Println("compiled; call err:", err)
}
