package main

import "github.com/consultbridge/ms-go-orders/cmd"

func main() {
	cmd.Execute()
}
