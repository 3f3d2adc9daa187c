package main

import "github.com/Alturino/shoppingcart/cmd"

func main() {
	cmd.Start()
}
