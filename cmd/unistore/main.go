package main

import "github.com/nimburion/unistore/pkg/cli"

func main() {
	cli.Main()
}
