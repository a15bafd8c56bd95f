package main

import "github.com/mvp-joe/diffscope/internal/cli"

func main() {
	cli.Execute()
}
