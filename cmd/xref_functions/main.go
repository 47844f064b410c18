package main

import "github.com/mvp-joe/xref-functions/internal/cli"

func main() {
	cli.Execute()
}
