package main

import "github.com/4nzor/dbrowse/internal/cli"

func main() {
	cli.Execute()
}
