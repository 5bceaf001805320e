package main

import "github.com/columndb/columndb/cmd/columndb"

func main() {
	cmd.Execute()
}
