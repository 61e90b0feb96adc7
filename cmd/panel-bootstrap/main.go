package main

import "github.com/lmcosta/panel-bootstrap/cmd/panel-bootstrap/cmd"

func main() {
	cmd.Execute()
}
