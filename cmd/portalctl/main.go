package main

import "github.com/opsdesk/portal/cmd/portalctl/cmd"

func main() {
	cmd.Execute()
}
