package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "ordauth-sign",
		Usage: "sign and verify wallet login challenges",
		Commands: []*cli.Command{
			keygenCommand(),
			signCommand(),
			verifyCommand(),
			loginCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
