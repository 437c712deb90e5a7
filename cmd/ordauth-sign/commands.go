package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/layer-3/ordauth"
	"github.com/layer-3/ordauth/adapters/signer"
	"github.com/layer-3/ordauth/internal/bsv"
	"github.com/layer-3/ordauth/ports"
	"github.com/urfave/cli/v2"
)

var keyFlag = &cli.StringFlag{
	Name:    "key",
	Usage:   "WIF private key",
	EnvVars: []string{"ORDAUTH_WIF"},
}

func keygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "generate a new compressed key",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "testnet", Usage: "generate a testnet key"},
		},
		Action: func(c *cli.Context) error {
			w, err := bsv.NewWIF(c.Bool("testnet"))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "address: %s\nwif:     %s\n", w.Address(), w)
			return nil
		},
	}
}

func signCommand() *cli.Command {
	return &cli.Command{
		Name:      "sign",
		Usage:     "sign a message with a WIF key",
		ArgsUsage: "<message>",
		Flags:     []cli.Flag{keyFlag},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one message argument")
			}
			ks, err := signer.ParseKeySigner(c.String("key"))
			if err != nil {
				return err
			}
			sig, err := ks.SignMessage(c.Context, c.Args().First())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, sig)
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "check a signature offline",
		ArgsUsage: "<address> <message> <signature>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 3 {
				return errors.New("expected address, message and signature")
			}
			addr, err := bsv.ParseAddress(c.Args().Get(0))
			if err != nil {
				return err
			}
			sig, err := bsv.DecodeSignature(c.Args().Get(2))
			if err != nil {
				return err
			}
			if !bsv.VerifyMessage(addr, c.Args().Get(1), sig) {
				return fmt.Errorf("signature was not made by %s", addr)
			}
			fmt.Fprintln(c.App.Writer, "valid")
			return nil
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in to an ordauth server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", Value: "http://localhost:9000", EnvVars: []string{"ORDAUTH_SERVER"}},
			keyFlag,
			&cli.StringFlag{Name: "address", Usage: "address to sign in as when pasting signatures by hand"},
			&cli.DurationFlag{Name: "timeout", Value: 5 * time.Minute, Usage: "how long to wait for a signature"},
		},
		Action: func(c *cli.Context) error {
			var provider ports.SigningProvider
			switch {
			case c.String("key") != "":
				ks, err := signer.ParseKeySigner(c.String("key"))
				if err != nil {
					return err
				}
				provider = ks
			case c.String("address") != "":
				provider = signer.NewManualSigner(c.String("address"), c.App.Reader, c.App.Writer)
			default:
				return errors.New("either --key or --address is required")
			}

			ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
			defer cancel()

			client := ordauth.NewHTTPClient(c.String("server"), nil)
			login, err := ordauth.SignIn(ctx, client, provider)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "signed in as %s until %s\nsession token: %s\n",
				login.Address, login.ExpiresAt.Format(time.RFC3339), login.SessionToken)
			return nil
		},
	}
}
