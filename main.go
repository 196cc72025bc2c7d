package main

import (
	"context"
	"log"
	"os"

	"github.com/ChainSafe/mips-decoder/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = os.Args[0]
	app.Usage = "MIPS-C machine code decoder"
	app.Description = "Translates hex machine code into MIPS-C assembly, resolving branch and jump targets to labels"
	app.Commands = []*cli.Command{
		cmd.DecodeCommand,
		cmd.LabelsCommand,
	}
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
