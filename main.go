package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/meysamhadeli/solid/cmd"
	"github.com/meysamhadeli/solid/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.PrintError(err)
		os.Exit(1)
	}
}
