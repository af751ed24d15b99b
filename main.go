package main

import (
	_ "github.com/chiru-cafe/chiru/src/admintools"
	_ "github.com/chiru-cafe/chiru/src/migration"
	"github.com/chiru-cafe/chiru/src/site"
)

func main() {
	site.Command.Execute()
}
