package main

import (
	"gremio-dashboard/cmd/snapshot/commands"
	"gremio-dashboard/cmd/snapshot/utils"
)

func main() {
	commands.ExecuteContext(utils.SignalContext())
}
