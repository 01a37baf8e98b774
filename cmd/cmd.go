package cmd

import (
	"github.com/JamsawColPH/esp8266ndn/std/utils"
	"github.com/JamsawColPH/esp8266ndn/tools"
	"github.com/spf13/cobra"
)

var CmdEsp8266ndn = &cobra.Command{
	Use:     "esp8266ndn",
	Short:   "Named Data Networking packet face",
	Long:    "Named Data Networking packet face with ping and key tools",
	Version: utils.Version,
}

func init() {
	cobra.EnableCommandSorting = false
	CmdEsp8266ndn.Root().CompletionOptions.HiddenDefaultCmd = true
	CmdEsp8266ndn.PersistentFlags().BoolP("help", "h", false, "Print usage")
	CmdEsp8266ndn.PersistentFlags().Lookup("help").Hidden = true

	flags := CmdEsp8266ndn.PersistentFlags()
	flags.StringVar(&tools.Flags.ConfigFile, "config", "", "YAML configuration file")
	flags.StringVar(&tools.Flags.Router, "router", "", "Router URI, e.g. udp://127.0.0.1:6363")
	flags.StringVar(&tools.Flags.LogLevel, "log-level", "", "Logging level (TRACE, DEBUG, INFO, WARN, ERROR)")

	CmdEsp8266ndn.AddGroup(&cobra.Group{ID: "tools", Title: "Debug Tools"})
	CmdEsp8266ndn.AddCommand(tools.CmdPingClient())
	CmdEsp8266ndn.AddCommand(tools.CmdPingServer())
	CmdEsp8266ndn.AddCommand(tools.CmdDecode())

	CmdEsp8266ndn.AddGroup(&cobra.Group{ID: "sec", Title: "Security Tools"})
	CmdEsp8266ndn.AddCommand(tools.CmdKeyGen())
}
