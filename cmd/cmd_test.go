package cmd_test

import (
	"testing"

	"github.com/JamsawColPH/esp8266ndn/cmd"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	names := map[string]string{}
	for _, c := range cmd.CmdEsp8266ndn.Commands() {
		names[c.Name()] = c.GroupID
	}
	require.Equal(t, "tools", names["ping"])
	require.Equal(t, "tools", names["pingserver"])
	require.Equal(t, "tools", names["decode"])
	require.Equal(t, "sec", names["keygen"])

	for _, f := range []string{"config", "router", "log-level"} {
		require.NotNil(t, cmd.CmdEsp8266ndn.PersistentFlags().Lookup(f), f)
	}
}
