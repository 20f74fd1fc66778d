package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-autopilot/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the autopilot SSH server",
	Long: `Start an SSH server where every connection picks a preset and watches
its own game. Finished games go to the shared runs database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.autopilot/host_key

Examples:
  autopilot serve                           # Listen on :23234
  autopilot serve --ssh :2222               # Listen on port 2222
  autopilot serve --host-key ./my_host_key  # Use specific host key

Connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	scfg := tui.DefaultSSHServerConfig()
	scfg.Address = flagSSHAddr
	scfg.HostKeyPath = flagHostKey
	scfg.DBPath = flagDBPath
	scfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	scfg.TickRate = flagFPS
	scfg.Logger = logger.WithPrefix("autopilot-ssh")

	server, err := tui.NewSSHServer(scfg)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Starting autopilot SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
