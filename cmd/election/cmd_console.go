package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"election-admin/admin"
	"election-admin/console"
	"election-admin/encryption"
	"election-admin/service"
	"election-admin/storage"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "run the interactive admin console",
	Args:  cobra.NoArgs,
	RunE:  runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	cryptoService := encryption.NewCryptoService()

	auth := admin.NewAuthenticator(storage.NewCredentialStore(c.CredentialsPath), cryptoService, logger)
	if err := auth.LoadOrCreate(c.Admin.Username, c.Admin.Password); err != nil {
		return err
	}

	fd := os.Stdin.Fd()
	con := console.New(console.Options{
		In:          os.Stdin,
		Out:         cmd.OutOrStdout(),
		Service:     service.NewElectionService(cryptoService, service.NewMetrics(), logger),
		Auth:        auth,
		Exporter:    storage.NewResultsWriter(cryptoService),
		ResultsPath: c.ResultsPath,
		Prompt:      isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		Logger:      logger,
	})

	logger.Debug().Str("results", c.ResultsPath).Str("credentials", c.CredentialsPath).Msg("console started")
	defer logger.Debug().Msg("console stopped")

	return con.Run()
}
