package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/phaus/fuelio-lubelogger-sync/internal/config"
)

var (
	dryRun           = flag.Bool("dry-run", false, "Report what would be added without writing to Lubelogger")
	verbose          = flag.Bool("verbose", false, "Detailed logging output")
	configPath       = flag.String("config", "", "Config file location (default "+config.DefaultConfigPath+")")
	configTest       = flag.Bool("config-test", false, "Validate the configuration and exit")
	connectivityTest = flag.Bool("connectivity-test", false, "Check the Lubelogger API is reachable and exit")
	showVersion      = flag.Bool("version", false, "Show version information")
	encryptPassword  = flag.String("encrypt-password", "", "Encrypt a Lubelogger password for use as encrypted_password and exit")
)

// parseFlags handles command-line parsing and the flags that exit immediately.
func parseFlags() {
	flag.Usage = showUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("fuelio-lubelogger-sync %s\n", version)
		os.Exit(0)
	}

	if *encryptPassword != "" {
		blob, err := config.EncryptPasswordYAML(*encryptPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(blob)
		os.Exit(0)
	}
}

// resolveConfigPath returns the config file path to load.
func resolveConfigPath() string {
	if *configPath != "" {
		return *configPath
	}
	return config.DefaultConfigPath
}

// showUsage displays help information.
func showUsage() {
	fmt.Printf("Fuelio to Lubelogger sync - Version %s\n\n", version)
	fmt.Println("Imports fuel fillups from a Fuelio backup on Google Drive into Lubelogger,")
	fmt.Println("skipping fillups that are already present.")
	fmt.Println()

	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()

	fmt.Println("Examples:")
	fmt.Println("  sync --dry-run")
	fmt.Println("  sync --config /etc/fuelio-sync/config.yml --verbose")
	fmt.Println("  sync --connectivity-test")
	fmt.Println("  sync --encrypt-password 'secret'")
}
