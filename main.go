package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"spritepad/app"
	"spritepad/config"
	"spritepad/log"
)

const version = "0.1.0"

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "spritepad",
	Short: "Terminal palette and color workbench for pixel-art workflows",
	RunE: func(c *cobra.Command, args []string) error {
		log.Initialize(debugFlag)
		defer log.Close()

		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("spritepad must be run from a terminal")
		}
		return app.Run(context.Background())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(c *cobra.Command, args []string) {
		fmt.Printf("spritepad %s\n", version)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the saved configuration and state",
	RunE: func(c *cobra.Command, args []string) error {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		for _, name := range []string{config.ConfigFileName, config.StateFileName, config.LockFileName} {
			path := filepath.Join(dir, name)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove %s: %w", path, err)
			}
		}
		fmt.Println("configuration and state cleared")
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.AddCommand(versionCmd, resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
