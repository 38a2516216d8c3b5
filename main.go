package main

import (
	"fmt"
	"os"

	"cityfix-be/app"
	"cityfix-be/models"
	"cityfix-be/seed"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "cityfix",
		Short:   "CityFix civic issue reporting backend",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	a := app.New()
	if err := a.Err(); err != nil {
		return err
	}
	a.Run()
	return nil
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load districts, categories and landing page content into MongoDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			var (
				data models.ReferenceData
				err  error
			)
			if file != "" {
				data, err = seed.LoadFile(file)
			} else {
				data, err = seed.Load()
			}
			if err != nil {
				return err
			}
			return app.Seed(cmd.Context(), data)
		},
	}

	cmd.Flags().StringP("file", "f", "", "YAML file to load instead of the built-in data")

	return cmd
}
