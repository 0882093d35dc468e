package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════╗",
		"║   ███████╗██╗██╗     ██╗     ██████╗ ██████╗     ║",
		"║   ██╔════╝██║██║     ██║     ██╔══██╗██╔══██╗    ║",
		"║   █████╗  ██║██║     ██║     ██║  ██║██████╔╝    ║",
		"║   ██╔══╝  ██║██║     ██║     ██║  ██║██╔══██╗    ║",
		"║   ██║     ██║███████╗███████╗██████╔╝██████╔╝    ║",
		"║   ╚═╝     ╚═╝╚══════╝╚══════╝╚═════╝ ╚═════╝     ║",
		"║                                                  ║",
		"║      🌱 Synthetic data for the socio schema      ║",
		"╚══════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                 ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "filldb",
	Short: "Fill the socio database with synthetic data",
	Long: `
filldb populates a socio database with fake users, posts, comments,
personal messages, subscriptions and likes.

Relationship tables are filled with unique pairs only: no user
subscribes to themselves and no post or comment is liked twice by
the same user. The whole run is one transaction.

Database Support:
- PostgreSQL
- MySQL
- SQLite`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("filldb version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./filldb.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("filldb.config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			color.Yellow("⚠️  Could not read config file: %v", err)
		}
	}
}
