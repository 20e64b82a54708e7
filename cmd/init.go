package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"dockhand/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive first-time setup",
	Long:  `Walks through the server settings and writes the config file.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	questions := []*survey.Question{
		{
			Name:     "port",
			Prompt:   &survey.Input{Message: "HTTP port:", Default: fmt.Sprintf("%d", cfg.Http.Port)},
			Validate: survey.Required,
		},
		{
			Name:   "domain",
			Prompt: &survey.Input{Message: "Public domain (optional):", Default: cfg.Http.Domain},
		},
		{
			Name:     "adminPath",
			Prompt:   &survey.Input{Message: "Admin path:", Default: cfg.Admin.Path},
			Validate: survey.Required,
		},
	}

	answers := struct {
		Port      int
		Domain    string
		AdminPath string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	var password string
	if err := survey.AskOne(&survey.Password{Message: "Admin password:"}, &password,
		survey.WithValidator(survey.MinLength(8))); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	cfg.Http.Port = answers.Port
	cfg.Http.Domain = answers.Domain
	cfg.Admin.Path = answers.AdminPath
	cfg.Admin.PasswordHash = string(hash)

	if cfg.Admin.SessionSecret == "" {
		if cfg.Admin.SessionSecret, err = randomSecret(); err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
	}
	if cfg.Agent.Secret == "" {
		if cfg.Agent.Secret, err = randomSecret(); err != nil {
			return fmt.Errorf("generate agent secret: %w", err)
		}
	}

	path := cfgFile
	if path == "" {
		path = config.Path()
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println("Configuration written to", path)
	return nil
}
