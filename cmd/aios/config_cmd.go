package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/nelieo/aios/internal/config"
	"github.com/spf13/cobra"
)

func configCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage AIOS configuration",
		Long:  `Manage AIOS configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the AIOS configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the AIOS configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. The file is validated after the
editor exits.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var assumeYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the AIOS configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(assumeYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)
	return configCmd
}

func keybindsCommand() *cobra.Command {
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "List all keybindings",
		Long:    `Display the configured keybindings, including any overrides from the config file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			registry := config.NewKeybindRegistry(loadConfig())
			fmt.Print(config.FormatKeybindings(config.GetKeybindings(registry)))
			return nil
		},
	}
	return keybindsCmd
}

func printConfigPath() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(configPath)
	return nil
}

// findEditor returns the user's editor, or the first common one on PATH.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if editor := os.Getenv(env); editor != "" {
			return editor, nil
		}
	}
	for _, editor := range []string{"vim", "vi", "nano", "emacs"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no editor found, set $EDITOR")
}

func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	// Make sure the file exists before opening it
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.WriteConfig(configPath, config.DefaultConfig()); err != nil {
			return err
		}
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	// $EDITOR may carry arguments, e.g. "code --wait"
	fields := strings.Fields(editor)
	// #nosec G204 - the editor is chosen by the user
	cmd := exec.Command(fields[0], append(fields[1:], configPath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if _, err := config.LoadUserConfigFile(configPath); err != nil {
		return fmt.Errorf("%s is not valid: %w", configPath, err)
	}
	fmt.Println("Configuration is valid.")
	return nil
}

func resetConfigToDefaults(assumeYes bool) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	if !assumeYes {
		fmt.Printf("Overwrite %s with the defaults? [y/N] ", configPath)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := config.WriteConfig(configPath, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", configPath)
	return nil
}
