package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"olx-monitor/internal/config"
	"olx-monitor/internal/secrets"
)

// setPasswordCmd stores the SMTP password in the OS keychain so it never
// lands in the config file.
func setPasswordCmd() *cobra.Command {
	var del bool

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Store (or delete) the SMTP password in the OS keychain",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir()
			if err != nil {
				return err
			}
			cfgPath, err := config.EnsureUserConfig(dir)
			if err != nil {
				return err
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Notify.SMTP.Username) == "" || strings.TrimSpace(cfg.Notify.SMTP.Host) == "" {
				return fmt.Errorf("set notify.smtp.username and notify.smtp.host in %s first", cfgPath)
			}

			account := secrets.SMTPKeyringAccount(cfg)
			if del {
				if err := secrets.DeleteSMTPPassword(account); err != nil {
					return err
				}
				fmt.Println("SMTP password removed from keychain")
				return nil
			}

			fmt.Printf("SMTP password for %s: ", account)
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return err
			}
			if err := secrets.SetSMTPPassword(account, strings.TrimSpace(line)); err != nil {
				return err
			}
			fmt.Println("SMTP password stored in keychain")
			return nil
		},
	}

	cmd.Flags().BoolVar(&del, "delete", false, "remove the stored password instead")
	return cmd
}
