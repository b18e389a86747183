package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"nftarchive/pkg/auth"
	"nftarchive/pkg/ui"
)

var authProfile string

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored OpenSea API keys",
	Long: `Manage OpenSea API keys stored under profile names.

Keys are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - NFTARCHIVE_API_KEY (read-only)`,
}

// setCmd represents the auth set command
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Store an API key",
	Long: `Store an OpenSea API key for a profile. The key is read from the terminal
with echo disabled, or from stdin when it is not a terminal.`,
	Example: `  # Store the default key
  nftarchive auth set

  # Store a second key
  nftarchive auth set --profile work

  # Non-interactive
  echo "$KEY" | nftarchive auth set`,
	Args: cobra.NoArgs,
	RunE: runAuthSet,
}

// removeCmd represents the auth remove command
var removeCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm"},
	Short:   "Remove a stored API key",
	Args:    cobra.NoArgs,
	RunE:    runAuthRemove,
}

// listCmd represents the auth list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored API keys, masked",
	Args:  cobra.NoArgs,
	RunE:  runAuthList,
}

// guideCmd represents the auth guide command
var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Explain how to get an OpenSea API key",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		auth.ShowAPIKeyGuide()
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(setCmd, removeCmd, listCmd, guideCmd)

	authCmd.PersistentFlags().StringVarP(&authProfile, "profile", "p", auth.DefaultProfile, "profile name")
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	manager, err := newCredentialManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "OpenSea API key for profile %q: ", authProfile)
	key, err := readSecret(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	if key == "" {
		return fmt.Errorf("API key is required (see 'nftarchive auth guide')")
	}

	if err := manager.Store(&auth.Credential{Profile: authProfile, APIKey: key}); err != nil {
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Stored API key %s for profile %s", auth.Mask(key), authProfile))
	return nil
}

func runAuthRemove(cmd *cobra.Command, args []string) error {
	manager, err := newCredentialManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	if err := manager.Delete(authProfile); err != nil {
		return err
	}

	ui.PrintSuccess("Removed API key for profile " + authProfile)
	return nil
}

func runAuthList(cmd *cobra.Command, args []string) error {
	manager, err := newCredentialManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	creds, err := manager.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(creds) == 0 {
		fmt.Fprintln(out, "No stored API keys. Run 'nftarchive auth set' to add one.")
		return nil
	}

	for _, cred := range creds {
		modified := "from environment"
		if !cred.LastModified.IsZero() {
			modified = cred.LastModified.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(out, "%-12s %s  (%s)\n", cred.Profile, auth.Mask(cred.APIKey), modified)
	}
	return nil
}

// readSecret reads a line without echo when in is a terminal
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
