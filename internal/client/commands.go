// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/device"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/service"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/tui"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

type command struct {
	usage      string
	skipUnlock bool
	run        func(a *App, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"login":           {usage: "login <login> [--remember]", skipUnlock: true, run: (*App).login},
		"unlock":          {usage: "unlock", skipUnlock: true, run: (*App).unlock},
		"list":            {usage: "list", run: (*App).list},
		"reveal":          {usage: "reveal <id>", run: (*App).reveal},
		"add":             {usage: "add <title> <username> [url]", run: (*App).add},
		"delete":          {usage: "delete <id>", run: (*App).deleteCredential},
		"change-password": {usage: "change-password", run: (*App).changePassword},
		"logout":          {usage: "logout [--forget]", skipUnlock: true, run: (*App).logout},
		"passcode":        {usage: "passcode", skipUnlock: true, run: (*App).passcode},
		"version":         {usage: "version", skipUnlock: true, run: (*App).version},
		"help":            {usage: "help", skipUnlock: true, run: (*App).help},
	}
}

func (a *App) exec(ctx context.Context, args []string) error {
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w %q, see `help`", ErrUnknownCommand, args[0])
	}

	if !cmd.skipUnlock && !a.session.IsUnlocked() {
		if err := a.services.Auth.Unlock(ctx); err != nil {
			return err
		}
	}

	a.logger.Debug().Str("func", "App.exec").Str("command", args[0]).Msg("running command")
	return cmd.run(a, ctx, args[1:])
}

// shell reads commands line by line until exit or end of input. The idle
// lock worker clears the session between commands.
func (a *App) shell(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.workers != nil {
		a.workers.Run(ctx)
	}

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, "vault> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}

		if a.idle != nil {
			a.idle.Touch()
		}
		if err := a.exec(ctx, args); err != nil {
			fmt.Fprintln(a.out, "error:", tui.HumanizeError(err))
		}
		if a.idle != nil {
			a.idle.Touch()
		}
	}
}

func (a *App) login(ctx context.Context, args []string) error {
	remember := slices.Contains(args, "--remember")
	args = slices.DeleteFunc(slices.Clone(args), func(s string) bool { return s == "--remember" })
	if len(args) != 1 {
		return usageError("login")
	}

	password, err := a.readSecret("Master password")
	if err != nil {
		return err
	}

	res, err := a.services.Auth.SignIn(ctx, models.Credentials{Login: args[0], Password: password}, remember)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged in.")
	switch {
	case res.Remembered:
		fmt.Fprintln(a.out, "Device unlock enabled.")
	case res.RememberErr != nil:
		fmt.Fprintln(a.out, "Device unlock not enabled:", res.RememberErr)
	}
	return nil
}

func (a *App) unlock(ctx context.Context, _ []string) error {
	if err := a.services.Auth.Unlock(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Unlocked.")
	return nil
}

func (a *App) list(ctx context.Context, _ []string) error {
	creds, err := a.services.Credentials.List(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, tui.RenderCredentials(creds))
	return nil
}

func (a *App) reveal(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("reveal")
	}

	cred, err := a.services.Credentials.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if slices.Contains(cred.Unavailable, models.FieldSecret) {
		return fmt.Errorf("the password of %q could not be decrypted", args[0])
	}

	if err = a.clipboard(cred.Secret); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fmt.Fprintf(a.out, "Password of %q copied to the clipboard.\n", cred.Title)
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return usageError("add")
	}

	secret, err := a.readSecret("Password to store")
	if err != nil {
		return err
	}

	plain := models.Credential{Title: args[0], Username: args[1], Secret: secret}
	if len(args) == 3 {
		plain.URL = args[2]
	}

	created, err := a.services.Credentials.Create(ctx, plain)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %q as %s.\n", created.Title, created.ID)
	return nil
}

func (a *App) deleteCredential(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("delete")
	}
	if err := a.services.Credentials.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) changePassword(ctx context.Context, _ []string) error {
	var req models.ChangePasswordRequest
	var err error
	if req.CurrentPassword, err = a.readSecret("Current master password"); err != nil {
		return err
	}
	if req.NewPassword, err = a.readSecret("New master password"); err != nil {
		return err
	}
	if req.ConfirmPassword, err = a.readSecret("Repeat new master password"); err != nil {
		return err
	}

	var res service.ChangePasswordResult
	if a.ui != nil && a.prompt.Interactive() {
		res, err = a.ui.ChangePassword(ctx, req)
	} else {
		res, err = a.services.Password.ChangeMasterPassword(ctx, req, func(percent int) {
			fmt.Fprintf(a.out, "re-encrypting records: %d%%\n", percent)
		})
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Master password changed, %d records re-encrypted.\n", res.Records)
	if res.VaultUpdated {
		fmt.Fprintln(a.out, "Device unlock updated.")
	}
	if res.ReloginRequired {
		if err = a.services.Auth.Logout(ctx, false); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Please log in again.")
	}
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	forget := slices.Contains(args, "--forget")
	if err := a.services.Auth.Logout(ctx, forget); err != nil {
		return err
	}
	if forget {
		fmt.Fprintln(a.out, "Logged out, this device no longer knows your account.")
	} else {
		fmt.Fprintln(a.out, "Locked.")
	}
	return nil
}

// passcode enrolls a device passcode by printing its verifier, which goes
// into the device configuration.
func (a *App) passcode(context.Context, []string) error {
	first, err := a.prompt.ReadSecret("New device passcode")
	if err != nil {
		return err
	}
	defer clear(first)
	second, err := a.prompt.ReadSecret("Repeat device passcode")
	if err != nil {
		return err
	}
	defer clear(second)

	if string(first) != string(second) {
		return ErrPasscodeMismatch
	}

	v, err := device.NewVerifier(first)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Set this in your configuration:")
	fmt.Fprintf(a.out, "DEVICE_PASSCODE_VERIFIER=%s\n", v)
	return nil
}

func (a *App) version(context.Context, []string) error {
	fmt.Fprintln(a.out, tui.RenderBuildInfo(a.info))
	return nil
}

func (a *App) help(context.Context, []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	fmt.Fprintln(a.out, "Commands:")
	for _, name := range names {
		fmt.Fprintln(a.out, "  "+commands[name].usage)
	}
	return nil
}

func (a *App) readSecret(prompt string) (string, error) {
	secret, err := a.prompt.ReadSecret(prompt)
	if err != nil {
		return "", err
	}
	defer clear(secret)
	return string(secret), nil
}

func usageError(name string) error {
	return fmt.Errorf("%w: %s", ErrUsage, commands[name].usage)
}

// IsUsageError reports whether err was caused by the command line itself.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUsage) || errors.Is(err, ErrUnknownCommand)
}
