// Package cli is the interactive terminal front end. It is deliberately thin
// presentation glue: every vault operation goes through the service facade,
// and the only state held here is the reader on stdin.
package cli

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/bigcommunity/ashypass/internal/config"
	"github.com/bigcommunity/ashypass/internal/generator"
	"github.com/bigcommunity/ashypass/internal/logger"
	"github.com/bigcommunity/ashypass/internal/service"
	"github.com/bigcommunity/ashypass/internal/session"
	"github.com/bigcommunity/ashypass/models"
)

// App is the interactive command loop.
type App struct {
	vault  service.VaultService
	genCfg config.Generator
	logger *logger.Logger

	in  *bufio.Reader
	out io.Writer
}

func New(vault service.VaultService, genCfg config.Generator, log *logger.Logger) *App {
	return &App{
		vault:  vault,
		genCfg: genCfg,
		logger: log,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run unlocks (or initializes) the vault and enters the command loop until
// EOF or "quit".
func (a *App) Run(ctx context.Context) error {
	a.vault.SetLockCallback(func() {
		fmt.Fprintln(a.out, "\nvault locked after inactivity; use 'unlock' to continue")
	})

	if err := a.authenticate(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "type 'help' for the command list")

	for {
		fmt.Fprint(a.out, "ashypass> ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out)
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		command, args := fields[0], fields[1:]

		if command == "quit" || command == "exit" {
			a.vault.Lock()
			return nil
		}

		if err := a.dispatch(ctx, command, args); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

// authenticate initializes a fresh vault or unlocks an existing one.
func (a *App) authenticate(ctx context.Context) error {
	has, err := a.vault.HasMasterCredential(ctx)
	if err != nil {
		return err
	}

	if !has {
		fmt.Fprintln(a.out, "no vault found; creating one")
		for {
			passphrase, err := a.readSecret("choose master passphrase: ")
			if err != nil {
				return err
			}
			if err := a.vault.SetMasterPassword(ctx, passphrase); err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
				continue
			}
			return nil
		}
	}

	return a.unlock(ctx)
}

func (a *App) unlock(ctx context.Context) error {
	for {
		passphrase, err := a.readSecret("master passphrase: ")
		if err != nil {
			return err
		}
		err = a.vault.VerifyMasterPassword(ctx, passphrase)
		if err == nil {
			return nil
		}
		if errors.Is(err, service.ErrInvalidPassword) {
			fmt.Fprintln(a.out, "incorrect password")
			continue
		}
		return err
	}
}

func (a *App) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		a.printHelp()
		return nil
	case "status":
		return a.status()
	case "unlock":
		return a.unlock(ctx)
	case "lock":
		a.vault.Lock()
		return nil
	case "list":
		return a.list(ctx, strings.Join(args, " "))
	case "get":
		return a.get(ctx, args)
	case "add":
		return a.add(ctx)
	case "edit":
		return a.edit(ctx, args)
	case "rm":
		return a.remove(ctx, args)
	case "gen":
		return a.generate(args)
	case "import":
		return a.importCSV(ctx, args)
	case "export":
		return a.exportCSV(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `commands:
  list [term]     list records, optionally filtered
  get <id>        show one record with decrypted secrets
  add             add a record interactively
  edit <id>       update a record (blank keeps a field, '-' clears it)
  rm <id>         delete a record
  gen [length]    generate a password
  gen phrase      generate a word passphrase
  gen pin         generate a numeric PIN
  import <file>   import records from a CSV file (title,username,url,password,notes)
  export <file>   export all records to a CSV file
  status          show session state
  lock / unlock   lock or unlock the vault
  quit            lock and exit
`)
}

func (a *App) status() error {
	state := a.vault.SessionState()
	if state == session.Unlocked {
		fmt.Fprintf(a.out, "unlocked, auto-lock in %ds\n", a.vault.RemainingSeconds())
	} else {
		fmt.Fprintln(a.out, "locked")
	}
	return nil
}

func (a *App) list(ctx context.Context, term string) error {
	summaries, err := a.vault.ListRecords(ctx, term)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(a.out, "no records")
		return nil
	}
	for _, s := range summaries {
		fmt.Fprintf(a.out, "%4d  %-30s %-25s %s\n", s.ID, s.Title, s.Username, s.URL)
	}
	return nil
}

func (a *App) get(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	record, err := a.vault.GetRecord(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "title:    %s\n", record.Title)
	fmt.Fprintf(a.out, "username: %s\n", record.Username)
	fmt.Fprintf(a.out, "url:      %s\n", record.URL)
	fmt.Fprintf(a.out, "password: %s\n", record.Password)
	if record.Notes != "" {
		fmt.Fprintf(a.out, "notes:    %s\n", record.Notes)
	}
	return nil
}

func (a *App) add(ctx context.Context) error {
	title, err := a.readLine("title: ")
	if err != nil {
		return err
	}
	username, err := a.readLine("username (optional): ")
	if err != nil {
		return err
	}
	url, err := a.readLine("url (optional): ")
	if err != nil {
		return err
	}
	password, err := a.readSecret("password: ")
	if err != nil {
		return err
	}
	notes, err := a.readLine("notes (optional): ")
	if err != nil {
		return err
	}

	id, err := a.vault.AddRecord(ctx, models.Record{
		Title:    title,
		Username: username,
		URL:      url,
		Password: password,
		Notes:    notes,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "added record %d\n", id)
	return nil
}

// edit prompts for each field of an existing record. An empty answer leaves
// the field untouched; a single "-" clears it.
func (a *App) edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	update := models.RecordUpdate{ID: id}

	prompts := []struct {
		label  string
		target **string
		secret bool
	}{
		{"title", &update.Title, false},
		{"username", &update.Username, false},
		{"url", &update.URL, false},
		{"password", &update.Password, true},
		{"notes", &update.Notes, false},
	}

	for _, p := range prompts {
		var answer string
		var err error
		if p.secret {
			// a password can be replaced but never cleared
			answer, err = a.readSecret(p.label + " (blank keeps): ")
			if err != nil {
				return err
			}
			if answer != "" {
				value := answer
				*p.target = &value
			}
			continue
		}

		answer, err = a.readLine(p.label + " (blank keeps, '-' clears): ")
		if err != nil {
			return err
		}
		switch answer {
		case "":
			// keep
		case "-":
			cleared := ""
			*p.target = &cleared
		default:
			value := answer
			*p.target = &value
		}
	}

	if err := a.vault.UpdateRecord(ctx, update); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "updated record %d\n", id)
	return nil
}

func (a *App) remove(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.vault.DeleteRecord(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted record %d\n", id)
	return nil
}

func (a *App) generate(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "phrase":
			phrase, err := generator.GeneratePassphrase(a.genCfg.PassphraseWords, "-", true, true)
			if err != nil {
				return err
			}
			return a.printGenerated(phrase)
		case "pin":
			pin, err := generator.GeneratePIN(a.genCfg.PINLength)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, pin)
			return nil
		}
	}

	cfg := generator.DefaultConfig()
	cfg.Length = a.genCfg.PasswordLength
	if len(args) > 0 {
		length, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid length %q", args[0])
		}
		cfg.Length = length
	}

	password, err := generator.GeneratePassword(cfg)
	if err != nil {
		return err
	}
	return a.printGenerated(password)
}

func (a *App) printGenerated(secret string) error {
	score, level := generator.CheckStrength(secret)
	fmt.Fprintf(a.out, "%s  (%s, %d/100)\n", secret, level, score)
	return nil
}

// importCSV parses rows of title,username,url,password,notes and hands them
// to the service, which applies them one by one.
func (a *App) importCSV(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: import <file>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse csv: %w", err)
	}

	entries := make([]models.ImportEntry, 0, len(rows))
	for _, row := range rows {
		var entry models.ImportEntry
		for i, value := range row {
			switch i {
			case 0:
				entry.Title = value
			case 1:
				entry.Username = value
			case 2:
				entry.URL = value
			case 3:
				entry.Password = value
			case 4:
				entry.Notes = value
			}
		}
		entries = append(entries, entry)
	}

	result, err := a.vault.ImportEntries(ctx, entries)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "imported %d, skipped %d\n", result.Imported, result.Skipped)
	return nil
}

func (a *App) exportCSV(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: export <file>")
	}

	entries, err := a.vault.ExportEntries(ctx)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(args[0], os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, entry := range entries {
		if err := w.Write([]string{entry.Title, entry.Username, entry.URL, entry.Password, entry.Notes}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "exported %d records to %s\n", len(entries), args[0])
	return nil
}

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads a line with terminal echo disabled, falling back to a
// plain read when stdin is not a terminal (tests, pipes).
func (a *App) readSecret(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)

	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		line, err := a.in.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
	}

	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one record id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", args[0])
	}
	return id, nil
}
