// Command board prints the project pipeline, moves cards between stages and
// follows live changes made by other users.
//
//	board [flags] show
//	board [flags] move <project-id> <Lead|Cotizacion|EnProduccion|Entregado>
//	board [flags] watch
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/Marga-Ghale/creativa-crm/internal/apiclient"
	"github.com/Marga-Ghale/creativa-crm/internal/board"
	"github.com/Marga-Ghale/creativa-crm/internal/logger"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	apiURL := flag.String("url", envOr("CRM_API_URL", "http://localhost:3001"), "API base URL")
	email := flag.String("email", envOr("CRM_EMAIL", ""), "login email")
	password := flag.String("password", envOr("CRM_PASSWORD", ""), "login password")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] show | move <id> <status> | watch\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger.Setup("development", *logLevel)
	log := logger.With("board-cli")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *apiURL, *email, *password, flag.Args()); err != nil {
		log.Error().Err(err).Msg("board")
		os.Exit(1)
	}
}

func run(ctx context.Context, apiURL, email, password string, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}

	client := apiclient.NewClient(apiURL)
	if _, err := client.Login(ctx, email, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	b := board.New(client)
	if err := b.Load(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "show":
		printBoard(os.Stdout, b)
		return nil

	case "move":
		if len(args) != 3 {
			return fmt.Errorf("usage: move <project-id> <status>")
		}
		if err := b.Move(ctx, args[1], types.ProjectStatus(args[2])); err != nil {
			return err
		}
		b.Wait()
		if err := b.Err(); err != nil {
			return fmt.Errorf("move rejected: %w", err)
		}
		printBoard(os.Stdout, b)
		return nil

	case "watch":
		events, err := client.Subscribe(ctx)
		if err != nil {
			return err
		}
		printBoard(os.Stdout, b)
		b.Watch(ctx, events, func() {
			fmt.Fprintln(os.Stdout)
			printBoard(os.Stdout, b)
		})
		return nil
	}

	return fmt.Errorf("unknown command %q", args[0])
}

func printBoard(w io.Writer, b *board.Board) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, col := range b.Columns() {
		fmt.Fprintf(tw, "%s (%d)\n", strings.ToUpper(col.Label), len(col.Projects))
		for _, p := range col.Projects {
			client := ""
			if p.Client != nil {
				client = p.Client.Name
			}
			due := "-"
			if p.DueDate != nil {
				due = *p.DueDate
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", p.ID, p.Name, client, due)
		}
	}
	tw.Flush()
}
