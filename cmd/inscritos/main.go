// Command inscritos prints participant lists from the remote API using the
// same search, filter, sort and pagination rules as the admin screen.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Coshio12/gestionar-carrera/internal/backend"
	"github.com/Coshio12/gestionar-carrera/internal/config"
	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
)

// source is the part of the remote API the CLI reads from.
type source interface {
	ListCategories(ctx context.Context) ([]inscritos.Category, error)
	ListParticipants(ctx context.Context, categoryID inscritos.ID) ([]inscritos.Participant, error)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout, openSource).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openSource() (source, int, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, 0, fmt.Errorf("loading config: %w", err)
	}
	api, err := backend.New(backend.Config{
		BaseURL:       cfg.APIBaseURL,
		TokenProvider: backend.StaticToken(cfg.APIToken),
	})
	if err != nil {
		return nil, 0, err
	}
	return api, cfg.PageSize, nil
}

func newRootCmd(out io.Writer, open func() (source, int, error)) *cobra.Command {
	root := &cobra.Command{
		Use:           "inscritos",
		Short:         "Inspect race registrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.AddCommand(newListCmd(open), newCategoriesCmd(open))
	return root
}
