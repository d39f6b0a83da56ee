// Command souqctl is the operator tool for the marketplace datastore.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"souqmanaqil/internal/adapter/repository"
	"souqmanaqil/internal/bootstrap"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/config"
	"souqmanaqil/pkg/logger"
)

// opener connects the backing services for one invocation.
type opener func(ctx context.Context) (*bootstrap.Resources, error)

// app holds what the subcommands work against once the root has connected.
type app struct {
	open opener
	out  io.Writer

	res       *bootstrap.Resources
	directory *usecase.DirectoryUseCase
	catalog   *usecase.CatalogUseCase
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Configure(cfg.LogLevel, cfg.IsProduction())

	var driver string
	root := newRootCmd(func(ctx context.Context) (*bootstrap.Resources, error) {
		if driver != "" {
			cfg.DatastoreDriver = driver
		}
		// Operator commands never need sessions.
		cfg.SessionDriver = bootstrap.DriverMemory
		return bootstrap.Open(ctx, cfg)
	}, os.Stdout)
	root.PersistentFlags().StringVar(&driver, "driver", "", "datastore driver (firestore or memory), overrides DATASTORE_DRIVER")

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open opener, out io.Writer) *cobra.Command {
	a := &app{open: open, out: out}

	root := &cobra.Command{
		Use:          "souqctl",
		Short:        "Operate the marketplace directory and catalog",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.connect(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.SetOut(out)

	root.AddCommand(newUsersCmd(a), newSeedCmd(a))
	return root
}

func (a *app) connect(ctx context.Context) error {
	if a.res != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := a.open(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	userRepo := repository.NewUserRepository(res.Store)
	a.res = res
	a.directory = usecase.NewDirectoryUseCase(userRepo)
	a.catalog = usecase.NewCatalogUseCase(
		repository.NewProductRepository(res.Store),
		userRepo,
		repository.NewStoryRepository(res.Store),
	)
	return nil
}

func (a *app) close() {
	if a.res != nil {
		a.res.Close()
		a.res = nil
	}
}
