package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/desertwitch/davtree/internal/tree"
)

// App runs single commands against a [tree.Tree].
type App struct {
	tree *tree.Tree
	out  io.Writer
}

func NewApp(tr *tree.Tree, out io.Writer) *App {
	return &App{
		tree: tr,
		out:  out,
	}
}

// Run executes the command named by the first argument. Once started, an
// operation is always waited for, also when the context is cancelled.
func (app *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("(app) %w: no command given", ErrUsage)
	}

	cmd, params := args[0], args[1:]

	switch cmd {
	case "resolve":
		if len(params) != 1 {
			return fmt.Errorf("(app) %w: resolve <path>", ErrUsage)
		}

		return app.resolve(ctx, params[0])

	case "copy", "move":
		if len(params) != 2 { //nolint:mnd
			return fmt.Errorf("(app) %w: %s <src> <dst>", ErrUsage, cmd)
		}

		return app.mutate(ctx, cmd, params[0], params[1])
	}

	return fmt.Errorf("(app) %w: %s", ErrUnknownCommand, cmd)
}

func (app *App) resolve(ctx context.Context, virtualPath string) error {
	node, err := await(ctx, app.tree.ResolveAsync(virtualPath))
	if err != nil {
		return fmt.Errorf("(app-resolve) %w", err)
	}

	fmt.Fprintln(app.out, renderNode(virtualPath, node))

	return nil
}

func (app *App) mutate(ctx context.Context, cmd string, virtualSrc, virtualDest string) error {
	var f *tree.Future[struct{}]

	if cmd == "move" {
		f = app.tree.MoveAsync(virtualSrc, virtualDest)
	} else {
		f = app.tree.CopyAsync(virtualSrc, virtualDest)
	}

	if _, err := await(ctx, f); err != nil {
		return fmt.Errorf("(app-%s) %w", cmd, err)
	}

	slog.Info("Operation completed.", "op", cmd, "src", virtualSrc, "dst", virtualDest)

	return nil
}

// await waits for the result of a [tree.Future]. When the context ends
// first, the operation cannot be aborted midway, so waiting continues.
func await[T any](ctx context.Context, f *tree.Future[T]) (T, error) {
	v, err := f.Await(ctx)
	if err == nil || ctx.Err() == nil || !errors.Is(err, ctx.Err()) {
		return v, err
	}

	slog.Warn("Interrupted: waiting for the running operation to complete...")

	return f.Wait()
}
