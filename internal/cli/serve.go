package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/server"
)

// serveCommand creates the serve command that hosts the interactive viewer.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags   chartFlags
		addr    string
		assets  string
		noWatch bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dataset]",
		Short: "Serve an interactive sunburst over HTTP",
		Long: `Serve an interactive sunburst over HTTP.

The viewer page embeds the chart with hover highlighting; clicking an arc
reloads the page zoomed into it. The dataset file is watched and reloaded
on change unless --no-watch is given.

Endpoints:
  /             viewer page with the route selector
  /chart.svg    chart (query: focus, path)
  /chart.png    raster chart (query: focus, path, scale)
  /layout.json  chart document
  /healthz      dataset status`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags)
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if assets == "" {
				assets = c.Config.Server.Assets
			}
			return c.runServe(cmd.Context(), server.Options{
				Input:  args[0],
				Assets: assets,
				Base:   c.Config.Routes.Base,
				Routes: c.Config.Routes.Items,
				Chart:  opts,
			}, addr, c.Config.Server.Watch && !noWatch, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&assets, "assets", "", "directory served under /assets/ (default from config)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the dataset on change")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts server.Options, addr string, watch, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv, err := server.New(ctx, runner, opts, c.Logger)
	if err != nil {
		return err
	}

	if watch {
		w, err := srv.Watch(ctx)
		if err != nil {
			return fmt.Errorf("watch %s: %w", opts.Input, err)
		}
		defer w.Stop()
	}

	printSuccess("Serving %s", opts.Input)
	printKeyValue("Address", StyleLink.Render("http://"+displayAddr(addr)+"/"))
	if watch {
		printInfo("Watching %s for changes", opts.Input)
	}

	return srv.ListenAndServe(ctx, addr, c.Config.Server.ReadTimeout, c.Config.Server.WriteTimeout)
}

// displayAddr turns ":8080" into "localhost:8080" for printing.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
