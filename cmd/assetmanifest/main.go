package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/quantmind-br/assetmanifest/internal/config"
	"github.com/quantmind-br/assetmanifest/internal/manifest"
	"github.com/quantmind-br/assetmanifest/internal/server"
	"github.com/quantmind-br/assetmanifest/internal/static"
	"github.com/quantmind-br/assetmanifest/internal/tags"
	"github.com/quantmind-br/assetmanifest/internal/utils"
	"github.com/quantmind-br/assetmanifest/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags and config are read
type app struct {
	cfg        *config.Config
	configFile string
	log        *utils.Logger
	loader     *manifest.Loader
	static     static.URLResolver
	staticFS   fs.FS
	resolver   *tags.Resolver
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var (
		cfgFile string
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:   "assetmanifest",
		Short: "Resolve bundler manifest entries to static URLs",
		Long: `assetmanifest resolves logical asset names (main.js) to the content-hashed
files a frontend bundler emitted (main.8f7705a.js), using the bundler's
manifest.json, and exposes the lookups as html/template funcs.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ~/.assetmanifest/config.yaml)")
	flags.StringP("output-dir", "o", "", "Bundler output directory holding the manifest")
	flags.StringP("manifest-file", "m", config.DefaultManifestFile, "Manifest filename")
	flags.Bool("cache", config.DefaultCache, "Keep the first parsed manifest for the process lifetime")
	flags.StringP("loader", "l", config.DefaultLoader, "Loader strategy (default, vite, entries)")
	flags.String("static-url", config.DefaultStaticURL, "URL prefix static files are served under")
	flags.StringSlice("static-dir", nil, "Static directories searched for the manifest (repeatable)")
	flags.Bool("hashed", config.DefaultHashed, "Add content hashes to every resolved static file name (needs --static-dir)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = v.BindPFlag("manifest.output_dir", flags.Lookup("output-dir"))
	_ = v.BindPFlag("manifest.manifest_file", flags.Lookup("manifest-file"))
	_ = v.BindPFlag("manifest.cache", flags.Lookup("cache"))
	_ = v.BindPFlag("manifest.loader", flags.Lookup("loader"))
	_ = v.BindPFlag("static.url", flags.Lookup("static-url"))
	_ = v.BindPFlag("static.dirs", flags.Lookup("static-dir"))
	_ = v.BindPFlag("static.hashed", flags.Lookup("hashed"))

	setup := func(cmd *cobra.Command) (*app, error) {
		cfg, err := config.LoadFrom(v, cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		a, err := newApp(cfg, cmd, verbose)
		if err != nil {
			return nil, err
		}
		a.configFile = v.ConfigFileUsed()
		return a, nil
	}

	rootCmd.AddCommand(
		newResolveCmd(setup),
		newMatchCmd(setup),
		newRenderCmd(setup),
		newKeysCmd(setup),
		newServeCmd(setup, v),
		newDoctorCmd(setup),
		newInitCmd(&cfgFile),
		newVersionCmd(),
	)

	return rootCmd
}

func newApp(cfg *config.Config, cmd *cobra.Command, verbose bool) (*app, error) {
	log := utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: verbose,
	})

	s, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		log:    log.WithLoader(cfg.Manifest.Loader),
		loader: manifest.NewLoader(cfg.LoaderOptions(log)),
	}

	if len(cfg.Static.Dirs) > 0 {
		a.staticFS = static.Dirs(cfg.Static.Dirs)
	}
	// Validate guarantees static dirs when hashing is on
	if cfg.Static.Hashed {
		hashed := static.NewHashFSResolver(cfg.Static.URL, a.staticFS)
		a.static = hashed
		a.staticFS = hashed.FS
	} else {
		a.static = static.NewPrefixResolver(cfg.Static.URL)
	}

	a.resolver, err = tags.NewResolver(tags.Options{
		Source:   a.loader,
		Strategy: s,
		Static:   a.static,
		Logger:   a.log,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

type setupFunc func(cmd *cobra.Command) (*app, error)

func newResolveCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <key>",
		Short: "Print the URL for one manifest key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			u, err := a.resolver.Manifest(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
}

func newMatchCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "match <pattern> <template>",
		Short: "Render a template once per manifest key matching a glob pattern",
		Long: `Render <template> once per manifest key matching <pattern>, replacing
{match} with the asset URL, e.g.

  assetmanifest match '*.js' '<script src="{match}"></script>'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			out, err := a.resolver.ManifestMatch(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newRenderCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "render <template-file>",
		Short: "Execute an html/template file with the manifest funcs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			out, err := server.RenderFile(os.DirFS(filepath.Dir(path)), filepath.Base(path), a.resolver.FuncMap(), nil)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newKeysCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List manifest keys in file order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			m, err := a.loader.Get()
			if err != nil {
				return err
			}
			if m.Kind != manifest.KindObject {
				return fmt.Errorf("%w: %s has a %s root and no keys", manifest.ErrManifestParse, m.Path, m.Kind)
			}
			for _, key := range m.Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}

func newServeCmd(setup setupFunc, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve html/template pages and static files for local preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}

			router := server.NewRouter(server.Options{
				Resolver:  a.resolver,
				Templates: os.DirFS(a.cfg.Server.Templates),
				StaticURL: a.cfg.Static.URL,
				StaticFS:  a.staticFS,
				Logger:    a.log,
			})
			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.log.Info().
					Str("addr", srv.Addr).
					Str("templates", a.cfg.Server.Templates).
					Msg("Preview server listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				a.log.Info().Msg("Shutting down gracefully...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "Listen address")
	cmd.Flags().String("templates", config.DefaultTemplates, "Directory holding page templates")
	_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("server.templates", cmd.Flags().Lookup("templates"))

	return cmd
}

func newDoctorCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the manifest can be located and parsed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := setup(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Checking manifest configuration...")
			if a.configFile != "" {
				fmt.Fprintf(out, "  Config file: %s\n", a.configFile)
			} else {
				fmt.Fprintf(out, "  Config file: none (run 'assetmanifest init' to create %s)\n", config.ConfigFilePath())
			}
			fmt.Fprintf(out, "  Loader: %s\n", a.cfg.Manifest.Loader)
			fmt.Fprintf(out, "  Static URL: %s\n", a.cfg.Static.URL)

			fmt.Fprint(out, "  Manifest file: ")
			path, err := manifest.Locate(a.cfg.Manifest.OutputDir, a.cfg.Manifest.ManifestFile, a.cfg.Static.Dirs)
			if err != nil {
				fmt.Fprintln(out, "NOT FOUND")
				return err
			}
			fmt.Fprintf(out, "OK (%s)\n", path)

			fmt.Fprint(out, "  Parse: ")
			m, err := a.loader.Load(path)
			if err != nil {
				fmt.Fprintln(out, "FAILED")
				return err
			}
			fmt.Fprintf(out, "OK (%s root, %d entries)\n", m.Kind, m.Len())

			fmt.Fprintln(out)
			fmt.Fprintln(out, "All checks passed!")
			return nil
		},
	}
}

func newInitCmd(cfgFile *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write the default configuration to ~/.assetmanifest/config.yaml, or to the
path given with --config. An existing file is kept unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(*cfgFile, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}
