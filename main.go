package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"InkOverlay/internal/applog"
	"InkOverlay/internal/config"
	"InkOverlay/internal/engine"
	inknet "InkOverlay/internal/net"
	"InkOverlay/internal/ui"
)

func main() {
	configPath := flag.String("config", os.Getenv(config.EnvPath), "path to the YAML settings file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `usage:
  inkoverlay [-config file]                        run the presenter
  inkoverlay [-config file] inkoverlay://host:port show a presenter's state
  inkoverlay [-config file] remote [-addr host:port] <op> [value]
  inkoverlay [-config file] browse                 list presenters on the LAN

ops: draw_mode on|off, toggle, tool marker|eraser, color <name>, undo, clear, state
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	applog.SetLogger(applog.NewText(os.Stderr, level))

	args := flag.Args()
	switch {
	case len(args) == 0:
		err = runPresenter(cfg)
	case inknet.IsLink(args[0]):
		err = runLink(args[0])
	case args[0] == "remote":
		err = runRemote(cfg, args[1:])
	case args[0] == "browse":
		err = runBrowse()
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		applog.Logger().Error("exiting", "err", err)
		os.Exit(1)
	}
}

func runPresenter(cfg config.Config) error {
	log := applog.For("main")
	tools, err := cfg.ToolState()
	if err != nil {
		return err
	}
	e := engine.New(tools)

	opts := ui.Options{Engine: e}
	if cfg.Remote.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		srv := inknet.NewServer(e, ui.Dispatch)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Remote.Port); err != nil {
				log.Error("remote control stopped", "err", err)
			}
		}()
		opts.OnChange = func() { srv.Changed(e.Snapshot()) }

		if cfg.Remote.Advertise {
			zone, err := inknet.Advertise(cfg.Remote.Port)
			if err != nil {
				log.Warn("mdns advertise failed", "err", err)
			} else {
				defer zone.Shutdown()
			}
		}

		opts.ShareLink = inknet.ShareLink(inknet.OutgoingIP(), cfg.Remote.Port)
		log.Info("share link", "link", opts.ShareLink)
	}

	ui.RunApp(opts)
	return nil
}

// runLink handles a share link opened on a controller: it prints the
// presenter's current state.
func runLink(link string) error {
	addr, err := inknet.ParseLink(link)
	if err != nil {
		return err
	}
	return send(addr, inknet.Command{Op: "state"})
}

func runRemote(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("remote", flag.ExitOnError)
	addr := fs.String("addr", fmt.Sprintf("127.0.0.1:%d", cfg.Remote.Port), "presenter address or share link")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("remote: missing op")
	}
	target := *addr
	if inknet.IsLink(target) {
		var err error
		if target, err = inknet.ParseLink(target); err != nil {
			return err
		}
	}
	cmd := inknet.Command{Op: fs.Arg(0), Value: fs.Arg(1)}
	return send(target, cmd)
}

func send(addr string, cmd inknet.Command) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reply, err := inknet.Send(ctx, addr, cmd)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(reply.State)
}

func runBrowse() error {
	found, err := inknet.Browse(2 * time.Second)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Println("no presenters found")
		return nil
	}
	for _, addr := range found {
		fmt.Println(inknet.LinkScheme + addr)
	}
	return nil
}
