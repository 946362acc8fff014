package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/howl-wm/howl/internal/config"
	"github.com/howl-wm/howl/internal/ipc"
	"github.com/howl-wm/howl/internal/layout"
	"github.com/howl-wm/howl/internal/status"
	"github.com/howl-wm/howl/internal/wm"
	"github.com/howl-wm/howl/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "workspace":
		os.Exit(runWorkspace(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "quit":
		os.Exit(runQuit(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: howl <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the window manager (foreground)")
	fmt.Fprintln(w, "  status              Show per-workspace status")
	fmt.Fprintln(w, "  workspace <n>       Switch to workspace n")
	fmt.Fprintln(w, "  layout <name>       Set the active workspace layout")
	fmt.Fprintln(w, "  quit                Stop the window manager")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'howl <command> --help' for command-specific options.")
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: howl daemon [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the window manager on the display named by DISPLAY.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "Configuration file path")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			log.Printf("Failed to resolve config path: %v", err)
			return 1
		}
	}

	// Under a session manager or journal, stderr lines get timestamped
	// for us; only add our own when running interactively.
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		log.SetFlags(0)
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	log.Printf("Configuration loaded (%d workspaces, gap: %dpx)", cfg.Workspaces, cfg.Gap)

	conn, err := x11.Connect()
	if err != nil {
		log.Printf("Failed to connect to display: %v", err)
		return 1
	}
	defer conn.Close()

	if err := conn.Manage(cfg.Workspaces); err != nil {
		log.Printf("Failed to manage display: %v", err)
		return 1
	}

	// Status lines go to stdout for bars to consume; logs go to stderr.
	out := bufio.NewWriter(os.Stdout)
	manager, err := wm.New(conn, cfg, status.NewEmitter(out))
	if err != nil {
		log.Printf("Failed to initialize window manager: %v", err)
		return 1
	}

	if err := conn.GrabKeys(manager.KeyBindings()); err != nil {
		log.Printf("Failed to grab keys: %v", err)
		return 1
	}
	conn.GrabButtons(manager.ButtonBindings())

	// X events, IPC commands and signals merge onto one channel so the
	// manager handles everything strictly sequentially.
	events := make(chan wm.Event, 64)
	go conn.Forward(events)

	server, err := ipc.NewServer(events)
	if err != nil {
		log.Printf("Failed to create IPC server: %v", err)
		return 1
	}
	if err := server.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
		return 1
	}
	defer server.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		events <- wm.Quit{}
	}()

	log.Println("howl started successfully")
	manager.Run(events)
	log.Println("howl shutting down")
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: howl status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show per-workspace status via IPC. Prints a readable table on")
		fmt.Fprintln(os.Stderr, "a terminal and raw status lines when piped.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Printf("uptime_seconds: %d\n", data.UptimeSeconds)
		for _, ws := range data.Workspaces {
			marker := " "
			if ws.Active {
				marker = "*"
			}
			fmt.Printf("%s workspace %d: %d clients, %s\n",
				marker, ws.Workspace, ws.Clients, layout.Mode(ws.Layout))
		}
		return 0
	}

	// Raw status-line format for bars and scripts.
	for _, ws := range data.Workspaces {
		active := 0
		if ws.Active {
			active = 1
		}
		fmt.Printf("w:%d n:%d l:%d cw:%d\n", ws.Workspace, ws.Clients, ws.Layout, active)
	}
	return 0
}

func runWorkspace(args []string) int {
	fs := flag.NewFlagSet("workspace", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: howl workspace <n>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Switch to workspace n (zero-indexed).")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "workspace takes exactly one argument")
		fs.Usage()
		return 2
	}

	var index int
	if _, err := fmt.Sscanf(fs.Arg(0), "%d", &index); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid workspace: %q\n", fs.Arg(0))
		return 2
	}

	if err := ipc.NewClient().SwitchWorkspace(index); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runLayout(args []string) int {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: howl layout <name>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Set the active workspace layout.")
		fmt.Fprintln(os.Stderr, "Layouts: monocle, grid, hstack, vstack, fibonacci")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "layout takes exactly one argument")
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().SetLayout(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runQuit(args []string) int {
	fs := flag.NewFlagSet("quit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: howl quit")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the running window manager to exit.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "quit takes no arguments")
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().Quit(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
