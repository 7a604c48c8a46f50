// Command shisho is an opinionated AniDB rename utility. It renames
// files in a non-configurable format if they are known to AniDB.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Ennea/shisho/anidb"
	"github.com/Ennea/shisho/ed2k"
	"github.com/Ennea/shisho/internal/rename"
	"github.com/Ennea/shisho/store"
)

const (
	cGray  = "\x1b[90m"
	cRed   = "\x1b[91m"
	cGreen = "\x1b[92m"
	cBlue  = "\x1b[94m"
	cReset = "\x1b[0m"
)

func main() {
	os.Exit(run())
}

func run() int {
	dryRun := pflag.BoolP("dry-run", "d", false, "do not actually rename any files")
	verbose := pflag.BoolP("verbose", "v", false, "enable verbose logging")
	promptLogin := pflag.Bool("prompt-login", false, "get prompted for your AniDB login info again")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: shisho [flags] path...")
		fmt.Fprintln(os.Stderr, "Renames files in a non-configurable format if they are known to AniDB.")
		fmt.Fprintln(os.Stderr, "A path can be a file or a folder; folders are not scanned recursively.")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if pflag.NArg() == 0 {
		pflag.Usage()
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	files := collectFiles(pflag.Args())
	fmt.Printf("Found %d file(s)\n\n", len(files))
	if len(files) == 0 {
		return 0
	}

	dir, err := store.DefaultDir()
	if err != nil {
		slog.Error("cannot determine data directory", "error", err)
		return 1
	}
	st, err := store.Open(dir)
	if err != nil {
		slog.Error("cannot open database", "error", err)
		return 1
	}

	if _, ok, err := st.Credentials(); err != nil || !ok || *promptLogin {
		if err != nil {
			slog.Error("cannot read login info", "error", err)
			st.Close()
			return 1
		}
		creds, err := promptCredentials()
		if err == nil {
			err = st.PutCredentials(creds)
		}
		if err != nil {
			slog.Error("cannot store login info", "error", err)
			st.Close()
			return 1
		}
	}

	client, err := anidb.NewClient(st, anidb.Config{})
	if err != nil {
		slog.Error("cannot create API client", "error", err)
		st.Close()
		return 1
	}
	// The client owns the socket and the store from here; Close releases
	// both on every exit path below.

	// An in-flight lookup is allowed to finish or time out normally; the
	// interrupt only stops the batch between files.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hasher := ed2k.Detect()

	exit := 0
	for _, file := range files {
		if ctx.Err() != nil {
			fmt.Println("Aborting")
			break
		}
		if err := processFile(file, client, hasher, *dryRun); err != nil {
			if anidb.IsFatal(err) {
				slog.Error("aborting", "error", err)
				exit = 1
				break
			}
			slog.Warn("lookup failed", "file", file, "error", err)
		}
	}

	if err := client.Close(context.Background()); err != nil {
		slog.Error("shutdown failed", "error", err)
		exit = 1
	}
	return exit
}

// processFile runs the hash → lookup → rename pipeline for one file.
// Failures are reported through the returned error; only fatal ones
// abort the batch.
func processFile(path string, client *anidb.Client, hasher ed2k.Hasher, dryRun bool) error {
	fmt.Printf("%sHashing%s %s %s...%s ", cGray, cReset, path, cGray, cReset)
	size, hash, err := hasher.Hash(path)
	if err != nil {
		fmt.Printf("%sFailed%s\n\n", cRed, cReset)
		slog.Debug("hashing failed", "file", path, "error", err)
		return nil
	}
	fmt.Printf("%sDone!%s\n", cBlue, cReset)
	slog.Info("hashed file", "size", size, "ed2k", hash)

	fmt.Printf("%sQuerying AniDB...%s ", cGray, cReset)
	meta, err := client.Lookup(context.Background(), size, hash)
	if err != nil {
		fmt.Printf("%sFailed!%s\n\n", cRed, cReset)
		return err
	}
	fmt.Printf("%sSuccess!%s\n", cGreen, cReset)

	newName := rename.NewName(*meta, rename.Suffixes(filepath.Base(path)))
	newPath := filepath.Join(filepath.Dir(path), newName)
	if newPath == path {
		fmt.Printf("%sNo rename necessary%s\n", cBlue, cReset)
	} else {
		verb := "Renaming to"
		if dryRun {
			verb = "Would rename to"
		}
		fmt.Printf("%s%s%s %s\n", cGray, verb, cReset, newPath)
		if !dryRun {
			if _, err := os.Lstat(newPath); err == nil {
				fmt.Printf("%s %salready exists. Failed to rename.%s\n", newPath, cRed, cReset)
			} else if err := os.Rename(path, newPath); err != nil {
				fmt.Printf("%sFailed to rename:%s %v\n", cRed, cReset, err)
			} else {
				fmt.Printf("%sRename successful.%s\n", cGreen, cReset)
			}
		}
	}
	fmt.Println()
	return nil
}
