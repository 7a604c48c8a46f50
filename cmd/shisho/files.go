package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/Ennea/shisho/anidb"
)

// collectFiles expands the path arguments into a sorted list of regular
// files. Folders are listed non-recursively; symlinks are skipped.
func collectFiles(args []string) []string {
	var files []string
	for _, path := range args {
		info, err := os.Lstat(path)
		if err != nil {
			slog.Error("path does not exist", "path", path)
			continue
		}

		if info.IsDir() {
			slog.Info("path is a directory", "path", path)
			entries, err := os.ReadDir(path)
			if err != nil {
				slog.Error("cannot list directory", "path", path, "error", err)
				continue
			}
			for _, entry := range entries {
				if entry.Type().IsRegular() {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else if info.Mode().IsRegular() {
			slog.Info("path is a file", "path", path)
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files
}

// promptCredentials asks for the AniDB login info on the terminal,
// reading the password without echo.
func promptCredentials() (anidb.Credentials, error) {
	fmt.Print("AniDB username: ")
	user, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return anidb.Credentials{}, err
	}

	fmt.Print("AniDB password: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return anidb.Credentials{}, err
	}

	return anidb.Credentials{User: strings.TrimSpace(user), Pass: string(pass)}, nil
}
