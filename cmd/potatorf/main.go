package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/thattophatperson/potatorf/potatoengine"
)

func main() {
	oneShot := flag.String("c", "", "execute one SQL statement and exit")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s <db.dbm>            db> REPL\n  %s -c \"SQL\" <db.dbm>   single command\n  %s <db.dbm> SQL...     single command\n", os.Args[0], os.Args[0], os.Args[0])
		os.Exit(1)
	}

	path := dbmPath(args[0])
	db, err := potatoengine.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: cannot open '%s': %v\n", path, err)
		os.Exit(1)
	}

	sql := strings.TrimSpace(*oneShot)
	if sql == "" && len(args) > 1 {
		sql = strings.Join(args[1:], " ")
	}

	fmt.Printf("potatorf v1.0  db=%s  tables=%d\n", db.Name(), db.TableCount())

	if sql != "" {
		res := db.Exec(sql)
		printResult(res)
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
			os.Exit(1)
		}
		if !res.OK {
			os.Exit(1)
		}
		return
	}

	runRepl(db)
	fmt.Println("Goodbye.")
}

// dbmPath appends the .dbm extension when the caller didn't already
// include one somewhere in the name, mirroring the original CLI's
// lenient filename handling.
func dbmPath(name string) string {
	if strings.Contains(filepath.Base(name), ".dbm") {
		return name
	}
	return name + ".dbm"
}

func runRepl(db *potatoengine.DB) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "db> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("Type SQL (end with ;) or 'quit'.")
	fmt.Println()

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if buf.Len() > 0 {
				buf.Reset()
				rl.SetPrompt("db> ")
				continue
			}
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			return
		}

		trimmed := strings.TrimSpace(line)
		if buf.Len() == 0 && (strings.EqualFold(trimmed, "quit") || strings.EqualFold(trimmed, "exit")) {
			return
		}
		if trimmed == "" {
			continue
		}

		buf.WriteString(line)
		buf.WriteByte(' ')

		accumulated := buf.String()
		if statementReady(accumulated) {
			stmt := strings.TrimSpace(accumulated)
			buf.Reset()
			rl.SetPrompt("db> ")
			printResult(db.Exec(stmt))
		} else {
			rl.SetPrompt("... ")
		}
	}
}

// statementReady reports whether the accumulated buffer should be sent
// to the engine: either it already carries a terminating ';', or it is
// a one-line command potatorf never requires a semicolon for.
func statementReady(buf string) bool {
	trimmed := strings.TrimSpace(buf)
	if strings.Contains(trimmed, ";") {
		return true
	}
	return hasFold(trimmed, "SHOW") || hasFold(trimmed, "VACUUM") || hasFold(trimmed, "DESC")
}

func hasFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
