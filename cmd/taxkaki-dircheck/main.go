// Command taxkaki-dircheck audits the credential directory an operator maintains
// With -pan and -pin it runs one authentication instead and prints the outcome
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"taxkaki/internal/adapters/rowstore/factory"
	"taxkaki/internal/core/directory"
	"taxkaki/internal/platform/config"
	authmod "taxkaki/internal/services/auth/module"
	authrepo "taxkaki/internal/services/auth/repo"
	authsvc "taxkaki/internal/services/auth/service"
)

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	_ = godotenv.Load()

	pan := flag.String("pan", "", "authenticate this PAN instead of auditing")
	pin := flag.String("pin", "", "PIN to use with -pan")
	skip := flag.Int("skip", 1, "header rows to ignore")
	timeout := flag.Duration("timeout", 30*time.Second, "directory fetch timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	root := config.New()
	dirCfg := factory.TableFromConfig(root.Prefix("CORE_DIRECTORY_"), "directory", "Sheet1!A:I")
	be, err := factory.OpenBackends(ctx, root, dirCfg)
	must(err)
	defer func() { _ = be.Close() }()

	table, err := factory.Table(ctx, dirCfg, be)
	must(err)

	if *pan != "" {
		opt := authmod.FromConfig(root)
		svc := authsvc.New(table, authrepo.NewRows(), authsvc.Options{Location: opt.Location})
		res, _ := svc.Authenticate(ctx, *pan, *pin)
		fmt.Printf("%s\t%s\n", res.Outcome, res.Message)
		if !res.OK() {
			os.Exit(1)
		}
		return
	}

	rows, err := table.Load(ctx)
	must(err)
	defects := Audit(directory.SchemaV1, rows, *skip)
	Report(os.Stdout, max(len(rows)-*skip, 0), defects)
	if len(defects) > 0 {
		os.Exit(1)
	}
}
