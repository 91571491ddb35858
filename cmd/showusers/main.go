// Command showusers prints name reports and the users named Ruby, then
// every user read with a hand written query. Flags run the update,
// replace and delete demos first.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"querydemo/internal/model"
	"querydemo/internal/server"
)

type options struct {
	update    bool
	replace   bool
	deleteAll bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("showusers", flag.ContinueOnError)
	fs.BoolVar(&o.update, "update", false, "rename Rust to Ruby and user 1 to James first")
	fs.BoolVar(&o.replace, "replace", false, "run the replace / insert-ignore sequence first")
	fs.BoolVar(&o.deleteAll, "delete-all", false, "delete every user and exit")
	err := fs.Parse(args)
	return o, err
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	ctx := context.Background()
	s, err := server.New(ctx, "showusers")
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	err = run(ctx, s, opts, os.Stdout)
	if cerr := s.Close(ctx); cerr != nil {
		s.Logger.Error().Err(cerr).Msg("shutdown_failed")
	}
	if err != nil {
		s.Logger.Fatal().Err(err).Msg("showusers_failed")
	}
}

func run(ctx context.Context, s *server.Server, opts options, stdout io.Writer) error {
	users := s.Users

	if opts.deleteAll {
		n, err := users.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("delete users: %w", err)
		}
		fmt.Fprintf(stdout, "deleted %d users\n", n)
		return nil
	}

	if opts.update {
		renamed, byID, err := users.UpdateUsers(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "update Rust to Ruby, updated_row : %d\n", renamed)
		fmt.Fprintf(stdout, "update id 1 to James, updated_row : %d\n", byID)
	}

	if opts.replace {
		report, err := users.ReplaceIntoUsers(ctx)
		if err != nil {
			return fmt.Errorf("replace into users: %w", err)
		}
		fmt.Fprintf(stdout, "%q\n", report.AfterReplace)
		fmt.Fprintf(stdout, "%q\n", report.AfterIgnore)
	}

	report, err := users.SomeUsers(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "all_name : %q\n", report.Names)
	fmt.Fprintf(stdout, "distinct_name : %q\n", report.DistinctNames)
	fmt.Fprintf(stdout, "there are %d users !\n", report.Count)
	for _, u := range report.Users {
		printUser(stdout, u)
	}

	fmt.Fprintln(stdout, "---------------------")

	all, err := users.AllUsers(ctx)
	if err != nil {
		return fmt.Errorf("load all users: %w", err)
	}
	for _, u := range all {
		printUser(stdout, u)
	}
	return nil
}

func printUser(w io.Writer, u model.User) {
	hair := "null"
	if u.HairColor != nil {
		hair = fmt.Sprintf("%q", *u.HairColor)
	}
	fmt.Fprintf(w, "id:%d,name:%s,hair color:%s, created at :%s\n",
		u.ID, u.Name, hair, u.CreatedAt.Format(time.DateTime))
}
