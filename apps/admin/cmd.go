package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/watch"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db       *sql.DB
	crsSvc   course.Service
	watchSvc watch.Service
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Println("  sync - refresh the catalog from the upstream LMS and send watch digests")
	fmt.Println("  courses [-search QUERY] [-category CATEGORY] - list catalog courses, ranked when searching")
	fmt.Println("  watches - list saved searches")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	coursesCmd := flag.NewFlagSet("courses", flag.ExitOnError)
	coursesSearch := coursesCmd.String("search", "", "Relevance-rank the listing against this query.")
	coursesCategory := coursesCmd.String("category", "", "Only list courses in this category.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "sync":
		return cli.sync()
	case "courses":
		if err := coursesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.courses(*coursesSearch, *coursesCategory)
	case "watches":
		return cli.watches()
	default:
		cli.printUsage()
		return errHelp
	}
}
