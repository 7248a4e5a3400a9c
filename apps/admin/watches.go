package main

import (
	"context"
	"fmt"
	"time"
)

func (cli *commandLine) watches() error {
	watches, err := cli.watchSvc.QueryAll(context.Background())
	if err != nil {
		return err
	}
	if len(watches) == 0 {
		fmt.Fprintln(cli.out, dimStyle.Render("no watches found"))
		return nil
	}

	for _, w := range watches {
		line := titleStyle.Render(w.Email) + " " + fmt.Sprintf("%q", w.Query)
		if w.Category.Valid {
			line += " " + categoryStyle.Render("["+w.Category.String+"]")
		}
		last := "never notified"
		if w.LastNotifiedAt.Valid {
			last = "last notified " + w.LastNotifiedAt.Time.Format(time.RFC822)
		}
		fmt.Fprintln(cli.out, line+" "+dimStyle.Render(last))
	}
	return nil
}
