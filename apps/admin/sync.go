package main

import (
	"context"
	"fmt"
)

// sync refreshes the catalog from the upstream LMS and fans out watch digests
// for the newly seen courses.
func (cli *commandLine) sync() error {
	ctx := context.Background()

	summary, err := cli.crsSvc.Refresh(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, okStyle.Render(
		fmt.Sprintf("catalog refreshed: %d courses (%d created, %d updated)", summary.Total, summary.Created, summary.Updated)))

	if len(summary.New) == 0 {
		return nil
	}
	notified, err := cli.watchSvc.NotifyNew(ctx, summary.New)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, okStyle.Render(fmt.Sprintf("%d watch digest(s) sent", notified)))
	return nil
}
