package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/trezcool/darasa/core/course"
)

// courses lists the catalog; with -search the listing comes ranked by relevance.
func (cli *commandLine) courses(search, category string) error {
	filter := &course.QueryFilter{Search: search, Category: category}
	courses, err := cli.crsSvc.Query(context.Background(), filter, nil)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		fmt.Fprintln(cli.out, dimStyle.Render("no courses found"))
		if category != "" {
			if known, err := cli.crsSvc.Categories(context.Background()); err == nil {
				if suggestion := course.SuggestCategory(category, known); suggestion != "" {
					fmt.Fprintln(cli.out, dimStyle.Render(fmt.Sprintf("did you mean %q?", suggestion)))
				}
			}
		}
		return nil
	}

	for i, crs := range courses {
		line := fmt.Sprintf("%3d. %s", i+1, titleStyle.Render(crs.Title))
		if crs.Category.Valid {
			line += " " + categoryStyle.Render("["+crs.Category.String+"]")
		}
		if name := teacherName(crs.Teacher); name != "" {
			line += " " + dimStyle.Render("by "+name)
		}
		if crs.Price.Valid {
			line += " " + dimStyle.Render(fmt.Sprintf("$%.2f", crs.Price.Float64))
		}
		fmt.Fprintln(cli.out, line)
	}
	return nil
}

func teacherName(t course.Teacher) string {
	parts := make([]string, 0, 2)
	if t.FirstName.Valid {
		parts = append(parts, t.FirstName.String)
	}
	if t.LastName.Valid {
		parts = append(parts, t.LastName.String)
	}
	if len(parts) == 0 && t.Username.Valid {
		return t.Username.String
	}
	return strings.Join(parts, " ")
}
